package restaurant

import (
	"encoding/json"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CollectionName is the Mongo collection restaurants are stored in.
const CollectionName = "restaurants"

// Restaurant is the persisted restaurant document.
//
// JSON uses the attribute names (restaurantId, coordinate, rating) while the
// stored document uses restaurant_id, coord and grade. Nothing else is written
// to the document: the driver does not add a type marker field.
type Restaurant struct {
	ID           primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Address      Address            `json:"address" bson:"address"`
	Borough      string             `json:"borough" bson:"borough"`
	Cuisine      string             `json:"cuisine" bson:"cuisine"`
	Grades       []Grade            `json:"grades" bson:"grades"`
	Name         string             `json:"name" bson:"name"`
	RestaurantID string             `json:"restaurantId" bson:"restaurant_id"`
}

// Address is embedded in a Restaurant and has no identity of its own.
type Address struct {
	Building   string    `json:"building" bson:"building"`
	Street     string    `json:"street" bson:"street"`
	Zipcode    string    `json:"zipcode" bson:"zipcode"`
	Coordinate []float64 `json:"coordinate" bson:"coord"` // longitude, latitude
}

// Grade is a single inspection grade embedded in a Restaurant.
type Grade struct {
	Date   time.Time `json:"date" bson:"date"`
	Rating string    `json:"rating" bson:"grade"`
	Score  int       `json:"score" bson:"score"`
}

// New returns a blank restaurant. Every field holds its zero value and the
// sequences are empty rather than nil, so the record is valid as-is.
func New() Restaurant {
	return Restaurant{
		Address: Address{Coordinate: []float64{}},
		Grades:  []Grade{},
	}
}

// NewGrade returns a blank grade dated now, at the millisecond precision
// BSON dates are stored with.
func NewGrade() Grade {
	return Grade{Date: time.Now().UTC().Truncate(time.Millisecond)}
}

// Sample is the fixed record inserted by the sample endpoint.
func Sample() Restaurant {
	r := New()
	r.Name = "sample"
	r.RestaurantID = "33332"
	return r
}

// ApplyDefaults replaces nil sequences with empty ones.
func (r *Restaurant) ApplyDefaults() {
	if r.Grades == nil {
		r.Grades = []Grade{}
	}
	if r.Address.Coordinate == nil {
		r.Address.Coordinate = []float64{}
	}
}

// Clone returns a deep copy of r.
func (r Restaurant) Clone() Restaurant {
	out := r
	if r.Grades != nil {
		out.Grades = make([]Grade, len(r.Grades))
		copy(out.Grades, r.Grades)
	}
	if r.Address.Coordinate != nil {
		out.Address.Coordinate = make([]float64, len(r.Address.Coordinate))
		copy(out.Address.Coordinate, r.Address.Coordinate)
	}
	return out
}

// WithName returns a copy of r with only the name replaced.
func (r Restaurant) WithName(name string) Restaurant {
	out := r.Clone()
	out.Name = name
	return out
}

// UnmarshalJSON decodes on top of New() so absent fields keep their defaults.
func (r *Restaurant) UnmarshalJSON(b []byte) error {
	type plain Restaurant
	p := plain(New())
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}
	*r = Restaurant(p)
	r.ApplyDefaults()
	return nil
}

// UnmarshalJSON decodes on top of NewGrade(); a grade without a date is dated
// at decode time.
func (g *Grade) UnmarshalJSON(b []byte) error {
	type plain Grade
	p := plain(NewGrade())
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}
	*g = Grade(p)
	return nil
}
