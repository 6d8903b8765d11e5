package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/restaurants-starter/restaurants-service/internal/restaurant"
	"github.com/restaurants-starter/restaurants-service/internal/restaurant/service"
)

// BasePath is the route prefix of the restaurants API.
const BasePath = "/restaurants"

// RegisterRoutes mounts the restaurant endpoints on r, behind mw. The :id
// parameter is always the business identifier (restaurant_id), never the
// storage id.
func RegisterRoutes(r gin.IRouter, svc service.Service, mw ...gin.HandlerFunc) {
	g := r.Group(BasePath, mw...)

	g.GET("", func(c *gin.Context) {
		n, err := svc.Count(c.Request.Context())
		if err != nil {
			storeFault(c, err)
			return
		}
		c.JSON(http.StatusOK, n)
	})

	g.GET("/:id", func(c *gin.Context) {
		rec, err := svc.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			if errors.Is(err, service.ErrNotFound) {
				c.Status(http.StatusNotFound)
				return
			}
			storeFault(c, err)
			return
		}
		c.JSON(http.StatusOK, rec)
	})

	g.POST("", func(c *gin.Context) {
		rec, err := svc.CreateSample(c.Request.Context())
		if err != nil {
			storeFault(c, err)
			return
		}
		c.JSON(http.StatusOK, rec)
	})

	g.POST("/addByParams", func(c *gin.Context) {
		var req restaurant.Restaurant
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		rec, err := svc.Create(c.Request.Context(), &req)
		if err != nil {
			storeFault(c, err)
			return
		}
		c.JSON(http.StatusOK, rec)
	})

	g.DELETE("/:id", func(c *gin.Context) {
		if err := svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
			storeFault(c, err)
			return
		}
		c.Status(http.StatusOK)
	})

	g.PATCH("/:id", func(c *gin.Context) {
		rec, err := svc.Update(c.Request.Context(), c.Param("id"))
		if err != nil {
			storeFault(c, err)
			return
		}
		if rec == nil {
			c.Status(http.StatusOK)
			return
		}
		c.JSON(http.StatusOK, rec)
	})
}

// storeFault reports an untranslated store error as 500.
func storeFault(c *gin.Context, err error) {
	_ = c.Error(err)
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
