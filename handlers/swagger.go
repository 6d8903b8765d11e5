package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterSwagger registers minimal Swagger/OpenAPI endpoints for the restaurants API.
// - GET /swagger/index.html  -> a small HTML page that loads the OpenAPI JSON
// - GET /swagger/doc.json    -> machine-readable OpenAPI JSON
func RegisterSwagger(rg gin.IRouter) {
	rg.GET("/swagger/index.html", func(c *gin.Context) {
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.String(http.StatusOK, swaggerHTML)
	})

	rg.GET("/swagger/doc.json", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(swaggerJSON))
	})
}

const swaggerHTML = `<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>restaurants — Swagger</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@4/swagger-ui.css" />
  </head>
  <body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@4/swagger-ui-bundle.js"></script>
    <script>
      window.ui = SwaggerUIBundle({
        url: '/swagger/doc.json',
        dom_id: '#swagger-ui',
      })
    </script>
  </body>
</html>`

// {id} is the business identifier (restaurant_id), not the storage id.
const swaggerJSON = `{
  "openapi": "3.0.0",
  "info": { "title": "restaurants", "version": "v0.1.0" },
  "components": {
    "schemas": {
      "Address": { "type": "object", "properties": {
        "building": {"type":"string"}, "street": {"type":"string"}, "zipcode": {"type":"string"},
        "coordinate": {"type":"array","items":{"type":"number"},"description":"longitude, latitude"} } },
      "Grade": { "type": "object", "properties": {
        "date": {"type":"string","format":"date-time"}, "rating": {"type":"string"}, "score": {"type":"integer"} } },
      "Restaurant": { "type": "object", "properties": {
        "id": {"type":"string","description":"storage identifier"},
        "address": {"$ref":"#/components/schemas/Address"},
        "borough": {"type":"string"}, "cuisine": {"type":"string"},
        "grades": {"type":"array","items":{"$ref":"#/components/schemas/Grade"}},
        "name": {"type":"string"},
        "restaurantId": {"type":"string","description":"business identifier"} } }
    }
  },
  "paths": {
    "/restaurants": {
      "get": { "summary": "Count restaurants", "responses": { "200": { "description": "document count", "content": { "application/json": { "schema": {"type":"integer"} } } } } },
      "post": { "summary": "Insert the sample restaurant", "responses": { "200": { "description": "inserted record", "content": { "application/json": { "schema": {"$ref":"#/components/schemas/Restaurant"} } } } } }
    },
    "/restaurants/addByParams": {
      "post": { "summary": "Insert the supplied restaurant",
        "requestBody": { "content": { "application/json": { "schema": {"$ref":"#/components/schemas/Restaurant"} } } },
        "responses": { "200": { "description": "inserted record" }, "400": { "description": "body could not be decoded" } } }
    },
    "/restaurants/{id}": {
      "parameters": [ { "name": "id", "in": "path", "required": true, "schema": {"type":"string"} } ],
      "get": { "summary": "Get restaurant by restaurant_id", "responses": { "200": { "description": "record" }, "404": { "description": "no match, empty body" } } },
      "delete": { "summary": "Delete restaurant by restaurant_id", "responses": { "200": { "description": "empty body, also when absent" } } },
      "patch": { "summary": "Rename restaurant to \"Update\"", "responses": { "200": { "description": "updated record, empty body when absent" } } }
    },
    "/health": { "get": { "summary": "Liveness check", "responses": { "200": { "description": "healthy" } } } },
    "/ready": { "get": { "summary": "Readiness check", "responses": { "200": { "description": "ready" }, "503": { "description": "not ready" } } } },
    "/metrics": { "get": { "summary": "Prometheus metrics", "responses": { "200": { "description": "exposition format" } } } }
  }
}`
