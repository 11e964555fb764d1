// Package docs registra el documento OpenAPI de la API de mascotas en swag.
// Se sirve en /swagger/doc.json (http-swagger).
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/pets": {
            "get": {
                "produces": ["application/json"],
                "tags": ["pets"],
                "summary": "Get all pets",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"type": "array", "items": {"$ref": "#/definitions/pets.petResponse"}}
                    }
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["pets"],
                "summary": "Create a new pet",
                "parameters": [
                    {"description": "pet", "name": "pet", "in": "body", "required": true, "schema": {"$ref": "#/definitions/pets.petRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/pets.petResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/pets.errorResponse"}}
                }
            }
        },
        "/pets/species": {
            "get": {
                "produces": ["application/json"],
                "tags": ["pets"],
                "summary": "Get number of different species",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "integer"}}
                }
            }
        },
        "/pets/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["pets"],
                "summary": "Get pet by ID",
                "parameters": [
                    {"type": "integer", "description": "pet id", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/pets.petResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/pets.errorResponse"}}
                }
            },
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["pets"],
                "summary": "Update a pet",
                "parameters": [
                    {"type": "integer", "description": "pet id", "name": "id", "in": "path", "required": true},
                    {"description": "pet", "name": "pet", "in": "body", "required": true, "schema": {"$ref": "#/definitions/pets.petRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/pets.petResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/pets.errorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/pets.errorResponse"}}
                }
            },
            "delete": {
                "tags": ["pets"],
                "summary": "Delete a pet",
                "parameters": [
                    {"type": "integer", "description": "pet id", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/pets.errorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "pets.petRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "species": {"type": "string"},
                "age": {"type": "integer"},
                "owner_name": {"type": "string"}
            }
        },
        "pets.petResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "name": {"type": "string"},
                "species": {"type": "string"},
                "age": {"type": "integer"},
                "owner_name": {"type": "string"}
            }
        },
        "pets.errorResponse": {
            "type": "object",
            "properties": {
                "timestamp": {"type": "string"},
                "status": {"type": "integer"},
                "error": {"type": "string"},
                "message": {"type": "string"},
                "field_errors": {"type": "object", "additionalProperties": {"type": "string"}}
            }
        }
    }
}`

// SwaggerInfo contiene la info exportada del documento.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Pet CRUD API",
	Description:      "CRUD de mascotas sobre la colección pets (seed inicial de 7 registros).",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
