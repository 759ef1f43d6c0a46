// Package docs registers the OpenAPI document served at /spec.
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
        "/v1/books": {
            "get": {
                "description": "This endpoint returns every book in the catalogue, possibly none",
                "produces": ["application/json"],
                "tags": ["books"],
                "summary": "List all books",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/data.Book"}}},
                    "500": {"description": "Internal Server Error"}
                }
            }
        },
        "/v1/books/title/{title}": {
            "get": {
                "description": "This endpoint returns the books whose title matches exactly",
                "produces": ["application/json"],
                "tags": ["books"],
                "summary": "List books by title",
                "parameters": [{"type": "string", "description": "Exact title", "name": "title", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/data.Book"}}},
                    "404": {"description": "Not Found"},
                    "500": {"description": "Internal Server Error"}
                }
            }
        },
        "/v1/books/author/{author}": {
            "get": {
                "description": "This endpoint returns the books whose author matches exactly",
                "produces": ["application/json"],
                "tags": ["books"],
                "summary": "List books by author",
                "parameters": [{"type": "string", "description": "Exact author", "name": "author", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/data.Book"}}},
                    "404": {"description": "Not Found"},
                    "500": {"description": "Internal Server Error"}
                }
            }
        },
        "/v1/book": {
            "post": {
                "description": "This endpoint stores a book, replacing any book with the same ISBN",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["books"],
                "summary": "Create a book",
                "parameters": [{"description": "JSON payload required to create a book", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.BookRequestBody"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/data.Book"}},
                    "400": {"description": "Bad Request"},
                    "422": {"description": "Unprocessable Entity"},
                    "500": {"description": "Internal Server Error"}
                }
            },
            "put": {
                "description": "This endpoint replaces title, author and price of an existing book",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["books"],
                "summary": "Update a book",
                "parameters": [{"description": "JSON payload required to update a book", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.BookRequestBody"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/data.Book"}},
                    "400": {"description": "Bad Request"},
                    "404": {"description": "Not Found"},
                    "422": {"description": "Unprocessable Entity"},
                    "500": {"description": "Internal Server Error"}
                }
            }
        },
        "/v1/book/{isbn}": {
            "get": {
                "description": "This endpoint shows the details of the book with the given ISBN",
                "produces": ["application/json"],
                "tags": ["books"],
                "summary": "Show details of a book",
                "parameters": [{"type": "string", "description": "ISBN of book to show", "name": "isbn", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/data.Book"}},
                    "404": {"description": "Not Found"},
                    "500": {"description": "Internal Server Error"}
                }
            },
            "delete": {
                "description": "This endpoint deletes the book with the given ISBN",
                "tags": ["books"],
                "summary": "Delete a book",
                "parameters": [{"type": "string", "description": "ISBN of book to delete", "name": "isbn", "in": "path", "required": true}],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Not Found"},
                    "500": {"description": "Internal Server Error"}
                }
            }
        },
        "/v1/healthcheck": {
            "get": {
                "description": "This endpoint reports the service status and whether the book store is reachable",
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Show service health",
                "responses": {
                    "200": {"description": "OK"},
                    "503": {"description": "Service Unavailable"}
                }
            }
        }
    },
    "definitions": {
        "data.Book": {
            "type": "object",
            "properties": {
                "isbn": {"type": "string"},
                "titulo": {"type": "string"},
                "autor": {"type": "string"},
                "precio": {"type": "integer"}
            }
        },
        "dto.BookRequestBody": {
            "type": "object",
            "properties": {
                "isbn": {"type": "string"},
                "titulo": {"type": "string"},
                "autor": {"type": "string"},
                "precio": {"description": "whole number, or a string holding one"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Biblioteca API",
	Description:      "This is an API service for managing a catalogue of books.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
