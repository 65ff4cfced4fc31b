// Package docs holds the OpenAPI description served at /swagger.
// Regenerate with: swag init -g cmd/api/main.go -o internal/docs
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
        "/api/health": {
            "get": {
                "tags": ["health"],
                "summary": "Health check",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/auth/register": {
            "post": {
                "tags": ["auth"],
                "summary": "Register a new user",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/handlers.RegisterRequest"}}],
                "responses": {
                    "201": {"description": "User registered and tokens generated", "schema": {"$ref": "#/definitions/handlers.AuthResponse"}},
                    "400": {"description": "Invalid input", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "409": {"description": "Username taken", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/auth/login": {
            "post": {
                "tags": ["auth"],
                "summary": "Login user",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/handlers.LoginRequest"}}],
                "responses": {
                    "200": {"description": "User authenticated and tokens generated", "schema": {"$ref": "#/definitions/handlers.AuthResponse"}},
                    "401": {"description": "Invalid credentials", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "423": {"description": "Account locked", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/auth/refresh": {
            "post": {
                "tags": ["auth"],
                "summary": "Refresh tokens",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/handlers.RefreshRequest"}}],
                "responses": {
                    "200": {"description": "New token pair", "schema": {"$ref": "#/definitions/handlers.AuthResponse"}},
                    "401": {"description": "Invalid refresh token", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/profile": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["user"],
                "summary": "Get user profile",
                "responses": {"200": {"description": "User profile", "schema": {"$ref": "#/definitions/handlers.UserResponse"}}}
            }
        },
        "/": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["entries"],
                "summary": "List entries",
                "parameters": [
                    {"type": "string", "name": "custom_date_from", "in": "query"},
                    {"type": "string", "name": "custom_date_to", "in": "query"},
                    {"type": "integer", "name": "type", "in": "query"},
                    {"type": "integer", "name": "category", "in": "query"},
                    {"type": "integer", "name": "subcategory", "in": "query"},
                    {"type": "integer", "name": "status", "in": "query"},
                    {"type": "string", "name": "amount_min", "in": "query"},
                    {"type": "string", "name": "amount_max", "in": "query"},
                    {"type": "string", "name": "comment", "in": "query"},
                    {"type": "integer", "name": "page", "in": "query"},
                    {"type": "integer", "name": "per_page", "in": "query"}
                ],
                "responses": {"200": {"description": "Paginated entries with applied filters and form options"}}
            }
        },
        "/reset-filters/": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["entries"],
                "summary": "Reset filters",
                "responses": {"302": {"description": "Redirect to the listing"}}
            }
        },
        "/create-dds/": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["entries"],
                "summary": "Entry creation form",
                "responses": {"200": {"description": "Form options", "schema": {"$ref": "#/definitions/services.FormOptions"}}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["entries"],
                "summary": "Create an entry",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/handlers.EntryRequest"}}],
                "responses": {
                    "201": {"description": "Entry created", "schema": {"$ref": "#/definitions/handlers.EntryResponse"}},
                    "400": {"description": "Invalid input or reference", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/update-dds/{id}/": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["entries"],
                "summary": "Entry edit form",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "Entry and form options"}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["entries"],
                "summary": "Update an entry",
                "parameters": [
                    {"type": "integer", "name": "id", "in": "path", "required": true},
                    {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/handlers.EntryRequest"}}
                ],
                "responses": {"200": {"description": "Entry updated", "schema": {"$ref": "#/definitions/handlers.EntryResponse"}}}
            }
        },
        "/delete-dds/{id}/": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["entries"],
                "summary": "Entry delete confirmation",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "Entry", "schema": {"$ref": "#/definitions/handlers.EntryResponse"}}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["entries"],
                "summary": "Delete an entry",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "Entry deleted"}}
            }
        },
        "/references/": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["references"],
                "summary": "Reference navigation",
                "responses": {"200": {"description": "Reference kinds"}}
            }
        },
        "/reference/{kind}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["references"],
                "summary": "List references",
                "parameters": [{"type": "string", "name": "kind", "in": "path", "required": true}],
                "responses": {"200": {"description": "Paginated references"}}
            }
        },
        "/reference/{kind}/create": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["references"],
                "summary": "Reference creation form",
                "parameters": [{"type": "string", "name": "kind", "in": "path", "required": true}],
                "responses": {"200": {"description": "Form options"}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["references"],
                "summary": "Create a reference",
                "parameters": [
                    {"type": "string", "name": "kind", "in": "path", "required": true},
                    {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/handlers.ReferenceRequest"}}
                ],
                "responses": {
                    "201": {"description": "Reference created", "schema": {"$ref": "#/definitions/models.ReferenceRecord"}},
                    "409": {"description": "Duplicate name", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/reference/{kind}/{id}/update": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["references"],
                "summary": "Reference edit form",
                "parameters": [
                    {"type": "string", "name": "kind", "in": "path", "required": true},
                    {"type": "integer", "name": "id", "in": "path", "required": true}
                ],
                "responses": {"200": {"description": "Reference and form options"}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["references"],
                "summary": "Update a reference",
                "parameters": [
                    {"type": "string", "name": "kind", "in": "path", "required": true},
                    {"type": "integer", "name": "id", "in": "path", "required": true},
                    {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/handlers.ReferenceRequest"}}
                ],
                "responses": {"200": {"description": "Reference updated", "schema": {"$ref": "#/definitions/models.ReferenceRecord"}}}
            }
        },
        "/reference/{kind}/{id}/delete": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["references"],
                "summary": "Reference delete confirmation",
                "parameters": [
                    {"type": "string", "name": "kind", "in": "path", "required": true},
                    {"type": "integer", "name": "id", "in": "path", "required": true}
                ],
                "responses": {"200": {"description": "Reference", "schema": {"$ref": "#/definitions/models.ReferenceRecord"}}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["references"],
                "summary": "Delete a reference",
                "parameters": [
                    {"type": "string", "name": "kind", "in": "path", "required": true},
                    {"type": "integer", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "Reference deleted"},
                    "409": {"description": "Reference in use", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/category-autocomplete/": {
            "get": {
                "tags": ["autocomplete"],
                "summary": "Category autocomplete",
                "parameters": [
                    {"type": "integer", "name": "type", "in": "query"},
                    {"type": "string", "name": "forward", "in": "query"},
                    {"type": "string", "name": "q", "in": "query"}
                ],
                "responses": {"200": {"description": "Select2 results", "schema": {"$ref": "#/definitions/handlers.AutocompleteResponse"}}}
            }
        },
        "/subcategory-autocomplete/": {
            "get": {
                "tags": ["autocomplete"],
                "summary": "Subcategory autocomplete",
                "parameters": [
                    {"type": "integer", "name": "category", "in": "query"},
                    {"type": "string", "name": "forward", "in": "query"},
                    {"type": "string", "name": "q", "in": "query"}
                ],
                "responses": {"200": {"description": "Select2 results", "schema": {"$ref": "#/definitions/handlers.AutocompleteResponse"}}}
            }
        }
    },
    "definitions": {
        "handlers.ErrorDetail": {
            "type": "object",
            "properties": {"code": {"type": "string"}, "message": {"type": "string"}}
        },
        "handlers.ErrorResponse": {
            "type": "object",
            "properties": {"error": {"$ref": "#/definitions/handlers.ErrorDetail"}}
        },
        "handlers.RegisterRequest": {
            "type": "object",
            "required": ["password", "username"],
            "properties": {"username": {"type": "string", "maxLength": 150}, "password": {"type": "string", "maxLength": 128, "minLength": 8}}
        },
        "handlers.LoginRequest": {
            "type": "object",
            "required": ["password", "username"],
            "properties": {"username": {"type": "string"}, "password": {"type": "string"}}
        },
        "handlers.RefreshRequest": {
            "type": "object",
            "required": ["refresh_token"],
            "properties": {"refresh_token": {"type": "string"}}
        },
        "handlers.UserResponse": {
            "type": "object",
            "properties": {"id": {"type": "integer"}, "username": {"type": "string"}}
        },
        "handlers.AuthResponse": {
            "type": "object",
            "properties": {
                "access_token": {"type": "string"},
                "refresh_token": {"type": "string"},
                "user": {"$ref": "#/definitions/handlers.UserResponse"}
            }
        },
        "handlers.EntryRequest": {
            "type": "object",
            "required": ["amount", "category", "status", "subcategory", "type"],
            "properties": {
                "custom_date": {"type": "string", "example": "2024-05-01"},
                "type": {"type": "integer"},
                "category": {"type": "integer"},
                "subcategory": {"type": "integer"},
                "status": {"type": "integer"},
                "amount": {"type": "string", "example": "125.50"},
                "comment": {"type": "string"}
            }
        },
        "handlers.ReferenceRef": {
            "type": "object",
            "properties": {"id": {"type": "integer"}, "name": {"type": "string"}}
        },
        "handlers.EntryResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "created_at": {"type": "string"},
                "custom_date": {"type": "string"},
                "type": {"$ref": "#/definitions/handlers.ReferenceRef"},
                "category": {"$ref": "#/definitions/handlers.ReferenceRef"},
                "subcategory": {"$ref": "#/definitions/handlers.ReferenceRef"},
                "status": {"$ref": "#/definitions/handlers.ReferenceRef"},
                "amount": {"type": "string"},
                "comment": {"type": "string"}
            }
        },
        "handlers.ReferenceRequest": {
            "type": "object",
            "required": ["name"],
            "properties": {
                "name": {"type": "string", "maxLength": 100},
                "parent": {"type": "integer"},
                "type": {"type": "integer"},
                "category": {"type": "integer"}
            }
        },
        "handlers.AutocompleteResult": {
            "type": "object",
            "properties": {"id": {"type": "string"}, "text": {"type": "string"}}
        },
        "handlers.AutocompleteResponse": {
            "type": "object",
            "properties": {
                "results": {"type": "array", "items": {"$ref": "#/definitions/handlers.AutocompleteResult"}},
                "pagination": {"type": "object", "properties": {"more": {"type": "boolean"}}}
            }
        },
        "models.ReferenceRecord": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "kind": {"type": "string"},
                "name": {"type": "string"},
                "parent_id": {"type": "integer"},
                "parent_name": {"type": "string"},
                "created_at": {"type": "string"},
                "updated_at": {"type": "string"}
            }
        },
        "services.FormOptions": {
            "type": "object",
            "properties": {
                "types": {"type": "array", "items": {"$ref": "#/definitions/models.ReferenceRecord"}},
                "categories": {"type": "array", "items": {"$ref": "#/definitions/models.ReferenceRecord"}},
                "subcategories": {"type": "array", "items": {"$ref": "#/definitions/models.ReferenceRecord"}},
                "statuses": {"type": "array", "items": {"$ref": "#/definitions/models.ReferenceRecord"}}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Type \"Bearer\" followed by a space and JWT token.",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Cash-flow Ledger API",
	Description:      "Record money movements, classify them by type, category, subcategory and status, and filter the history.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
