// Package docs holds the OpenAPI document served at /swagger. Regenerate with `swag init -g cmd/firefly-assistant/main.go`.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "license": {
            "name": "MIT",
            "url": "https://opensource.org/licenses/MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/api/accounts": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["ledger"],
                "summary": "Ledger accounts",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"$ref": "#/definitions/firefly.Account"}}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/api/default": {
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Merges the posted keys into the settings file.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["settings"],
                "summary": "Update user settings",
                "parameters": [
                    {"description": "Settings to merge", "name": "request", "in": "body", "required": true, "schema": {"type": "object", "additionalProperties": true}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.MessageResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/api/default_account": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "Returns the saved settings plus version and firefly_iii_url. Default accounts set to \"-1\" are derived from the latest transactions and saved.",
                "produces": ["application/json"],
                "tags": ["settings"],
                "summary": "User settings",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": true}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/api/history": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["transactions"],
                "summary": "Recently recorded batches",
                "parameters": [
                    {"type": "integer", "description": "Maximum number of entries", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/dto.HistoryResponse"}}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/api/parse": {
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Accepts the text as text/plain or as JSON {\"text\": \"...\"}. Failures are reported in think_result.",
                "consumes": ["text/plain", "application/json"],
                "produces": ["application/json"],
                "tags": ["transactions"],
                "summary": "Parse free text into transaction drafts",
                "parameters": [
                    {"description": "Text to parse", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.ParseRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.ParseResult"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/api/record": {
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Validates every draft against the ledger categories and tags and posts the valid ones. Per-item failures are reported in the result.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["transactions"],
                "summary": "Record transaction drafts",
                "parameters": [
                    {"type": "boolean", "description": "Validate and build payloads without posting", "name": "dry_run", "in": "query"},
                    {"description": "Drafts to record", "name": "request", "in": "body", "required": true, "schema": {"type": "array", "items": {"$ref": "#/definitions/models.TransactionDraft"}}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.RecordResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/api/tags-and-categories": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["ledger"],
                "summary": "Known categories and tags",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.TagsAndCategoriesResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/api/transactions": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["ledger"],
                "summary": "Latest ledger transactions",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"$ref": "#/definitions/firefly.TransactionSummary"}}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/user/auth/login": {
            "post": {
                "description": "Exchange the configured username and password for a token pair",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Login",
                "parameters": [
                    {"description": "Login request", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.AuthResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/user/auth/refresh": {
            "post": {
                "description": "Issue a new token pair from a refresh token",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Refresh access token",
                "parameters": [
                    {"description": "Refresh token request", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.RefreshTokenRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.AuthResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "dto.AuthResponse": {
            "type": "object",
            "properties": {
                "access_token": {"type": "string"},
                "expires_in": {"type": "integer"},
                "refresh_token": {"type": "string"},
                "token_type": {"type": "string"},
                "user": {"$ref": "#/definitions/dto.UserResponse"}
            }
        },
        "dto.ErrorResponse": {
            "type": "object",
            "properties": {"error": {"type": "string"}}
        },
        "dto.HistoryResponse": {
            "type": "object",
            "properties": {
                "batch_id": {"type": "string"},
                "created_at": {"type": "string"},
                "dry_run": {"type": "boolean"},
                "error_count": {"type": "integer"},
                "id": {"type": "string"},
                "success_count": {"type": "integer"}
            }
        },
        "dto.LoginRequest": {
            "type": "object",
            "properties": {
                "password": {"type": "string"},
                "username": {"type": "string"}
            }
        },
        "dto.MessageResponse": {
            "type": "object",
            "properties": {"message": {"type": "string"}}
        },
        "dto.ParseRequest": {
            "type": "object",
            "properties": {"text": {"type": "string"}}
        },
        "dto.RecordResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "result": {"$ref": "#/definitions/models.BatchResult"}
            }
        },
        "dto.RefreshTokenRequest": {
            "type": "object",
            "properties": {"refresh_token": {"type": "string"}}
        },
        "dto.TagsAndCategoriesResponse": {
            "type": "object",
            "properties": {
                "categories": {"type": "array", "items": {"type": "string"}},
                "tags": {"type": "array", "items": {"type": "string"}}
            }
        },
        "dto.UserResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "username": {"type": "string"}
            }
        },
        "firefly.Account": {
            "type": "object",
            "properties": {
                "account_role": {"type": "string"},
                "current_balance": {"type": "string"},
                "links": {"type": "string"},
                "name": {"type": "string"},
                "type": {"type": "string"}
            }
        },
        "firefly.TransactionSummary": {
            "type": "object",
            "properties": {
                "amount": {"type": "string"},
                "category_id": {"type": "string"},
                "category_name": {"type": "string"},
                "date": {"type": "string"},
                "description": {"type": "string"},
                "destination_id": {"type": "string"},
                "source_id": {"type": "string"},
                "tags": {"type": "array", "items": {"type": "string"}}
            }
        },
        "models.BatchResult": {
            "type": "object",
            "properties": {
                "batch_id": {"type": "string"},
                "dry_run": {"type": "boolean"},
                "error_count": {"type": "integer"},
                "results": {"type": "array", "items": {"$ref": "#/definitions/models.RecordOutcome"}},
                "success_count": {"type": "integer"}
            }
        },
        "models.ParseResult": {
            "type": "object",
            "properties": {
                "think_result": {"type": "string"},
                "transactions": {"type": "array", "items": {"$ref": "#/definitions/models.TransactionDraft"}}
            }
        },
        "models.RecordOutcome": {
            "type": "object",
            "properties": {
                "dry_run": {"type": "boolean"},
                "error": {"type": "string"},
                "payload": {"type": "object"},
                "response": {"type": "object"},
                "status": {"type": "string", "enum": ["success", "validation_error", "submission_error"]},
                "success": {"type": "boolean"},
                "transaction": {"$ref": "#/definitions/models.TransactionDraft"}
            }
        },
        "models.TransactionDraft": {
            "type": "object",
            "properties": {
                "amount": {"type": "string", "example": "66.00"},
                "category": {"type": "string"},
                "date": {"type": "string", "example": "2025-07-06T12:00"},
                "description": {"type": "string"},
                "destination_id": {"type": "string"},
                "notes": {"type": "string"},
                "source_id": {"type": "string"},
                "tags": {"type": "array", "items": {"type": "string"}}
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
	Version:          "0.1.2",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Firefly Assistant API",
	Description:      "Turns free-text spending notes into Firefly III transactions.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
