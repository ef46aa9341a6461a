// Package docs registers the OpenAPI description served under /swagger/.
// Keep it in step with the handler annotations.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "paths": {
        "/health": {
            "get": {"tags": ["Health"], "summary": "Liveness probe", "responses": {"200": {"description": "Application is alive"}}}
        },
        "/auth/signup": {
            "post": {
                "tags": ["Auth"], "summary": "Sign up", "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/dto.SignupRequest"}}],
                "responses": {
                    "201": {"description": "Account created", "schema": {"$ref": "#/definitions/dto.AuthResponse"}},
                    "400": {"description": "Missing fields or email already registered", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}}
                }
            }
        },
        "/auth/login": {
            "post": {
                "tags": ["Auth"], "summary": "User login", "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/dto.LoginRequest"}}],
                "responses": {
                    "200": {"description": "Successfully authenticated", "schema": {"$ref": "#/definitions/dto.AuthResponse"}},
                    "401": {"description": "Invalid credentials", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}}
                }
            }
        },
        "/auth/forgot-password": {
            "post": {
                "tags": ["Auth"], "summary": "Request password reset", "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/dto.ForgotPasswordRequest"}}],
                "responses": {
                    "200": {"description": "Acknowledged"},
                    "400": {"description": "Missing email", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}}
                }
            }
        },
        "/dashboard/stats": {
            "get": {
                "tags": ["Dashboard"], "summary": "Dashboard stats", "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}, "404": {"description": "User not found"}}
            }
        },
        "/dashboard/history": {
            "get": {
                "tags": ["Dashboard"], "summary": "Report history", "security": [{"BearerAuth": []}],
                "parameters": [
                    {"in": "query", "name": "page", "type": "integer", "default": 1},
                    {"in": "query", "name": "limit", "type": "integer", "default": 10}
                ],
                "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}
            }
        },
        "/dashboard/history/{id}": {
            "delete": {
                "tags": ["Dashboard"], "summary": "Delete a report", "security": [{"BearerAuth": []}],
                "parameters": [{"in": "path", "name": "id", "type": "string", "required": true}],
                "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}, "403": {"description": "Not the owner"}, "404": {"description": "Report not found"}}
            }
        },
        "/dashboard/profile": {
            "get": {
                "tags": ["Dashboard"], "summary": "Get profile", "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}, "404": {"description": "User not found"}}
            },
            "put": {
                "tags": ["Dashboard"], "summary": "Update profile", "security": [{"BearerAuth": []}],
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/dto.UpdateProfileRequest"}}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Invalid name"}, "401": {"description": "Unauthorized"}, "404": {"description": "User not found"}}
            }
        },
        "/tool/generate": {
            "post": {
                "tags": ["Tool"], "summary": "Generate a report", "security": [{"BearerAuth": []}],
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/dto.GenerateRequest"}}],
                "responses": {
                    "201": {"description": "Report created"},
                    "400": {"description": "Missing fields"},
                    "401": {"description": "Unauthorized"},
                    "404": {"description": "User not found"},
                    "429": {"description": "Query limit reached"}
                }
            }
        }
    },
    "definitions": {
        "dto.SignupRequest": {
            "type": "object", "required": ["email", "password"],
            "properties": {"email": {"type": "string"}, "password": {"type": "string", "minLength": 6}, "name": {"type": "string"}}
        },
        "dto.LoginRequest": {
            "type": "object", "required": ["email", "password"],
            "properties": {"email": {"type": "string"}, "password": {"type": "string"}}
        },
        "dto.ForgotPasswordRequest": {
            "type": "object", "required": ["email"],
            "properties": {"email": {"type": "string"}}
        },
        "dto.UpdateProfileRequest": {
            "type": "object", "required": ["name"],
            "properties": {"name": {"type": "string"}}
        },
        "dto.GenerateRequest": {
            "type": "object", "required": ["inputData"],
            "properties": {
                "inputData": {
                    "type": "object", "required": ["fullName", "dateOfBirth"],
                    "properties": {"fullName": {"type": "string"}, "dateOfBirth": {"type": "string"}},
                    "additionalProperties": true
                },
                "type": {"type": "string", "enum": ["numerology", "astrology", "tarot", "custom"]}
            }
        },
        "dto.AuthResponse": {
            "type": "object",
            "properties": {
                "token": {"type": "string"},
                "user": {
                    "type": "object",
                    "properties": {"id": {"type": "string"}, "email": {"type": "string"}, "name": {"type": "string"}, "plan": {"type": "string"}}
                }
            }
        },
        "utils.ErrorResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "error": {
                    "type": "object",
                    "properties": {"code": {"type": "string"}, "message": {"type": "string"}, "details": {}}
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "Numera API",
	Description:      "Accounts, numerology report generation with per-plan quotas, and report history.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
