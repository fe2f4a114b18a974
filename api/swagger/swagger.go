package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Canvas Companion API",
        "description": "Canvas LMS aggregation dashboard with an AI study companion",
        "version": "0.1.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Dashboard", "description": "Aggregated course/assignment/grade views"},
        {"name": "Companion", "description": "AI companion chat"},
        {"name": "Exports", "description": "CSV/PDF downloads"}
    ],
    "paths": {
        "/health": {
            "get": {
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/ready": {
            "get": {
                "summary": "Readiness check",
                "responses": {
                    "200": {"description": "Ready"}
                }
            }
        },
        "/": {
            "get": {
                "tags": ["Dashboard"],
                "summary": "Rendered dashboard view",
                "produces": ["text/html"],
                "responses": {
                    "200": {"description": "Dashboard page"},
                    "500": {"description": "Error page carrying the pipeline error"}
                }
            }
        },
        "/api/dashboard": {
            "get": {
                "tags": ["Dashboard"],
                "summary": "Dashboard view model as JSON",
                "produces": ["application/json"],
                "responses": {
                    "200": {
                        "description": "View model",
                        "schema": {"$ref": "#/definitions/ResponseEnvelope"}
                    },
                    "502": {"description": "Upstream LMS failure"}
                }
            }
        },
        "/api/ai-companion": {
            "post": {
                "tags": ["Companion"],
                "summary": "Ask the AI companion a question",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/CompanionRequest"}
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Completion text",
                        "schema": {"$ref": "#/definitions/CompanionResponse"}
                    },
                    "400": {"description": "No message provided"},
                    "500": {"description": "Completion failure"}
                }
            }
        },
        "/api/export/grades": {
            "get": {
                "tags": ["Exports"],
                "summary": "Download grade summaries",
                "produces": ["text/csv", "application/pdf"],
                "parameters": [
                    {"name": "format", "in": "query", "type": "string", "description": "csv or pdf"}
                ],
                "responses": {
                    "200": {"description": "Attachment"},
                    "400": {"description": "Unsupported format"}
                }
            }
        },
        "/api/export/assignments": {
            "get": {
                "tags": ["Exports"],
                "summary": "Download categorized assignments",
                "produces": ["text/csv", "application/pdf"],
                "parameters": [
                    {"name": "format", "in": "query", "type": "string", "description": "csv or pdf"}
                ],
                "responses": {
                    "200": {"description": "Attachment"},
                    "400": {"description": "Unsupported format"}
                }
            }
        }
    },
    "definitions": {
        "CompanionRequest": {
            "type": "object",
            "properties": {
                "message": {"type": "string"}
            }
        },
        "CompanionResponse": {
            "type": "object",
            "properties": {
                "response": {"type": "string"}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "meta": {"type": "object"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
