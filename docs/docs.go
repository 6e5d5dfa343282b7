package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "description": "MedGateway API Documentation",
        "title": "MedGateway API",
        "version": "1.0"
    },
    "host": "localhost:8080",
    "basePath": "/api/v1",
    "schemes": ["http"],
    "paths": {
        "/health": {
            "get": {
                "tags": ["Health"],
                "summary": "Health Check",
                "description": "Check if the gateway is running",
                "responses": {
                    "200": {
                        "description": "Gateway is healthy"
                    }
                }
            }
        },
        "/ready": {
            "get": {
                "tags": ["Health"],
                "summary": "Readiness Check",
                "description": "Reports whether the legacy medication backend is reachable; the gateway serves demo data when it is not",
                "responses": {
                    "200": {
                        "description": "Readiness state including backend reachability"
                    }
                }
            }
        },
        "/api/v1/schedule": {
            "get": {
                "tags": ["Schedule"],
                "summary": "Day Schedule",
                "description": "Time-grouped medication slots for one calendar date",
                "produces": ["application/json"],
                "parameters": [
                    {
                        "in": "query",
                        "name": "date",
                        "description": "Calendar date (YYYY-MM-DD)",
                        "required": true,
                        "type": "string"
                    }
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Schedule slots; synthetic=true means demo-mode data"
                    },
                    "400": {
                        "description": "Missing or malformed date"
                    }
                }
            }
        },
        "/api/v1/medications": {
            "get": {
                "tags": ["Medications"],
                "summary": "List Medications",
                "description": "Refresh and return the normalized medication catalog",
                "produces": ["application/json"],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Medication list"
                    }
                }
            },
            "post": {
                "tags": ["Medications"],
                "summary": "Create Medication",
                "description": "Create a medication; falls back to the simplified payload when the backend rejects the full shape",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {
                        "in": "body",
                        "name": "medication",
                        "description": "Medication data",
                        "required": true,
                        "schema": {
                            "type": "object",
                            "properties": {
                                "name": {
                                    "type": "string",
                                    "example": "Atorvastatin"
                                },
                                "dosage": {
                                    "type": "string",
                                    "example": "20mg"
                                },
                                "pill_type": {
                                    "type": "string",
                                    "example": "white"
                                }
                            }
                        }
                    }
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Medication created"
                    },
                    "400": {
                        "description": "Invalid input"
                    }
                }
            }
        },
        "/api/v1/reminders": {
            "get": {
                "tags": ["Reminders"],
                "summary": "List Reminders",
                "description": "Reminders for one calendar date with linked medication doses",
                "produces": ["application/json"],
                "parameters": [
                    {
                        "in": "query",
                        "name": "date",
                        "description": "Calendar date (YYYY-MM-DD)",
                        "required": true,
                        "type": "string"
                    }
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Reminder list"
                    }
                }
            },
            "post": {
                "tags": ["Reminders"],
                "summary": "Create Reminder",
                "description": "Create a reminder; preserved offline as a synthetic record when the backend is unreachable",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Reminder created on the backend"
                    },
                    "202": {
                        "description": "Reminder preserved offline, pending backend confirmation"
                    }
                }
            }
        },
        "/api/v1/doses/{id}/taken": {
            "put": {
                "tags": ["Doses"],
                "summary": "Mark Dose Taken",
                "produces": ["application/json"],
                "parameters": [
                    {
                        "in": "path",
                        "name": "id",
                        "description": "Reminder-medication link ID",
                        "required": true,
                        "type": "string"
                    }
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Status updated"
                    },
                    "404": {
                        "description": "Dose not found"
                    }
                }
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header",
            "description": "Type 'Bearer' followed by a space and JWT token"
        }
    }
}`

var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{"http"},
	Title:            "MedGateway API",
	Description:      "MedGateway API Documentation",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
