// Package docs holds the OpenAPI document served under /swagger. Keep it in
// step with the swag annotations on the handlers.
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
        "/": {
            "get": {
                "produces": ["text/plain"],
                "tags": ["health"],
                "summary": "Liveness text",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "string"}}
                }
            }
        },
        "/health": {
            "get": {
                "description": "Check the health of the service and its dependencies",
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.HealthStatus"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/handler.HealthStatus"}}
                }
            }
        },
        "/health/live": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Liveness probe",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/health/ready": {
            "get": {
                "description": "Ready only when the messaging provider is configured",
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Readiness probe",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "503": {"description": "Service Unavailable", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/status": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Relay status",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.StatusInfo"}}
                }
            }
        },
        "/send-whatsapp": {
            "post": {
                "description": "Forward a free-form text to the configured WhatsApp number",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["notifications"],
                "summary": "Send WhatsApp message",
                "parameters": [
                    {"description": "Message", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/domain.MessageRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.MessageSentResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.BadRequestResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handler.MessageFailedResponse"}}
                }
            }
        },
        "/notify-appointment": {
            "post": {
                "description": "Send an appointment summary; absent fields are defaulted",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["notifications"],
                "summary": "Notify appointment update",
                "parameters": [
                    {"description": "Appointment", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/domain.AppointmentRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.NotificationResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.NotificationResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handler.NotificationResponse"}}
                }
            }
        },
        "/notify-delivery": {
            "post": {
                "description": "Send a tracking link for a command to the customer's WhatsApp number",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["notifications"],
                "summary": "Notify delivery",
                "parameters": [
                    {"description": "Delivery", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/domain.DeliveryRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.NotificationResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.NotificationResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handler.NotificationResponse"}}
                }
            }
        },
        "/ws": {
            "get": {
                "description": "Live feed of dispatch outcomes",
                "tags": ["websocket"],
                "summary": "Dispatch feed",
                "responses": {
                    "101": {"description": "Switching Protocols", "schema": {"type": "string"}}
                }
            }
        }
    },
    "definitions": {
        "domain.MessageRequest": {
            "type": "object",
            "required": ["message"],
            "properties": {
                "message": {"type": "string"}
            }
        },
        "domain.AppointmentRequest": {
            "type": "object",
            "properties": {
                "appointmentId": {"type": "string", "example": "RDV-42"},
                "customerName": {"type": "string", "example": "Awa Ndiaye"},
                "date": {"type": "string", "example": "2025-06-12"},
                "time": {"type": "string", "example": "14:30"},
                "reason": {"type": "string", "example": "Consultation"},
                "status": {"type": "string", "example": "confirmed"}
            }
        },
        "domain.DeliveryRequest": {
            "type": "object",
            "required": ["commandId", "phoneNumber"],
            "properties": {
                "commandId": {"type": "string", "example": "CMD-TEST-001"},
                "phoneNumber": {"type": "string", "example": "+237650892780"}
            }
        },
        "handler.BadRequestResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"}
            }
        },
        "handler.ComponentStatus": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "status": {"type": "string"}
            }
        },
        "handler.HealthStatus": {
            "type": "object",
            "properties": {
                "components": {"type": "object", "additionalProperties": {"$ref": "#/definitions/handler.ComponentStatus"}},
                "status": {"type": "string"},
                "timestamp": {"type": "string"}
            }
        },
        "handler.MessageFailedResponse": {
            "type": "object",
            "properties": {
                "error_message": {"type": "string"},
                "status": {"type": "string", "example": "error"}
            }
        },
        "handler.MessageSentResponse": {
            "type": "object",
            "properties": {
                "message_sid": {"type": "string", "example": "SM123"},
                "status": {"type": "string", "example": "success"}
            }
        },
        "handler.NotificationResponse": {
            "type": "object",
            "properties": {
                "command_id": {"type": "string", "example": "CMD-TEST-001"},
                "message": {"type": "string"},
                "sent_to": {"type": "string", "example": "whatsapp:+237650892780"},
                "status": {"type": "string", "example": "success"},
                "twilio_sid": {"type": "string", "example": "SM123"}
            }
        },
        "handler.StatusInfo": {
            "type": "object",
            "properties": {
                "configured": {"type": "boolean"},
                "default_recipient_set": {"type": "boolean"},
                "sender": {"type": "string"},
                "subscribers": {"type": "integer"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "WhatsApp Notifier API",
	Description:      "HTTP-to-WhatsApp notification relay",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
