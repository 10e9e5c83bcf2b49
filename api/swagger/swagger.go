package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Classroom API",
        "description": "Teacher and student roster administration with notification recipient resolution.",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Teachers", "description": "Registration and common-student queries"},
        {"name": "Students", "description": "Student suspension"},
        {"name": "Notifications", "description": "Notification recipient resolution"}
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
                "summary": "Readiness check (pings the database)",
                "responses": {
                    "200": {"description": "Ready"},
                    "503": {"description": "Database unreachable"}
                }
            }
        },
        "/api/register": {
            "post": {
                "tags": ["Teachers"],
                "summary": "Register students to a teacher",
                "description": "Creates the teacher and students when absent and links them. Repeating a registration is harmless.",
                "consumes": ["application/json"],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/RegisterStudentsRequest"}}
                ],
                "responses": {
                    "204": {"description": "Registered"},
                    "400": {"description": "Missing teacher or students", "schema": {"$ref": "#/definitions/ErrorBody"}},
                    "500": {"description": "Storage failure", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/api/commonstudents": {
            "get": {
                "tags": ["Teachers"],
                "summary": "List students common to every given teacher",
                "produces": ["application/json"],
                "parameters": [
                    {"name": "teacher", "in": "query", "required": true, "type": "array", "items": {"type": "string"}, "collectionFormat": "multi"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/CommonStudentsResponse"}},
                    "500": {"description": "Storage failure", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/api/suspend": {
            "post": {
                "tags": ["Students"],
                "summary": "Suspend a student",
                "description": "Suspending an unknown email succeeds without effect.",
                "consumes": ["application/json"],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SuspendStudentRequest"}}
                ],
                "responses": {
                    "204": {"description": "Suspended"},
                    "400": {"description": "Missing student", "schema": {"$ref": "#/definitions/ErrorBody"}},
                    "500": {"description": "Storage failure", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/api/retrievefornotifications": {
            "post": {
                "tags": ["Notifications"],
                "summary": "Retrieve students who can receive a notification",
                "description": "Registered students of the teacher plus @-mentioned students, excluding suspended students.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/NotificationRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/NotificationRecipientsResponse"}},
                    "400": {"description": "Missing teacher or notification", "schema": {"$ref": "#/definitions/ErrorBody"}},
                    "500": {"description": "Storage failure", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        }
    },
    "definitions": {
        "RegisterStudentsRequest": {
            "type": "object",
            "required": ["teacher", "students"],
            "properties": {
                "teacher": {"type": "string", "example": "teacherken@gmail.com"},
                "students": {"type": "array", "items": {"type": "string"}, "example": ["studentjon@gmail.com", "studenthon@gmail.com"]}
            }
        },
        "SuspendStudentRequest": {
            "type": "object",
            "required": ["student"],
            "properties": {
                "student": {"type": "string", "example": "studentmary@gmail.com"}
            }
        },
        "NotificationRequest": {
            "type": "object",
            "required": ["teacher", "notification"],
            "properties": {
                "teacher": {"type": "string", "example": "teacherken@gmail.com"},
                "notification": {"type": "string", "example": "Hello students! @studentagnes@gmail.com @studentmiche@gmail.com"}
            }
        },
        "CommonStudentsResponse": {
            "type": "object",
            "properties": {
                "students": {"type": "array", "items": {"type": "string"}}
            }
        },
        "NotificationRecipientsResponse": {
            "type": "object",
            "properties": {
                "recipients": {"type": "array", "items": {"type": "string"}}
            }
        },
        "ErrorBody": {
            "type": "object",
            "properties": {
                "code": {"type": "string", "example": "VALIDATION_ERROR"},
                "message": {"type": "string"}
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
