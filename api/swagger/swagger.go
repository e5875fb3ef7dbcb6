package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Warrior Support System API",
        "description": "Personnel welfare and mental-health tracking for battalion units",
        "version": "1.0.0"
    },
    "basePath": "/api",
    "schemes": [
        "http"
    ],
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "tags": [
        {"name": "Authentication", "description": "Accounts and tokens"},
        {"name": "Battalions", "description": "Battalion management"},
        {"name": "Personnel", "description": "Roster management"},
        {"name": "Questions", "description": "Self-assessment question bank"},
        {"name": "Examinations", "description": "Self-assessment submissions and history"},
        {"name": "Evaluations", "description": "Peer evaluations"},
        {"name": "CSV", "description": "Roster import and export"},
        {"name": "Reports", "description": "Printable roster reports"},
        {"name": "SeverePersonnel", "description": "Severe-case triage list"}
    ],
    "paths": {
        "/auth/register": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Register a new account",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/RegisterRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation failed or duplicate"}
                }
            }
        },
        "/auth/login": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Authenticate and obtain a bearer token",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Invalid credentials"}
                }
            }
        },
        "/auth/profile": {
            "get": {
                "tags": ["Authentication"],
                "summary": "Current user's record",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/auth/change-password": {
            "put": {
                "tags": ["Authentication"],
                "summary": "Change password",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ChangePasswordRequest"}}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/user": {
            "get": {
                "tags": ["Users"],
                "summary": "List accounts",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "role", "in": "query", "type": "string"},
                    {"name": "active", "in": "query", "type": "boolean"},
                    {"name": "search", "in": "query", "type": "string"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "limit", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/user/{id}": {
            "put": {
                "tags": ["Users"],
                "summary": "Update an account",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateUserRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/user/{id}/active": {
            "put": {
                "tags": ["Users"],
                "summary": "Activate or deactivate an account",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SetActiveRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/stats/system": {
            "get": {
                "tags": ["Metrics"],
                "summary": "Aggregate system metrics snapshot",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/battalion": {
            "get": {
                "tags": ["Battalions"],
                "summary": "List battalions",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Battalions"],
                "summary": "Create battalion",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateBattalionRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Duplicate name"}
                }
            }
        },
        "/battalion/{id}": {
            "delete": {
                "tags": ["Battalions"],
                "summary": "Delete battalion and its roster",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Not found"}
                }
            }
        },
        "/personnel": {
            "post": {
                "tags": ["Personnel"],
                "summary": "Create personnel",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreatePersonnelRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Duplicate army number"},
                    "403": {"description": "Different battalion"}
                }
            }
        },
        "/personnel/{id}": {
            "get": {
                "tags": ["Personnel"],
                "summary": "Get personnel detail",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "put": {
                "tags": ["Personnel"],
                "summary": "Update personnel",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdatePersonnelRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Personnel"],
                "summary": "Delete personnel",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/personnel/battalion/{battalionId}": {
            "get": {
                "tags": ["Personnel"],
                "summary": "List battalion roster",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "battalionId", "in": "path", "required": true, "type": "string"},
                    {"name": "search", "in": "query", "type": "string"},
                    {"name": "selfEvalStatus", "in": "query", "type": "string"},
                    {"name": "peerEvalStatus", "in": "query", "type": "string"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "limit", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Different battalion"}
                }
            },
            "delete": {
                "tags": ["Personnel"],
                "summary": "Delete a battalion's entire roster",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "battalionId", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/question": {
            "get": {
                "tags": ["Questions"],
                "summary": "List active questions",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Questions"],
                "summary": "Create question",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/QuestionRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/question/{id}": {
            "put": {
                "tags": ["Questions"],
                "summary": "Update question",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/QuestionRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Questions"],
                "summary": "Delete question",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/examination/submit": {
            "post": {
                "tags": ["Examinations"],
                "summary": "Submit a self-assessment",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SubmitExamRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Not the caller's own record"}
                }
            }
        },
        "/examination/personnel/{armyNo}": {
            "get": {
                "tags": ["Examinations"],
                "summary": "Examination history",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "armyNo", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/evaluation/submit": {
            "post": {
                "tags": ["Evaluations"],
                "summary": "Submit a peer evaluation",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SubmitEvaluationRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Unknown personnel"},
                    "403": {"description": "Different battalion"},
                    "409": {"description": "Already evaluated"}
                }
            }
        },
        "/csv/export/{battalionId}": {
            "get": {
                "tags": ["CSV"],
                "summary": "Export battalion roster as CSV",
                "security": [{"BearerAuth": []}],
                "produces": ["text/csv"],
                "parameters": [
                    {"name": "battalionId", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "CSV file"}
                }
            }
        },
        "/csv/import/{battalionId}": {
            "post": {
                "tags": ["CSV"],
                "summary": "Import personnel from CSV",
                "security": [{"BearerAuth": []}],
                "consumes": ["multipart/form-data"],
                "parameters": [
                    {"name": "battalionId", "in": "path", "required": true, "type": "string"},
                    {"name": "file", "in": "formData", "required": true, "type": "file"}
                ],
                "responses": {
                    "200": {"description": "Per-row import result", "schema": {"$ref": "#/definitions/ImportResult"}}
                }
            }
        },
        "/report/pdf/{battalionId}": {
            "get": {
                "tags": ["Reports"],
                "summary": "Download battalion roster as PDF",
                "security": [{"BearerAuth": []}],
                "produces": ["application/pdf"],
                "parameters": [
                    {"name": "battalionId", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "PDF file"}
                }
            }
        },
        "/severePersonnel": {
            "get": {
                "tags": ["SeverePersonnel"],
                "summary": "List severe personnel entries",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["SeverePersonnel"],
                "summary": "Record severe personnel entries",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"type": "array", "items": {"$ref": "#/definitions/SevereEntryRequest"}}}
                ],
                "responses": {
                    "200": {"description": "Per-row insert result", "schema": {"$ref": "#/definitions/BulkInsertResult"}}
                }
            }
        },
        "/severePersonnel/{id}": {
            "delete": {
                "tags": ["SeverePersonnel"],
                "summary": "Delete a severe personnel entry",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        }
    },
    "definitions": {
        "RegisterRequest": {
            "type": "object",
            "properties": {
                "username": {"type": "string"},
                "password": {"type": "string"},
                "fullName": {"type": "string"},
                "role": {"type": "string", "enum": ["CO", "JCO", "USER"]},
                "armyNo": {"type": "string"},
                "rank": {"type": "string"},
                "battalion": {"type": "string"}
            },
            "required": ["username", "password", "role"]
        },
        "LoginRequest": {
            "type": "object",
            "properties": {
                "username": {"type": "string"},
                "password": {"type": "string"}
            },
            "required": ["username", "password"]
        },
        "ChangePasswordRequest": {
            "type": "object",
            "properties": {
                "currentPassword": {"type": "string"},
                "newPassword": {"type": "string"}
            },
            "required": ["currentPassword", "newPassword"]
        },
        "UpdateUserRequest": {
            "type": "object",
            "properties": {
                "fullName": {"type": "string"},
                "role": {"type": "string", "enum": ["CO", "JCO", "USER"]},
                "rank": {"type": "string"},
                "battalion": {"type": "string"}
            },
            "required": ["fullName", "role"]
        },
        "SetActiveRequest": {
            "type": "object",
            "properties": {
                "active": {"type": "boolean"}
            },
            "required": ["active"]
        },
        "CreateBattalionRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "postedStr": {"type": "string"}
            },
            "required": ["name"]
        },
        "CreatePersonnelRequest": {
            "type": "object",
            "properties": {
                "armyNo": {"type": "string"},
                "rank": {"type": "string"},
                "name": {"type": "string"},
                "subUnit": {"type": "string"},
                "serviceLength": {"type": "string"},
                "dateOfInduction": {"type": "string"},
                "medCat": {"type": "string"},
                "leaveAvailed": {"type": "string"},
                "maritalStatus": {"type": "string", "enum": ["SINGLE", "MARRIED", "OTHER"]},
                "battalion": {"type": "string"}
            },
            "required": ["armyNo", "rank", "name", "battalion"]
        },
        "UpdatePersonnelRequest": {
            "type": "object",
            "properties": {
                "armyNo": {"type": "string"},
                "rank": {"type": "string"},
                "name": {"type": "string"},
                "subUnit": {"type": "string"},
                "serviceLength": {"type": "string"},
                "medCat": {"type": "string"},
                "leaveAvailed": {"type": "string"},
                "maritalStatus": {"type": "string"}
            }
        },
        "QuestionRequest": {
            "type": "object",
            "properties": {
                "text": {"type": "string"},
                "category": {"type": "string", "enum": ["DEPRESSION", "ANXIETY", "STRESS"]},
                "ordinal": {"type": "integer"},
                "active": {"type": "boolean"}
            },
            "required": ["text", "category"]
        },
        "SubmitExamRequest": {
            "type": "object",
            "properties": {
                "armyNo": {"type": "string"},
                "answers": {
                    "type": "array",
                    "items": {"$ref": "#/definitions/ExamAnswer"}
                }
            },
            "required": ["armyNo", "answers"]
        },
        "ExamAnswer": {
            "type": "object",
            "properties": {
                "questionId": {"type": "string"},
                "value": {"type": "integer", "minimum": 0, "maximum": 3}
            },
            "required": ["questionId", "value"]
        },
        "SubmitEvaluationRequest": {
            "type": "object",
            "properties": {
                "armyNo": {"type": "string"},
                "answers": {"type": "object"},
                "finalScore": {"type": "integer", "minimum": 0, "maximum": 100},
                "reevaluate": {"type": "boolean"}
            },
            "required": ["armyNo", "answers"]
        },
        "SevereEntryRequest": {
            "type": "object",
            "properties": {
                "armyNo": {"type": "string"},
                "name": {"type": "string"},
                "rank": {"type": "string"},
                "battalion": {"type": "string"},
                "reason": {"type": "string"},
                "severity": {"type": "string", "enum": ["NORMAL", "MILD", "MODERATE", "SEVERE", "EXTREMELY_SEVERE"]}
            },
            "required": ["armyNo", "name", "battalion", "severity"]
        },
        "ImportResult": {
            "type": "object",
            "properties": {
                "successCount": {"type": "integer"},
                "errors": {
                    "type": "array",
                    "items": {"$ref": "#/definitions/RowError"}
                }
            }
        },
        "BulkInsertResult": {
            "type": "object",
            "properties": {
                "insertedCount": {"type": "integer"},
                "errors": {
                    "type": "array",
                    "items": {"$ref": "#/definitions/RowError"}
                }
            }
        },
        "RowError": {
            "type": "object",
            "properties": {
                "row": {"type": "integer"},
                "message": {"type": "string"}
            }
        },
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total_count": {"type": "integer"}
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
                "pagination": {"$ref": "#/definitions/Pagination"},
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
