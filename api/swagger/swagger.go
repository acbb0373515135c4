package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "ClassPoints API",
        "description": "Classroom points ledger: students, groups, rewards, lucky draw",
        "version": "0.1.0"
    },
    "basePath": "/api",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Students", "description": "Roster management and bulk import"},
        {"name": "Groups", "description": "Student groups and membership"},
        {"name": "Points", "description": "Ledger adjustments and redemptions"},
        {"name": "Rewards", "description": "Reward shop catalogue"},
        {"name": "Turntable", "description": "Lucky-draw prizes and spins"},
        {"name": "Records", "description": "Audit history and exports"},
        {"name": "Data", "description": "Whole-tenant snapshot operations"}
    ],
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "paths": {
        "/students": {
            "get": {
                "tags": ["Students"],
                "summary": "List students",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Students"],
                "summary": "Add a student",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateStudentRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Duplicate student ID"}
                }
            }
        },
        "/students/{id}": {
            "put": {
                "tags": ["Students"],
                "summary": "Update a student's name and group",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateStudentRequest"}}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Student not found"}
                }
            },
            "delete": {
                "tags": ["Students"],
                "summary": "Delete a student (audit records are kept)",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Student not found"}
                }
            }
        },
        "/students/import": {
            "post": {
                "tags": ["Students"],
                "summary": "Replace the roster from a bulk import",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"type": "array", "items": {"$ref": "#/definitions/StudentImport"}}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/students/{id}/points": {
            "post": {
                "tags": ["Points"],
                "summary": "Adjust one student's points",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/AdjustRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Student not found"}
                }
            }
        },
        "/students/{id}/redeem": {
            "post": {
                "tags": ["Points"],
                "summary": "Redeem a reward for a student",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/RedeemRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Student or reward not found"},
                    "409": {"description": "Insufficient balance"}
                }
            }
        },
        "/groups": {
            "get": {
                "tags": ["Groups"],
                "summary": "List groups",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Groups"],
                "summary": "Create a group",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/GroupRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/groups/{id}": {
            "put": {
                "tags": ["Groups"],
                "summary": "Rename a group",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/GroupRequest"}}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Group not found"}
                }
            },
            "delete": {
                "tags": ["Groups"],
                "summary": "Delete a group and ungroup its members",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Group not found"}
                }
            }
        },
        "/groups/{id}/members": {
            "put": {
                "tags": ["Groups"],
                "summary": "Replace a group's membership",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/MembersRequest"}}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Group not found"}
                }
            }
        },
        "/groups/{id}/points": {
            "post": {
                "tags": ["Points"],
                "summary": "Adjust every member of a group",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/AdjustRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "422": {"description": "Group has no members"}
                }
            }
        },
        "/class/points": {
            "post": {
                "tags": ["Points"],
                "summary": "Adjust the whole class",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/AdjustRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "422": {"description": "Roster is empty"}
                }
            }
        },
        "/rewards": {
            "get": {
                "tags": ["Rewards"],
                "summary": "List rewards",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Rewards"],
                "summary": "Create a reward",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/RewardRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/rewards/{id}": {
            "put": {
                "tags": ["Rewards"],
                "summary": "Update a reward",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/RewardRequest"}}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Reward not found"}
                }
            },
            "delete": {
                "tags": ["Rewards"],
                "summary": "Delete a reward",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/turntable/prizes": {
            "get": {
                "tags": ["Turntable"],
                "summary": "List turntable prizes",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Turntable"],
                "summary": "Add a turntable prize",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/PrizeRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/turntable/prizes/{id}": {
            "put": {
                "tags": ["Turntable"],
                "summary": "Update a prize label",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/PrizeRequest"}}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Prize not found"}
                }
            },
            "delete": {
                "tags": ["Turntable"],
                "summary": "Delete a prize",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/turntable/spin": {
            "post": {
                "tags": ["Turntable"],
                "summary": "Spin the wheel for a student",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SpinRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Student not found"}
                }
            }
        },
        "/settings/turntable-cost": {
            "put": {
                "tags": ["Turntable"],
                "summary": "Update the spin cost",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/TurntableCostRequest"}}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/records": {
            "get": {
                "tags": ["Records"],
                "summary": "List point records",
                "parameters": [
                    {"name": "student", "in": "query", "type": "string"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "limit", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/records/export": {
            "get": {
                "tags": ["Records"],
                "summary": "Export the full history as CSV or PDF",
                "parameters": [
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]}
                ],
                "responses": {
                    "200": {"description": "File download"}
                }
            }
        },
        "/data": {
            "get": {
                "tags": ["Data"],
                "summary": "Fetch the tenant's full dataset",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Data"],
                "summary": "Delete all tenant data",
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/data/import": {
            "post": {
                "tags": ["Data"],
                "summary": "Restore a previously exported dataset",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SnapshotImport"}}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        }
    },
    "definitions": {
        "Student": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "group": {"type": "string"},
                "points": {"type": "integer"},
                "totalEarnedPoints": {"type": "integer"},
                "totalDeductions": {"type": "integer"}
            }
        },
        "StudentImport": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "group": {"type": "string"},
                "points": {"type": "integer"},
                "totalEarnedPoints": {"type": "integer"},
                "totalDeductions": {"type": "integer"}
            },
            "required": ["id", "name"]
        },
        "Record": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "time": {"type": "string"},
                "studentId": {"type": "string"},
                "studentName": {"type": "string"},
                "change": {"type": "string"},
                "reason": {"type": "string"},
                "category": {"type": "string", "enum": ["MANUAL", "REDEMPTION", "DRAW_COST", "DRAW_BONUS"]},
                "finalPoints": {"type": "integer"}
            }
        },
        "CreateStudentRequest": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "group": {"type": "string"}
            },
            "required": ["id", "name"]
        },
        "UpdateStudentRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "group": {"type": "string"}
            },
            "required": ["name"]
        },
        "AdjustRequest": {
            "type": "object",
            "properties": {
                "delta": {"type": "integer"},
                "reason": {"type": "string"},
                "category": {"type": "string", "enum": ["MANUAL", "REDEMPTION", "DRAW_COST", "DRAW_BONUS"]}
            },
            "required": ["delta", "reason"]
        },
        "RedeemRequest": {
            "type": "object",
            "properties": {
                "rewardId": {"type": "string"}
            },
            "required": ["rewardId"]
        },
        "GroupRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"}
            },
            "required": ["name"]
        },
        "MembersRequest": {
            "type": "object",
            "properties": {
                "members": {"type": "array", "items": {"type": "string"}}
            }
        },
        "RewardRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "cost": {"type": "integer", "minimum": 1}
            },
            "required": ["name", "cost"]
        },
        "PrizeRequest": {
            "type": "object",
            "properties": {
                "text": {"type": "string"}
            },
            "required": ["text"]
        },
        "SpinRequest": {
            "type": "object",
            "properties": {
                "studentId": {"type": "string"}
            },
            "required": ["studentId"]
        },
        "TurntableCostRequest": {
            "type": "object",
            "properties": {
                "cost": {"type": "integer", "minimum": 1}
            },
            "required": ["cost"]
        },
        "SnapshotImport": {
            "type": "object",
            "properties": {
                "students": {"type": "array", "items": {"$ref": "#/definitions/StudentImport"}},
                "groups": {"type": "array", "items": {"type": "object"}},
                "rewards": {"type": "array", "items": {"type": "object"}},
                "records": {"type": "array", "items": {"$ref": "#/definitions/Record"}},
                "turntablePrizes": {"type": "array", "items": {"type": "object"}},
                "turntableCost": {"type": "integer"}
            },
            "required": ["students"]
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
