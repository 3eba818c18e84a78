// Package docs registers the OpenAPI description served at /swagger. It
// follows the layout swag init writes; regenerate it after changing the
// handler annotations.
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
        "/workflow": {
            "post": {
                "description": "Runs one engine action (auto_assign, calculate_sla, escalate, check_breach). Engine failures are reported with success=false and HTTP 200.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["workflow"],
                "summary": "Drive the workflow engine",
                "parameters": [
                    {"$ref": "#/parameters/organization"},
                    {"description": "Engine request", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.WorkflowEngineRequest"}}
                ],
                "responses": {
                    "200": {"description": "Engine response", "schema": {"$ref": "#/definitions/dto.WorkflowEngineResponse"}},
                    "400": {"description": "Malformed or invalid request", "schema": {"$ref": "#/definitions/dto.WorkflowEngineResponse"}},
                    "403": {"description": "Organization mismatch", "schema": {"$ref": "#/definitions/dto.WorkflowEngineResponse"}}
                }
            }
        },
        "/rules": {
            "get": {
                "produces": ["application/json"],
                "tags": ["rules"],
                "summary": "List assignment rules",
                "parameters": [
                    {"$ref": "#/parameters/organization"},
                    {"type": "boolean", "description": "Only enabled rules", "name": "enabled_only", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "Rules in evaluation order", "schema": {"$ref": "#/definitions/utils.APIResponse"}},
                    "400": {"description": "Invalid filter", "schema": {"$ref": "#/definitions/utils.APIResponse"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["rules"],
                "summary": "Create an assignment rule",
                "parameters": [
                    {"$ref": "#/parameters/organization"},
                    {"description": "Rule", "name": "rule", "in": "body", "required": true, "schema": {"$ref": "#/definitions/workflow.CreateRuleRequest"}}
                ],
                "responses": {
                    "201": {"description": "Rule created", "schema": {"$ref": "#/definitions/utils.APIResponse"}},
                    "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/utils.APIResponse"}}
                }
            }
        },
        "/rules/{id}": {
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["rules"],
                "summary": "Replace an assignment rule",
                "parameters": [
                    {"$ref": "#/parameters/organization"},
                    {"$ref": "#/parameters/id"},
                    {"description": "Rule", "name": "rule", "in": "body", "required": true, "schema": {"$ref": "#/definitions/workflow.RuleRequest"}}
                ],
                "responses": {
                    "200": {"description": "Rule updated", "schema": {"$ref": "#/definitions/utils.APIResponse"}},
                    "404": {"description": "Rule not found", "schema": {"$ref": "#/definitions/utils.APIResponse"}}
                }
            }
        },
        "/rules/{id}/enable": {
            "post": {
                "produces": ["application/json"],
                "tags": ["rules"],
                "summary": "Enable an assignment rule",
                "parameters": [{"$ref": "#/parameters/organization"}, {"$ref": "#/parameters/id"}],
                "responses": {
                    "200": {"description": "Rule enabled", "schema": {"$ref": "#/definitions/utils.APIResponse"}},
                    "404": {"description": "Rule not found", "schema": {"$ref": "#/definitions/utils.APIResponse"}}
                }
            }
        },
        "/rules/{id}/disable": {
            "post": {
                "produces": ["application/json"],
                "tags": ["rules"],
                "summary": "Disable an assignment rule",
                "parameters": [{"$ref": "#/parameters/organization"}, {"$ref": "#/parameters/id"}],
                "responses": {
                    "200": {"description": "Rule disabled", "schema": {"$ref": "#/definitions/utils.APIResponse"}},
                    "404": {"description": "Rule not found", "schema": {"$ref": "#/definitions/utils.APIResponse"}}
                }
            }
        },
        "/sla-policies": {
            "get": {
                "produces": ["application/json"],
                "tags": ["sla-policies"],
                "summary": "List SLA policies",
                "parameters": [{"$ref": "#/parameters/organization"}],
                "responses": {
                    "200": {"description": "Policies", "schema": {"$ref": "#/definitions/utils.APIResponse"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["sla-policies"],
                "summary": "Create an SLA policy",
                "parameters": [
                    {"$ref": "#/parameters/organization"},
                    {"description": "Policy", "name": "policy", "in": "body", "required": true, "schema": {"$ref": "#/definitions/workflow.CreatePolicyRequest"}}
                ],
                "responses": {
                    "201": {"description": "Policy created", "schema": {"$ref": "#/definitions/utils.APIResponse"}},
                    "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/utils.APIResponse"}}
                }
            }
        },
        "/sla-policies/{id}": {
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["sla-policies"],
                "summary": "Replace an SLA policy",
                "parameters": [
                    {"$ref": "#/parameters/organization"},
                    {"$ref": "#/parameters/id"},
                    {"description": "Policy", "name": "policy", "in": "body", "required": true, "schema": {"$ref": "#/definitions/workflow.PolicyRequest"}}
                ],
                "responses": {
                    "200": {"description": "Policy updated", "schema": {"$ref": "#/definitions/utils.APIResponse"}},
                    "404": {"description": "Policy not found", "schema": {"$ref": "#/definitions/utils.APIResponse"}}
                }
            }
        },
        "/sla-policies/{id}/default": {
            "post": {
                "produces": ["application/json"],
                "tags": ["sla-policies"],
                "summary": "Make a policy the organization default",
                "parameters": [{"$ref": "#/parameters/organization"}, {"$ref": "#/parameters/id"}],
                "responses": {
                    "200": {"description": "Default changed", "schema": {"$ref": "#/definitions/utils.APIResponse"}},
                    "404": {"description": "Policy not found", "schema": {"$ref": "#/definitions/utils.APIResponse"}}
                }
            }
        },
        "/reports/{id}/logs": {
            "get": {
                "produces": ["application/json"],
                "tags": ["reports"],
                "summary": "List a report's workflow log",
                "parameters": [
                    {"$ref": "#/parameters/organization"},
                    {"$ref": "#/parameters/id"},
                    {"type": "string", "description": "Filter by action", "name": "action", "in": "query"},
                    {"type": "integer", "description": "Page number", "name": "page", "in": "query"},
                    {"type": "integer", "description": "Page size", "name": "page_size", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "Log entries, oldest first", "schema": {"$ref": "#/definitions/utils.APIResponse"}}
                }
            }
        },
        "/reports/{id}/escalations": {
            "get": {
                "produces": ["application/json"],
                "tags": ["reports"],
                "summary": "List a report's escalations",
                "parameters": [{"$ref": "#/parameters/organization"}, {"$ref": "#/parameters/id"}],
                "responses": {
                    "200": {"description": "Escalations, oldest first", "schema": {"$ref": "#/definitions/utils.APIResponse"}}
                }
            }
        }
    },
    "parameters": {
        "organization": {"type": "string", "description": "Requesting organization", "name": "X-Organization-ID", "in": "header", "required": true},
        "id": {"type": "string", "description": "Resource ID", "name": "id", "in": "path", "required": true}
    },
    "definitions": {
        "dto.WorkflowEngineRequest": {
            "type": "object",
            "required": ["action", "reportId"],
            "properties": {
                "action": {"type": "string", "enum": ["auto_assign", "calculate_sla", "escalate", "check_breach"]},
                "reportId": {"type": "string"},
                "organizationId": {"type": "string", "description": "Defaults to the X-Organization-ID header"},
                "escalateTo": {"type": "string"},
                "reason": {"type": "string"},
                "slaBreached": {"type": "boolean"}
            }
        },
        "dto.WorkflowEngineResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "assigned_to": {"type": "string", "x-nullable": true},
                "rule_name": {"type": "string"},
                "sla_deadline": {"type": "string", "format": "date-time"},
                "hours": {"type": "integer"},
                "sla_state": {"type": "string", "enum": ["ok", "warning", "breached"]},
                "message": {"type": "string"},
                "error": {"type": "string"},
                "retryable": {"type": "boolean"}
            }
        },
        "utils.APIResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "data": {},
                "error": {"$ref": "#/definitions/utils.ErrorInfo"},
                "message": {"type": "string"}
            }
        },
        "utils.ErrorInfo": {
            "type": "object",
            "properties": {
                "type": {"type": "string"},
                "message": {"type": "string"},
                "details": {"type": "string"},
                "retryable": {"type": "boolean"}
            }
        },
        "workflow.RuleConditionsRequest": {
            "type": "object",
            "properties": {
                "category": {"type": "string"},
                "urgency": {"type": "string", "enum": ["critical", "high", "medium", "low", "any"]},
                "keywords": {"type": "array", "items": {"type": "string"}},
                "department": {"type": "string"}
            }
        },
        "workflow.RuleRequest": {
            "type": "object",
            "required": ["name"],
            "properties": {
                "name": {"type": "string"},
                "priority": {"type": "integer"},
                "conditions": {"$ref": "#/definitions/workflow.RuleConditionsRequest"},
                "assign_to_user_id": {"type": "string"},
                "assign_to_team": {"type": "string"}
            }
        },
        "workflow.CreateRuleRequest": {
            "allOf": [
                {"$ref": "#/definitions/workflow.RuleRequest"},
                {"type": "object", "properties": {"enabled": {"type": "boolean"}}}
            ]
        },
        "workflow.PolicyRequest": {
            "type": "object",
            "required": ["name", "critical_response_time", "high_response_time", "medium_response_time", "low_response_time"],
            "properties": {
                "name": {"type": "string"},
                "critical_response_time": {"type": "integer"},
                "high_response_time": {"type": "integer"},
                "medium_response_time": {"type": "integer"},
                "low_response_time": {"type": "integer"},
                "escalate_after_breach": {"type": "boolean"},
                "escalate_to_user_id": {"type": "string"}
            }
        },
        "workflow.CreatePolicyRequest": {
            "allOf": [
                {"$ref": "#/definitions/workflow.PolicyRequest"},
                {"type": "object", "properties": {"is_default": {"type": "boolean"}}}
            ]
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "CaseGuard API",
	Description:      "Workflow engine for whistleblowing reports.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
