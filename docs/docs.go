// Package docs is generated by swaggo/swag from the httpapi annotations.
// Regenerate with `swag init -g cmd/llamactl/docs.go`; do not edit by hand.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "llamactl maintainers",
            "url": "https://github.com/your-org/llamactl"
        },
        "license": {
            "name": "MIT",
            "url": "https://opensource.org/licenses/MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/clear-logs": {
            "post": {
                "produces": ["application/json"],
                "tags": ["logs"],
                "summary": "Discard all retained log entries",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"$ref": "#/definitions/types.SuccessResponse"}
                    }
                }
            }
        },
        "/flag-definitions": {
            "get": {
                "produces": ["application/json"],
                "tags": ["schema"],
                "summary": "Flag catalog keyed by flag name",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {"$ref": "#/definitions/types.FlagInfo"}
                        }
                    }
                }
            }
        },
        "/models": {
            "get": {
                "produces": ["application/json"],
                "tags": ["models"],
                "summary": "List model files found in the models directory",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"$ref": "#/definitions/types.ModelsResponse"}
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {"$ref": "#/definitions/types.ErrorResponse"}
                    }
                }
            }
        },
        "/server-status": {
            "get": {
                "produces": ["application/json"],
                "tags": ["server"],
                "summary": "Current server state, recent logs and uptime",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"$ref": "#/definitions/types.StatusResponse"}
                    }
                }
            }
        },
        "/start-server": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["server"],
                "summary": "Start the llama-server process with the given configuration",
                "parameters": [
                    {
                        "description": "Flag values keyed by flag name",
                        "name": "config",
                        "in": "body",
                        "required": true,
                        "schema": {"type": "object", "additionalProperties": true}
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"$ref": "#/definitions/types.SuccessResponse"}
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {"$ref": "#/definitions/types.ErrorResponse"}
                    },
                    "503": {
                        "description": "Service Unavailable",
                        "schema": {"$ref": "#/definitions/types.ErrorResponse"}
                    }
                }
            }
        },
        "/stop-server": {
            "post": {
                "produces": ["application/json"],
                "tags": ["server"],
                "summary": "Signal the running llama-server process group to terminate",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"$ref": "#/definitions/types.SuccessResponse"}
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {"$ref": "#/definitions/types.ErrorResponse"}
                    }
                }
            }
        }
    },
    "definitions": {
        "types.ErrorResponse": {
            "type": "object",
            "properties": {
                "code": {"type": "integer"},
                "error": {"type": "string"}
            }
        },
        "types.FlagInfo": {
            "type": "object",
            "properties": {
                "default": {},
                "description": {"type": "string"},
                "options": {"type": "array", "items": {"type": "string"}},
                "required": {"type": "boolean"},
                "section": {"type": "string"},
                "type": {"type": "string"}
            }
        },
        "types.LogEntry": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "timestamp": {"type": "integer"},
                "type": {"type": "string"}
            }
        },
        "types.Model": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "path": {"type": "string"},
                "size_bytes": {"type": "integer"}
            }
        },
        "types.ModelsResponse": {
            "type": "object",
            "properties": {
                "models": {"type": "array", "items": {"$ref": "#/definitions/types.Model"}}
            }
        },
        "types.StatusResponse": {
            "type": "object",
            "properties": {
                "logs": {"type": "array", "items": {"$ref": "#/definitions/types.LogEntry"}},
                "pid": {"type": "integer"},
                "server_time_unix": {"type": "integer"},
                "status": {"type": "string"},
                "uptime_seconds": {"type": "integer"}
            }
        },
        "types.SuccessResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{"http"},
	Title:            "llamactl API",
	Description:      "HTTP API for supervising a local llama-server process.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
