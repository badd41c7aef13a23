// Package docs registers the OpenAPI description served at /swagger.
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
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "paths": {
        "/auth/token": {
            "post": {
                "tags": ["auth"],
                "summary": "Exchange the diary passcode for a device token",
                "parameters": [
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/tokenRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created"},
                    "401": {"description": "Invalid passcode"},
                    "404": {"description": "Authentication disabled"}
                }
            }
        },
        "/diary/{date}": {
            "get": {
                "tags": ["diary"],
                "summary": "Get the ledger of a day",
                "parameters": [
                    {"type": "string", "description": "YYYY-MM-DD or today", "name": "date", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/DailyLedger"}},
                    "400": {"description": "Invalid date"},
                    "503": {"description": "Storage unavailable"}
                }
            }
        },
        "/diary/{date}/foods": {
            "post": {
                "tags": ["diary"],
                "summary": "Log a food entry",
                "parameters": [
                    {"type": "string", "name": "date", "in": "path", "required": true},
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/addFoodRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/FoodEntry"}},
                    "400": {"description": "Validation failed"}
                }
            }
        },
        "/diary/{date}/foods/{id}": {
            "delete": {
                "tags": ["diary"],
                "summary": "Remove a food entry",
                "parameters": [
                    {"type": "string", "name": "date", "in": "path", "required": true},
                    {"type": "string", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "Removed entry", "schema": {"$ref": "#/definitions/FoodEntry"}},
                    "404": {"description": "Entry not found"}
                }
            }
        },
        "/diary/{date}/water": {
            "post": {
                "tags": ["diary"],
                "summary": "Adjust the water glass counter",
                "parameters": [
                    {"type": "string", "name": "date", "in": "path", "required": true},
                    {"in": "body", "name": "body", "required": true, "schema": {"type": "object", "properties": {"delta": {"type": "integer"}}}}
                ],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/diary/{date}/weight": {
            "put": {
                "tags": ["diary"],
                "summary": "Record the weight of a day",
                "parameters": [
                    {"type": "string", "name": "date", "in": "path", "required": true},
                    {"in": "body", "name": "body", "required": true, "schema": {"type": "object", "properties": {"weight": {"type": "number"}, "unit": {"type": "string", "enum": ["kg", "lbs"]}}}}
                ],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Invalid weight"}}
            }
        },
        "/diary/{date}/summary": {
            "get": {
                "tags": ["summary"],
                "summary": "Meal totals, daily totals, remaining budget and progress",
                "parameters": [
                    {"type": "string", "name": "date", "in": "path", "required": true}
                ],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/progress": {
            "get": {
                "tags": ["summary"],
                "summary": "Chart series for a window of days",
                "parameters": [
                    {"type": "string", "name": "end", "in": "query"},
                    {"type": "integer", "name": "days", "in": "query", "default": 7},
                    {"type": "string", "name": "stat", "in": "query", "enum": ["calories", "protein", "carbs", "fat"]}
                ],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Invalid window or stat"}}
            }
        },
        "/settings": {
            "get": {"tags": ["settings"], "summary": "Get the goal profile", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/GoalProfile"}}}},
            "put": {
                "tags": ["settings"],
                "summary": "Replace the goal profile",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/GoalProfile"}}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Invalid goals"}}
            },
            "patch": {
                "tags": ["settings"],
                "summary": "Update part of the goal profile",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/GoalProfile"}}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Invalid goals"}}
            }
        },
        "/products": {
            "get": {
                "tags": ["products"],
                "summary": "Search the product catalogue by name",
                "parameters": [{"type": "string", "name": "q", "in": "query", "required": true}],
                "responses": {"200": {"description": "OK"}, "502": {"description": "Catalogue unavailable"}}
            }
        },
        "/products/{barcode}": {
            "get": {
                "tags": ["products"],
                "summary": "Look a product up by barcode",
                "parameters": [{"type": "string", "name": "barcode", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Unknown product"}, "502": {"description": "Catalogue unavailable"}}
            }
        },
        "/products/{barcode}/log": {
            "post": {
                "tags": ["products"],
                "summary": "Look a product up and log it",
                "parameters": [
                    {"type": "string", "name": "barcode", "in": "path", "required": true},
                    {"in": "body", "name": "body", "required": true, "schema": {"type": "object", "properties": {"servings": {"type": "number"}, "meal": {"type": "string"}, "date": {"type": "string"}}}}
                ],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/FoodEntry"}}}
            }
        },
        "/history": {
            "get": {
                "tags": ["history"],
                "summary": "Recently logged foods, most recent first",
                "parameters": [{"type": "integer", "name": "limit", "in": "query"}],
                "responses": {"200": {"description": "OK"}}
            }
        }
    },
    "definitions": {
        "Nutrition": {
            "type": "object",
            "properties": {
                "calories": {"type": "number"},
                "protein": {"type": "number"},
                "carbs": {"type": "number"},
                "fat": {"type": "number"},
                "fiber": {"type": "number"},
                "sugar": {"type": "number"},
                "salt": {"type": "number"}
            }
        },
        "FoodEntry": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "barcode": {"type": "string"},
                "name": {"type": "string"},
                "brand": {"type": "string"},
                "servingSize": {"type": "string"},
                "imageUrl": {"type": "string"},
                "nutrition": {"$ref": "#/definitions/Nutrition"},
                "servings": {"type": "number"},
                "consumedDate": {"type": "string"},
                "consumedMeal": {"type": "string", "enum": ["breakfast", "lunch", "dinner", "snacks"]},
                "loggedAt": {"type": "string"}
            }
        },
        "DailyLedger": {
            "type": "object",
            "properties": {
                "date": {"type": "string"},
                "foods": {"type": "array", "items": {"$ref": "#/definitions/FoodEntry"}},
                "waterGlasses": {"type": "integer"},
                "weight": {"type": "number"}
            }
        },
        "GoalProfile": {
            "type": "object",
            "properties": {
                "dailyCalorieGoal": {"type": "number"},
                "dailyProteinGoal": {"type": "number"},
                "dailyCarbsGoal": {"type": "number"},
                "dailyFatGoal": {"type": "number"},
                "weightUnit": {"type": "string", "enum": ["kg", "lbs"]},
                "height": {"type": "number"},
                "age": {"type": "integer"},
                "gender": {"type": "string", "enum": ["male", "female"]}
            }
        },
        "addFoodRequest": {
            "type": "object",
            "required": ["name", "servings", "meal"],
            "properties": {
                "barcode": {"type": "string"},
                "name": {"type": "string"},
                "brand": {"type": "string"},
                "servingSize": {"type": "string"},
                "imageUrl": {"type": "string"},
                "nutrition": {"$ref": "#/definitions/Nutrition"},
                "servings": {"type": "number"},
                "meal": {"type": "string"}
            }
        },
        "tokenRequest": {
            "type": "object",
            "required": ["passcode"],
            "properties": {
                "passcode": {"type": "string"},
                "deviceName": {"type": "string"}
            }
        }
    },
    "security": [{"BearerAuth": []}]
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Kanso Food Diary API",
	Description:      "Personal food diary: daily ledgers, goals, summaries and product lookup.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
