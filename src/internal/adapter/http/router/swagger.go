package router

import (
	"fmt"
	"net/http"
)

func registerSwaggerRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/swagger", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/swagger/", http.StatusMovedPermanently)
	})

	mux.HandleFunc("/swagger/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = fmt.Fprintf(w, swaggerHTML, "/swagger/openapi.json")
	})

	mux.HandleFunc("/swagger/openapi.json", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(openAPI))
	})
}

const swaggerHTML = `<!doctype html>
<html>
<head>
  <meta charset="utf-8" />
  <title>FinancePro Ledger API Docs</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css" />
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    window.onload = function() {
      window.ui = SwaggerUIBundle({
        url: "%s",
        dom_id: "#swagger-ui"
      });
    };
  </script>
</body>
</html>`

const openAPI = `{
  "openapi": "3.0.3",
  "info": {
    "title": "FinancePro Ledger API",
    "version": "1.0.0"
  },
  "security": [{"BasicAuth": []}, {"BearerAuth": []}],
  "paths": {
    "/auth/login": {
      "post": {
        "summary": "Exchange operator credentials for a token",
        "security": [],
        "requestBody": {"required": true, "content": {"application/json": {"schema": {"$ref": "#/components/schemas/LoginRequest"}}}},
        "responses": {
          "200": {"description": "Token issued"},
          "400": {"description": "Validation error"},
          "401": {"description": "Invalid credentials"}
        }
      }
    },
    "/operators": {
      "post": {
        "summary": "Create operator credential",
        "requestBody": {"required": true, "content": {"application/json": {"schema": {"$ref": "#/components/schemas/CreateOperatorRequest"}}}},
        "responses": {
          "201": {"description": "Created"},
          "400": {"description": "Validation error"},
          "409": {"description": "Username already exists"}
        }
      }
    },
    "/accounts": {
      "get": {
        "summary": "List accounts, newest first",
        "responses": {"200": {"description": "OK"}}
      },
      "post": {
        "summary": "Open account",
        "requestBody": {"required": true, "content": {"application/json": {"schema": {"$ref": "#/components/schemas/CreateAccountRequest"}}}},
        "responses": {
          "201": {"description": "Created"},
          "400": {"description": "Validation error"},
          "409": {"description": "Account already exists"}
        }
      }
    },
    "/accounts/export": {
      "get": {
        "summary": "Export all accounts as CSV",
        "responses": {"200": {"description": "CSV file", "content": {"text/csv": {}}}}
      }
    },
    "/accounts/{id}": {
      "parameters": [{"$ref": "#/components/parameters/AccountID"}],
      "get": {
        "summary": "Get account",
        "responses": {"200": {"description": "OK"}, "404": {"description": "Not found"}}
      },
      "delete": {
        "summary": "Delete account and its transaction log",
        "responses": {"200": {"description": "Deleted"}, "404": {"description": "Not found"}}
      }
    },
    "/accounts/{id}/status": {
      "parameters": [{"$ref": "#/components/parameters/AccountID"}],
      "patch": {
        "summary": "Change account status",
        "requestBody": {"required": true, "content": {"application/json": {"schema": {"$ref": "#/components/schemas/ChangeStatusRequest"}}}},
        "responses": {"200": {"description": "OK"}, "400": {"description": "Validation error"}, "404": {"description": "Not found"}}
      }
    },
    "/accounts/{id}/deposit": {
      "parameters": [{"$ref": "#/components/parameters/AccountID"}],
      "post": {
        "summary": "Deposit money",
        "requestBody": {"required": true, "content": {"application/json": {"schema": {"$ref": "#/components/schemas/MoneyOperationRequest"}}}},
        "responses": {
          "200": {"description": "New balance"},
          "400": {"description": "Invalid amount"},
          "404": {"description": "Not found"},
          "409": {"description": "Account closed"}
        }
      }
    },
    "/accounts/{id}/withdraw": {
      "parameters": [{"$ref": "#/components/parameters/AccountID"}],
      "post": {
        "summary": "Withdraw money",
        "requestBody": {"required": true, "content": {"application/json": {"schema": {"$ref": "#/components/schemas/MoneyOperationRequest"}}}},
        "responses": {
          "200": {"description": "New balance"},
          "400": {"description": "Invalid amount"},
          "404": {"description": "Not found"},
          "409": {"description": "Account closed"},
          "422": {"description": "Insufficient funds"}
        }
      }
    },
    "/accounts/{id}/transactions": {
      "parameters": [{"$ref": "#/components/parameters/AccountID"}],
      "get": {
        "summary": "Transaction history, newest first",
        "responses": {"200": {"description": "OK"}, "404": {"description": "Not found"}}
      }
    },
    "/transfers": {
      "post": {
        "summary": "Transfer between accounts",
        "requestBody": {"required": true, "content": {"application/json": {"schema": {"$ref": "#/components/schemas/TransferRequest"}}}},
        "responses": {
          "200": {"description": "Both balances after the transfer"},
          "400": {"description": "Validation error"},
          "404": {"description": "Not found"},
          "409": {"description": "Account closed"},
          "422": {"description": "Insufficient funds"}
        }
      }
    },
    "/bills": {
      "post": {
        "summary": "Generate GST bill",
        "requestBody": {"required": true, "content": {"application/json": {"schema": {"$ref": "#/components/schemas/CreateBillRequest"}}}},
        "responses": {"201": {"description": "Created"}, "400": {"description": "Validation error"}}
      }
    },
    "/bills/{id}": {
      "parameters": [{"$ref": "#/components/parameters/BillID"}],
      "get": {
        "summary": "Open bill text",
        "responses": {"200": {"description": "OK"}, "404": {"description": "Bill not found"}}
      }
    },
    "/bills/{id}/save": {
      "parameters": [{"$ref": "#/components/parameters/BillID"}],
      "post": {
        "summary": "Save bill text to disk",
        "responses": {"200": {"description": "Saved"}, "404": {"description": "Bill not found"}}
      }
    },
    "/bills/{id}/pdf": {
      "parameters": [{"$ref": "#/components/parameters/BillID"}],
      "get": {
        "summary": "Render bill as PDF",
        "responses": {"200": {"description": "PDF document", "content": {"application/pdf": {}}}, "404": {"description": "Bill not found"}}
      }
    },
    "/calculator/evaluate": {
      "post": {
        "summary": "Evaluate a keypad expression",
        "requestBody": {"required": true, "content": {"application/json": {"schema": {"$ref": "#/components/schemas/EvaluateRequest"}}}},
        "responses": {"200": {"description": "Result"}, "400": {"description": "Invalid expression"}}
      }
    }
  },
  "components": {
    "securitySchemes": {
      "BasicAuth": {"type": "http", "scheme": "basic"},
      "BearerAuth": {"type": "http", "scheme": "bearer", "bearerFormat": "JWT"}
    },
    "parameters": {
      "AccountID": {"name": "id", "in": "path", "required": true, "schema": {"type": "string", "maxLength": 40}},
      "BillID": {"name": "id", "in": "path", "required": true, "schema": {"type": "string"}}
    },
    "schemas": {
      "LoginRequest": {
        "type": "object",
        "required": ["username", "password"],
        "properties": {"username": {"type": "string"}, "password": {"type": "string"}}
      },
      "CreateOperatorRequest": {
        "type": "object",
        "required": ["username", "password"],
        "properties": {
          "username": {"type": "string"},
          "password": {"type": "string", "minLength": 6},
          "role": {"type": "string", "enum": ["Manager", "Operator"]}
        }
      },
      "CreateAccountRequest": {
        "type": "object",
        "required": ["accountId", "holder", "accountType"],
        "properties": {
          "accountId": {"type": "string", "maxLength": 40},
          "holder": {"type": "string", "maxLength": 150},
          "accountType": {"type": "string", "enum": ["Savings", "Current", "Fixed Deposit"]},
          "initialBalance": {"type": "string", "example": "1000.00"},
          "status": {"type": "string", "enum": ["Active", "Dormant", "Closed"]}
        }
      },
      "ChangeStatusRequest": {
        "type": "object",
        "required": ["status"],
        "properties": {"status": {"type": "string", "enum": ["Active", "Dormant", "Closed"]}}
      },
      "MoneyOperationRequest": {
        "type": "object",
        "required": ["amount"],
        "properties": {"amount": {"type": "string", "example": "250.00"}}
      },
      "TransferRequest": {
        "type": "object",
        "required": ["sourceAccountId", "destinationAccountId", "amount"],
        "properties": {
          "sourceAccountId": {"type": "string"},
          "destinationAccountId": {"type": "string"},
          "amount": {"type": "string"}
        }
      },
      "CreateBillRequest": {
        "type": "object",
        "required": ["items"],
        "properties": {
          "gstId": {"type": "string"},
          "taxPercent": {"type": "string", "example": "18"},
          "items": {
            "type": "array",
            "items": {
              "type": "object",
              "required": ["name", "price", "quantity"],
              "properties": {"name": {"type": "string"}, "price": {"type": "string"}, "quantity": {"type": "string"}}
            }
          }
        }
      },
      "EvaluateRequest": {
        "type": "object",
        "required": ["expression"],
        "properties": {"expression": {"type": "string", "example": "12+7*3"}}
      }
    }
  }
}`
