package snapshot

import "github.com/xeipuuv/gojsonschema"

const schemaCart = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["version", "data"],
  "properties": {
    "version": { "enum": [1] },
    "data": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["id", "name", "price", "quantity"],
        "properties": {
          "id": { "type": "integer" },
          "name": { "type": "string" },
          "price": { "type": "integer", "minimum": 0 },
          "originalPrice": { "type": "integer", "minimum": 0 },
          "image": { "type": "string" },
          "category": { "type": "string" },
          "quantity": { "type": "integer", "minimum": 1 }
        }
      }
    }
  }
}`

const schemaAddress = `{
  "type": "object",
  "required": ["id", "name", "phone", "street", "city", "state", "pincode", "isDefault"],
  "properties": {
    "id": { "type": "string" },
    "name": { "type": "string" },
    "phone": { "type": "string" },
    "street": { "type": "string" },
    "city": { "type": "string" },
    "state": { "type": "string" },
    "pincode": { "type": "string" },
    "isDefault": { "type": "boolean" }
  }
}`

const schemaUser = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["version", "data"],
  "properties": {
    "version": { "enum": [1] },
    "data": {
      "type": "object",
      "required": ["id", "name", "email", "addresses"],
      "properties": {
        "id": { "type": "string", "minLength": 1 },
        "name": { "type": "string" },
        "email": { "type": "string" },
        "phone": { "type": "string" },
        "addresses": { "type": "array", "items": ` + schemaAddress + ` },
        "createdAt": { "type": "string", "format": "date-time" }
      }
    }
  }
}`

const schemaOrders = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["version", "data"],
  "properties": {
    "version": { "enum": [1] },
    "data": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["id", "orderNumber", "items", "subtotal", "shipping", "tax", "total", "status", "paymentMethod", "shippingAddress"],
        "properties": {
          "id": { "type": "string", "minLength": 1 },
          "orderNumber": { "type": "string", "minLength": 1 },
          "items": {
            "type": "array",
            "items": {
              "type": "object",
              "required": ["id", "name", "price", "quantity"],
              "properties": {
                "id": { "type": "integer" },
                "name": { "type": "string" },
                "price": { "type": "integer", "minimum": 0 },
                "quantity": { "type": "integer", "minimum": 1 },
                "image": { "type": "string" }
              }
            }
          },
          "subtotal": { "type": "integer" },
          "shipping": { "type": "integer" },
          "tax": { "type": "integer" },
          "total": { "type": "integer" },
          "status": { "enum": ["Processing", "Shipped", "Delivered", "Cancelled"] },
          "paymentMethod": { "type": "string" },
          "shippingAddress": ` + schemaAddress + `,
          "createdAt": { "type": "string", "format": "date-time" },
          "updatedAt": { "type": "string", "format": "date-time" }
        }
      }
    }
  }
}`

var (
	cartLoader   = gojsonschema.NewStringLoader(schemaCart)
	userLoader   = gojsonschema.NewStringLoader(schemaUser)
	ordersLoader = gojsonschema.NewStringLoader(schemaOrders)
)
