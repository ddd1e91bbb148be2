// Package validation checks outgoing payloads against the order API contract
// before they leave the client.
package validation

import (
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

// orderSchema mirrors the POST /api/order request contract.
var orderSchema = map[string]interface{}{
	"type":     "object",
	"required": []interface{}{"items", "storeId", "franchiseId"},
	"properties": map[string]interface{}{
		"franchiseId": map[string]interface{}{"type": "string", "minLength": 1},
		"storeId":     map[string]interface{}{"type": "string", "minLength": 1},
		"items": map[string]interface{}{
			"type":     "array",
			"minItems": 1,
			"items": map[string]interface{}{
				"type":     "object",
				"required": []interface{}{"menuId", "description", "price"},
				"properties": map[string]interface{}{
					"menuId":      map[string]interface{}{"type": "string", "minLength": 1},
					"description": map[string]interface{}{"type": "string"},
					"price":       map[string]interface{}{"type": "number", "minimum": 0},
				},
			},
		},
	},
}

// ValidateOrderPayload validates the JSON-ready order map against the
// contract. It returns a descriptive error listing every violation.
func ValidateOrderPayload(payload map[string]interface{}) error {
	schemaLoader := gojsonschema.NewGoLoader(orderSchema)
	documentLoader := gojsonschema.NewGoLoader(payload)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	if !result.Valid() {
		errs := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			errs[i] = desc.String()
		}
		return fmt.Errorf("order validation failed: %v", errs)
	}

	return nil
}
