package domain

// Error types reported in ErrorResponse.Type
const (
	ErrorTypeValidation = "validation_error"
	ErrorTypeNotFound   = "not_found"
	ErrorTypeBadRequest = "bad_request"
	ErrorTypeConflict   = "conflict"
	ErrorTypeInternal   = "internal_error"

	ErrorTypeRateLimited = "rate_limited"
)

// ValidationMessages maps validator tags to reasons, keyed by tag then JSON field name.
// Unknown combinations fall back to "<field> is invalid".
var ValidationMessages = map[string]map[string]string{
	"required": {
		"name":       "name is required",
		"customerId": "customerId not found",
	},
}

// GetValidationMessage returns a human-readable reason for a failed validator tag on field
func GetValidationMessage(tag, field string) string {
	if byField, ok := ValidationMessages[tag]; ok {
		if msg, ok := byField[field]; ok {
			return msg
		}
		if tag == "required" {
			return field + " is required"
		}
	}
	return field + " is invalid"
}
