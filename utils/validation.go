package utils

import (
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// IsValidExternalID checks the listing identifier shape: "PROP" followed
// by a number greater than 1000.
func IsValidExternalID(id string) bool {
	if !strings.HasPrefix(id, "PROP") {
		return false
	}
	numStr := strings.TrimPrefix(id, "PROP")
	num, err := strconv.Atoi(numStr)
	if err != nil || num < 1000 {
		return false
	}
	return true
}

// RequestValidator adapts go-playground/validator to echo's Validator
// interface so handlers can call c.Validate on bound payloads.
type RequestValidator struct {
	validate *validator.Validate
}

func NewRequestValidator() *RequestValidator {
	return &RequestValidator{validate: validator.New()}
}

func (v *RequestValidator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}
