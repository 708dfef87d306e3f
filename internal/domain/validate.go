// Package domain holds the portfolio content records and the ports around them.
package domain

import (
	"errors"
	"sync"

	"github.com/go-playground/validator/v10"
)

var ErrUnknownField = errors.New("unknown field")

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

// Validator returns the shared struct validator used by the record types.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}
