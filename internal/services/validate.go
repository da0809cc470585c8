package services

import (
	"github.com/go-playground/validator/v10"

	"assetcore/internal/apperr"
)

var validate = validator.New()

// checkStruct runs validator tags on a request payload and converts the
// failure into a BadRequest the HTTP edge can surface directly.
func checkStruct(v any) error {
	if err := validate.Struct(v); err != nil {
		return apperr.Wrap(apperr.BadRequest, "Invalid request payload", err)
	}
	return nil
}
