package impl

import (
	"strings"

	"tasktrack/internal/infra/validation"
)

var inputValidator = validation.New()

func validateInput(input any) error {
	return inputValidator.Validate(input)
}

func trimmed(s *string) {
	*s = strings.TrimSpace(*s)
}
