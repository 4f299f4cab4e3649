package session

import (
	"fmt"
	"strings"

	"github.com/ecolink/ecolink/internal/ai"
)

// SignupForm is what a company submits to create its profile.
type SignupForm struct {
	CompanyName string
	Email       string
	Password    string
	Bio         string
}

// Validate requires every field to be non-blank.
func (f SignupForm) Validate() error {
	for _, value := range []string{f.CompanyName, f.Email, f.Password, f.Bio} {
		if strings.TrimSpace(value) == "" {
			return fmt.Errorf("%w: please fill in all fields", ai.ErrValidation)
		}
	}
	return nil
}
