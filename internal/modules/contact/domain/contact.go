package domain

import (
	"fmt"
	"strings"
	"time"

	apperrors "zenith/internal/platform/errors"
)

type Contact struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	Name      string    `json:"name"`
	Company   string    `json:"company"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Notes     string    `json:"notes,omitempty"`
}

func (c Contact) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("%w: contact name is required", apperrors.ErrInvalidInput)
	}
	if c.Email != "" && !strings.Contains(c.Email, "@") {
		return fmt.Errorf("%w: email %q is not an address", apperrors.ErrInvalidInput, c.Email)
	}
	return nil
}
