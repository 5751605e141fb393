package domain

import (
	"fmt"
	"strings"

	apperrors "syncacct/internal/platform/errors"
)

// Credentials are the account email and the clear-text secret. The secret is
// only ever handed to the helper after a one-way digest.
type Credentials struct {
	Email  string
	Secret string
}

func (c Credentials) Validate() error {
	if strings.TrimSpace(c.Email) == "" {
		return fmt.Errorf("%w: email is required", apperrors.ErrInvalidInput)
	}
	// The helper reads exactly one "email:digest" line.
	if strings.ContainsAny(c.Email, ":\r\n") {
		return fmt.Errorf("%w: email must not contain ':' or line breaks", apperrors.ErrInvalidInput)
	}
	return nil
}

// Line renders the credential line written to the helper's stdin, without the
// trailing newline.
func (c Credentials) Line(digest func(string) string) string {
	return c.Email + ":" + digest(c.Secret)
}
