package out

import (
	"context"

	"syncacct/internal/modules/account/domain"
)

// HelperInvoker runs the account helper once and returns its trimmed stdout.
// Every failure, including a helper that could not be started, comes back as
// a *domain.CommunicationError.
type HelperInvoker interface {
	Invoke(ctx context.Context, req domain.InvocationRequest) (string, error)
}

type SecretHasher interface {
	Hash(secret string) string
}
