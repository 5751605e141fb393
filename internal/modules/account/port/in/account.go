package in

import (
	"context"

	"syncacct/internal/modules/account/domain"
	"syncacct/internal/modules/account/dto"
)

// Session is the caller-owned plugin-list state.
type Session = domain.Session

type Usecase interface {
	SignIn(ctx context.Context, input dto.SignInInput) (dto.SignInOutput, error)
	OpenSession(input dto.CredentialsInput) *Session
	QueryPlugins(ctx context.Context, session *Session) <-chan struct{}
	ListPlugins(ctx context.Context, input dto.CredentialsInput) (dto.PluginListOutput, error)
}
