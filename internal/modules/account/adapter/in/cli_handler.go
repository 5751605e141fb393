package in

import (
	"context"

	"syncacct/internal/modules/account/dto"
	accountin "syncacct/internal/modules/account/port/in"
)

type CLIHandler struct {
	usecase accountin.Usecase
}

func NewCLIHandler(usecase accountin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) SignIn(ctx context.Context, input dto.SignInInput) (dto.SignInOutput, error) {
	return h.usecase.SignIn(ctx, input)
}

func (h CLIHandler) OpenSession(input dto.CredentialsInput) *accountin.Session {
	return h.usecase.OpenSession(input)
}

func (h CLIHandler) QueryPlugins(ctx context.Context, session *accountin.Session) <-chan struct{} {
	return h.usecase.QueryPlugins(ctx, session)
}

func (h CLIHandler) ListPlugins(ctx context.Context, input dto.CredentialsInput) (dto.PluginListOutput, error) {
	return h.usecase.ListPlugins(ctx, input)
}
