package usecase

import (
	"context"

	"syncacct/internal/modules/account/domain"
	"syncacct/internal/modules/account/dto"
	accountin "syncacct/internal/modules/account/port/in"
	"syncacct/internal/modules/account/service"
)

type Interactor struct {
	svc *service.AccountService
}

func NewInteractor(svc *service.AccountService) accountin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) SignIn(ctx context.Context, input dto.SignInInput) (dto.SignInOutput, error) {
	edition, err := i.svc.Authenticate(ctx, domain.Credentials{Email: input.Email, Secret: input.Password})
	if err != nil {
		return dto.SignInOutput{Edition: int(domain.EditionUnknown)}, err
	}
	return dto.SignInOutput{Edition: int(edition), Known: edition.Known()}, nil
}

func (i *Interactor) OpenSession(input dto.CredentialsInput) *domain.Session {
	return domain.NewSession(domain.Credentials{Email: input.Email, Secret: input.Password})
}

func (i *Interactor) QueryPlugins(ctx context.Context, session *domain.Session) <-chan struct{} {
	return i.svc.QueryPlugins(ctx, session)
}

func (i *Interactor) ListPlugins(ctx context.Context, input dto.CredentialsInput) (dto.PluginListOutput, error) {
	session := i.OpenSession(input)
	if err := i.svc.ListPlugins(ctx, session); err != nil {
		return dto.PluginListOutput{}, err
	}
	if err := session.Err(); err != nil {
		return dto.PluginListOutput{}, err
	}
	return dto.PluginListOutput{Plugins: session.Plugins()}, nil
}
