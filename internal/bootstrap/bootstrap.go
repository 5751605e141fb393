package bootstrap

import (
	"fmt"
	"log/slog"

	accountinadapter "syncacct/internal/modules/account/adapter/in"
	accountoutadapter "syncacct/internal/modules/account/adapter/out"
	accountservice "syncacct/internal/modules/account/service"
	accountusecase "syncacct/internal/modules/account/usecase"
	"syncacct/internal/platform/config"
	"syncacct/internal/platform/digest"
)

type App struct {
	Config     config.Config
	AccountCLI accountinadapter.CLIHandler
}

func New(cfg config.Config, logger *slog.Logger) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	hasher, err := digest.New(cfg.Digest.Algorithm)
	if err != nil {
		return nil, fmt.Errorf("new secret digest: %w", err)
	}
	logger = logger.With("helper", cfg.Helper.Path, "digest", string(hasher.Algorithm()))

	accountUC := accountusecase.NewInteractor(accountservice.NewAccountService(
		cfg.Helper.Path,
		accountoutadapter.NewExecHelper(cfg.Helper.Timeout, logger),
		hasher,
		logger,
	))

	return &App{
		Config:     cfg,
		AccountCLI: accountinadapter.NewCLIHandler(accountUC),
	}, nil
}
