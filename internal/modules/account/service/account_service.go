package service

import (
	"context"
	"log/slog"

	"syncacct/internal/modules/account/domain"
	accountout "syncacct/internal/modules/account/port/out"
)

// AccountService signs users in and queries their plugin list through the
// helper. Each call runs the helper at most once and never retries.
type AccountService struct {
	helperPath string
	invoker    accountout.HelperInvoker
	hasher     accountout.SecretHasher
	logger     *slog.Logger
}

func NewAccountService(helperPath string, invoker accountout.HelperInvoker, hasher accountout.SecretHasher, logger *slog.Logger) *AccountService {
	return &AccountService{
		helperPath: helperPath,
		invoker:    invoker,
		hasher:     hasher,
		logger:     logger,
	}
}

// Authenticate returns the account's edition. On any failure the edition is
// domain.EditionUnknown and the error is a *domain.Failure carrying the
// message for the user, or an apperrors.ErrInvalidInput for bad credentials
// input.
func (s *AccountService) Authenticate(ctx context.Context, credentials domain.Credentials) (domain.Edition, error) {
	op := domain.OperationSignIn
	resp, err := s.exchange(ctx, op, credentials)
	if err != nil {
		return domain.EditionUnknown, err
	}
	if failure := op.ResponseFailure(resp); failure != nil {
		return domain.EditionUnknown, failure
	}
	return domain.ParseEdition(resp.Payload), nil
}

// ListPlugins queries the plugin list and stores the outcome in session.
// Results and failures both land in the session; the returned error is only
// domain.ErrQueryInFlight when another query on session is still running.
func (s *AccountService) ListPlugins(ctx context.Context, session *domain.Session) error {
	if err := session.Begin(); err != nil {
		return err
	}
	op := domain.OperationPluginList
	resp, err := s.exchange(ctx, op, session.Credentials())
	if err != nil {
		session.Fail(err)
		return nil
	}
	if failure := op.ResponseFailure(resp); failure != nil {
		session.Fail(failure)
		return nil
	}
	session.Complete(domain.SplitPlugins(resp.Payload))
	return nil
}

// QueryPlugins runs ListPlugins in the background. The returned channel is
// closed once session holds the outcome.
func (s *AccountService) QueryPlugins(ctx context.Context, session *domain.Session) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := s.ListPlugins(ctx, session); err != nil {
			s.logger.Warn("plugin query not started", "error", err)
		}
	}()
	return done
}

func (s *AccountService) exchange(ctx context.Context, op domain.Operation, credentials domain.Credentials) (domain.ParsedResponse, error) {
	if err := credentials.Validate(); err != nil {
		return domain.ParsedResponse{}, err
	}
	req := domain.NewInvocationRequest(s.helperPath, op.Request(), credentials.Line(s.hasher.Hash))
	raw, err := s.invoker.Invoke(ctx, req)
	if err != nil {
		s.logger.Warn("helper request failed", "operation", op.String(), "error", err)
		return domain.ParsedResponse{}, op.CommunicationFailure(err)
	}
	resp := domain.Classify(raw, op.Field())
	s.logger.Debug("helper response classified", "operation", op.String(), "kind", resp.Kind.String(), "structured", resp.Structured)
	return resp, nil
}
