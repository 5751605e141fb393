package usecase_test

import (
	"context"
	"errors"
	"testing"

	"syncacct/internal/modules/account/domain"
	"syncacct/internal/modules/account/dto"
	"syncacct/internal/modules/account/service"
	"syncacct/internal/modules/account/usecase"
	"syncacct/internal/platform/digest"
	"syncacct/internal/platform/logging"
)

type scriptedInvoker struct {
	replies map[domain.RequestKind]string
	calls   int
}

func (s *scriptedInvoker) Invoke(_ context.Context, req domain.InvocationRequest) (string, error) {
	s.calls++
	reply, ok := s.replies[domain.RequestKind(req.Arguments[0])]
	if !ok {
		return "", &domain.CommunicationError{ExitCode: 2, Detail: "unsupported request"}
	}
	return reply, nil
}

func newInteractor(t *testing.T, invoker *scriptedInvoker) (*usecase.Interactor, *scriptedInvoker) {
	t.Helper()
	hasher, err := digest.New("")
	if err != nil {
		t.Fatalf("new hasher: %v", err)
	}
	svc := service.NewAccountService("/usr/bin/syntool", invoker, hasher, logging.Discard())
	return usecase.NewInteractor(svc).(*usecase.Interactor), invoker
}

func TestSignInReportsEdition(t *testing.T) {
	t.Parallel()
	interactor, _ := newInteractor(t, &scriptedInvoker{replies: map[domain.RequestKind]string{
		domain.RequestLoginAuth: `{"result":true,"edition":"3"}`,
	}})
	out, err := interactor.SignIn(context.Background(), dto.SignInInput{Email: "a@b.c", Password: "pw"})
	if err != nil {
		t.Fatalf("sign in: %v", err)
	}
	if out.Edition != 3 || !out.Known {
		t.Fatalf("unexpected output: %+v", out)
	}
}

func TestSignInFailureReturnsUnknownEdition(t *testing.T) {
	t.Parallel()
	interactor, _ := newInteractor(t, &scriptedInvoker{replies: map[domain.RequestKind]string{
		domain.RequestLoginAuth: `{"result":false}`,
	}})
	out, err := interactor.SignIn(context.Background(), dto.SignInInput{Email: "a@b.c", Password: "pw"})
	if !errors.Is(err, domain.ErrDeclined) {
		t.Fatalf("want declined, got %v", err)
	}
	if out.Edition != -1 || out.Known {
		t.Fatalf("unexpected output: %+v", out)
	}
}

func TestListPluginsUsesFreshSession(t *testing.T) {
	t.Parallel()
	interactor, invoker := newInteractor(t, &scriptedInvoker{replies: map[domain.RequestKind]string{
		domain.RequestPluginList: `{"result":true,"plugins":"backup,sync"}`,
	}})
	input := dto.CredentialsInput{Email: "a@b.c", Password: "pw"}
	for range 2 {
		out, err := interactor.ListPlugins(context.Background(), input)
		if err != nil {
			t.Fatalf("list plugins: %v", err)
		}
		if len(out.Plugins) != 2 || out.Plugins[0] != "backup" || out.Plugins[1] != "sync" {
			t.Fatalf("unexpected plugins: %v", out.Plugins)
		}
	}
	if invoker.calls != 2 {
		t.Fatalf("expected one helper call per listing, got %d", invoker.calls)
	}
}

func TestListPluginsSurfacesSessionError(t *testing.T) {
	t.Parallel()
	interactor, _ := newInteractor(t, &scriptedInvoker{})
	_, err := interactor.ListPlugins(context.Background(), dto.CredentialsInput{Email: "a@b.c", Password: "pw"})
	var failure *domain.Failure
	if !errors.As(err, &failure) || failure.Kind != domain.FailureCommunication {
		t.Fatalf("want communication failure, got %v", err)
	}
}

func TestQueryPluginsThroughSession(t *testing.T) {
	t.Parallel()
	interactor, _ := newInteractor(t, &scriptedInvoker{replies: map[domain.RequestKind]string{
		domain.RequestPluginList: `{"result":true,"plugins":""}`,
	}})
	session := interactor.OpenSession(dto.CredentialsInput{Email: "a@b.c", Password: "pw"})
	<-interactor.QueryPlugins(context.Background(), session)
	if session.Busy() {
		t.Fatalf("session still busy after completion")
	}
	if plugins := session.Plugins(); plugins == nil || len(plugins) != 0 {
		t.Fatalf("want empty non-nil list, got %#v", plugins)
	}
}
