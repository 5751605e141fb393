package domain_test

import (
	"errors"
	"testing"

	"pgregory.net/rapid"

	"syncacct/internal/modules/account/domain"
)

func TestOutcomeValidateFailsOnAnyBadSignal(t *testing.T) {
	t.Parallel()
	rapid.Check(t, func(t *rapid.T) {
		outcome := domain.InvocationOutcome{
			Stdout:   rapid.SampledFrom([]string{"", `{"result":true}`, "x"}).Draw(t, "stdout"),
			Stderr:   rapid.SampledFrom([]string{"", "boom", "helper: denied"}).Draw(t, "stderr"),
			ExitCode: rapid.IntRange(-1, 3).Draw(t, "exit"),
			Started:  rapid.Bool().Draw(t, "started"),
		}
		shouldFail := outcome.Stdout == "" || outcome.Stderr != "" || !outcome.Started || outcome.ExitCode != 0

		err := outcome.Validate()
		if (err != nil) != shouldFail {
			t.Fatalf("outcome %+v: want failure=%t, got %v", outcome, shouldFail, err)
		}
		if err == nil {
			return
		}
		var commErr *domain.CommunicationError
		if !errors.As(err, &commErr) {
			t.Fatalf("expected CommunicationError, got %T", err)
		}
		if commErr.ExitCode != outcome.ExitCode {
			t.Fatalf("exit code: want %d got %d", outcome.ExitCode, commErr.ExitCode)
		}
		wantDetail := outcome.Stderr
		if wantDetail == "" {
			wantDetail = domain.UnknownDetail
		}
		if commErr.Detail != wantDetail {
			t.Fatalf("detail: want %q got %q", wantDetail, commErr.Detail)
		}
	})
}

func TestCommunicationErrorMessage(t *testing.T) {
	t.Parallel()
	err := domain.InvocationOutcome{Started: false}.Validate()
	if err == nil {
		t.Fatalf("expected failure for unstarted helper")
	}
	if got, want := err.Error(), "Code: 0\nError: Unknown"; got != want {
		t.Fatalf("want %q got %q", want, got)
	}
}

func TestInvocationRequest(t *testing.T) {
	t.Parallel()
	req := domain.NewInvocationRequest("/opt/app/syntool", domain.RequestPluginList, "a@b.c:deadbeef")
	if len(req.Arguments) != 1 || req.Arguments[0] != "--get-plugin-list" {
		t.Fatalf("unexpected arguments: %v", req.Arguments)
	}
	if err := req.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
	if err := (domain.InvocationRequest{InputLine: "x"}).Validate(); err == nil {
		t.Fatalf("expected missing program path error")
	}
	if err := domain.NewInvocationRequest("/bin/x", domain.RequestLoginAuth, "a\nb").Validate(); err == nil {
		t.Fatalf("expected multi-line input error")
	}
	unknown := domain.InvocationRequest{ProgramPath: "/bin/x", Arguments: []string{"--wipe"}, InputLine: "a:b"}
	if err := unknown.Validate(); err == nil {
		t.Fatalf("expected unknown request error")
	}
	extra := domain.NewInvocationRequest("/bin/x", domain.RequestLoginAuth, "a:b")
	extra.Arguments = append(extra.Arguments, "--verbose")
	if err := extra.Validate(); err == nil {
		t.Fatalf("expected single request argument error")
	}
}
