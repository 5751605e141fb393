package domain

import (
	"fmt"
	"strings"
)

type RequestKind string

const (
	RequestLoginAuth  RequestKind = "--login-auth"
	RequestPluginList RequestKind = "--get-plugin-list"
)

func (k RequestKind) Validate() error {
	switch k {
	case RequestLoginAuth, RequestPluginList:
		return nil
	default:
		return fmt.Errorf("unknown helper request: %s", k)
	}
}

type InvocationRequest struct {
	ProgramPath string
	Arguments   []string
	InputLine   string
}

func NewInvocationRequest(programPath string, kind RequestKind, inputLine string) InvocationRequest {
	return InvocationRequest{
		ProgramPath: programPath,
		Arguments:   []string{string(kind)},
		InputLine:   inputLine,
	}
}

func (r InvocationRequest) Validate() error {
	if strings.TrimSpace(r.ProgramPath) == "" {
		return fmt.Errorf("helper program path is required")
	}
	if len(r.Arguments) != 1 {
		return fmt.Errorf("helper takes exactly one request argument, got %d", len(r.Arguments))
	}
	if err := RequestKind(r.Arguments[0]).Validate(); err != nil {
		return err
	}
	if strings.ContainsAny(r.InputLine, "\r\n") {
		return fmt.Errorf("helper input must be a single line")
	}
	return nil
}

// InvocationOutcome is what one helper run produced. Stdout and Stderr are
// already trimmed. StartErr is kept for diagnostics only; a failed start is
// reported through Validate like any other failed run.
type InvocationOutcome struct {
	Stdout   string
	Stderr   string
	ExitCode int
	Started  bool
	StartErr error
}

const UnknownDetail = "Unknown"

// CommunicationError is the single failure signal of a helper invocation.
type CommunicationError struct {
	ExitCode int
	Detail   string
}

func (e *CommunicationError) Error() string {
	return fmt.Sprintf("Code: %d\nError: %s", e.ExitCode, e.Detail)
}

// Validate fails when stdout is empty, stderr is not, the process never
// started, or it exited non-zero.
func (o InvocationOutcome) Validate() error {
	if o.Stdout != "" && o.Stderr == "" && o.Started && o.ExitCode == 0 {
		return nil
	}
	detail := o.Stderr
	if detail == "" {
		detail = UnknownDetail
	}
	return &CommunicationError{ExitCode: o.ExitCode, Detail: detail}
}
