package out

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"strings"
	"time"

	"syncacct/internal/modules/account/domain"
	accountout "syncacct/internal/modules/account/port/out"
)

// waitDelay bounds how long Wait keeps draining pipes after a timed-out
// helper has been killed.
const waitDelay = 2 * time.Second

// ExecHelper runs the account helper as a child process: one credential line
// on stdin, then it waits for exit and collects both output streams.
type ExecHelper struct {
	timeout time.Duration
	logger  *slog.Logger
}

func NewExecHelper(timeout time.Duration, logger *slog.Logger) accountout.HelperInvoker {
	return &ExecHelper{timeout: timeout, logger: logger}
}

func (h *ExecHelper) Invoke(ctx context.Context, req domain.InvocationRequest) (string, error) {
	outcome := h.run(ctx, req)
	if outcome.StartErr != nil {
		h.logger.Warn("helper did not start", "program", req.ProgramPath, "error", outcome.StartErr)
	}
	if err := outcome.Validate(); err != nil {
		h.logger.Debug("helper invocation failed",
			"program", req.ProgramPath,
			"args", req.Arguments,
			"exit_code", outcome.ExitCode,
			"stderr", outcome.Stderr,
		)
		return "", err
	}
	h.logger.Debug("helper invocation finished", "program", req.ProgramPath, "args", req.Arguments, "exit_code", outcome.ExitCode)
	return outcome.Stdout, nil
}

func (h *ExecHelper) run(ctx context.Context, req domain.InvocationRequest) domain.InvocationOutcome {
	if err := req.Validate(); err != nil {
		return domain.InvocationOutcome{StartErr: err}
	}
	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, req.ProgramPath, req.Arguments...)
	cmd.WaitDelay = waitDelay
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return domain.InvocationOutcome{StartErr: fmt.Errorf("create stdin pipe: %w", err)}
	}
	if err := cmd.Start(); err != nil {
		return domain.InvocationOutcome{StartErr: fmt.Errorf("start helper: %w", err)}
	}

	if _, err := io.WriteString(stdin, req.InputLine+"\n"); err != nil {
		h.logger.Debug("write helper input", "program", req.ProgramPath, "error", err)
	}
	_ = stdin.Close()

	waitErr := cmd.Wait()
	if waitErr != nil && ctx.Err() != nil {
		h.logger.Warn("helper stopped before exit", "program", req.ProgramPath, "error", ctx.Err())
	}
	return domain.InvocationOutcome{
		Stdout:   strings.TrimSpace(stdout.String()),
		Stderr:   strings.TrimSpace(stderr.String()),
		ExitCode: exitCode(cmd, waitErr),
		Started:  true,
	}
}

func exitCode(cmd *exec.Cmd, waitErr error) int {
	if cmd.ProcessState != nil {
		code := cmd.ProcessState.ExitCode()
		if code == 0 && waitErr != nil {
			return -1
		}
		return code
	}
	if waitErr != nil {
		return -1
	}
	return 0
}
