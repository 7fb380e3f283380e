package hwseed

import (
	"context"
	"os/exec"
	"strings"
	"time"
)

// commandTimeout bounds a single hardware query command.
const commandTimeout = 3 * time.Second

// CommandExecutor runs system commands for [HardwareEntropy], allowing
// deterministic test doubles.
type CommandExecutor interface {
	Execute(ctx context.Context, name string, args ...string) (string, error)
}

// defaultCommandExecutor implements CommandExecutor using real process execution.
type defaultCommandExecutor struct {
	Timeout time.Duration
}

// Execute runs a system command with a timeout and returns its trimmed output.
func (e *defaultCommandExecutor) Execute(ctx context.Context, name string, args ...string) (string, error) {
	timeout := e.Timeout
	if timeout <= 0 {
		timeout = commandTimeout
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	output, err := exec.CommandContext(timeoutCtx, name, args...).Output()
	if err != nil {
		return "", &CommandError{Command: name, Err: err}
	}

	return strings.TrimSpace(string(output)), nil
}

// executeCommand runs name through executor, falling back to the default
// executor when executor is nil.
func executeCommand(ctx context.Context, executor CommandExecutor, name string, args ...string) (string, error) {
	if executor == nil {
		executor = &defaultCommandExecutor{Timeout: commandTimeout}
	}

	return executor.Execute(ctx, name, args...)
}
