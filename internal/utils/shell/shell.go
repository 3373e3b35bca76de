package shell

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/observatory-platform/repodeps/internal/utils/logger"
)

// Executor runs shell command strings. Default is swapped for a mock in tests.
type Executor interface {
	// Exec runs a command and returns its combined output.
	Exec(ctx context.Context, cmdStr string, envVal []string) (string, error)
	// ExecSplit runs a command and returns stdout and stderr separately.
	// The stderr text is returned even when the command fails, so callers
	// can accumulate it as an opaque error log.
	ExecSplit(ctx context.Context, cmdStr string, envVal []string) (string, string, error)
}

// Default is the executor used by the package-level helpers.
var Default Executor = hostExecutor{}

// getShell returns the preferred shell, falling back to /bin/sh if bash is not available
func getShell() string {
	shells := []string{"/bin/bash", "/usr/bin/bash", "/bin/sh"}
	for _, shell := range shells {
		if _, err := os.Stat(shell); err == nil {
			return shell
		}
	}
	return "/bin/sh" // fallback
}

// IsCommandExist checks if a command exists on the host
func IsCommandExist(cmd string) bool {
	shell := getShell()
	output, _ := exec.Command(shell, "-c", "command -v "+cmd).Output()
	output = bytes.TrimSpace(output)
	return len(output) != 0
}

// ExecCmd executes a command through the default executor and returns its combined output
func ExecCmd(ctx context.Context, cmdStr string, envVal []string) (string, error) {
	return Default.Exec(ctx, cmdStr, envVal)
}

// ExecCmdSplit executes a command through the default executor, with stdout and stderr separated
func ExecCmdSplit(ctx context.Context, cmdStr string, envVal []string) (string, string, error) {
	return Default.ExecSplit(ctx, cmdStr, envVal)
}

type hostExecutor struct{}

func (hostExecutor) Exec(ctx context.Context, cmdStr string, envVal []string) (string, error) {
	log := logger.Logger()
	log.Debugf("Exec: [" + cmdStr + "]")

	shell := getShell()
	cmd := exec.CommandContext(ctx, shell, "-c", cmdStr)
	if len(envVal) > 0 {
		cmd.Env = append(os.Environ(), envVal...)
	}

	output, err := cmd.CombinedOutput()
	outputStr := string(output)

	if err != nil {
		if outputStr != "" {
			log.Debugf(outputStr)
		}
		return outputStr, fmt.Errorf("failed to exec %s: %w", cmdStr, err)
	}
	return outputStr, nil
}

func (hostExecutor) ExecSplit(ctx context.Context, cmdStr string, envVal []string) (string, string, error) {
	log := logger.Logger()
	log.Debugf("Exec: [" + cmdStr + "]")

	shell := getShell()
	cmd := exec.CommandContext(ctx, shell, "-c", cmdStr)
	if len(envVal) > 0 {
		cmd.Env = append(os.Environ(), envVal...)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	outStr := stdout.String()
	errStr := stderr.String()

	if ctx.Err() != nil {
		return outStr, errStr, ctx.Err()
	}
	if err != nil {
		if errStr != "" {
			log.Debugf(strings.TrimSpace(errStr))
		}
		return outStr, errStr, fmt.Errorf("failed to exec %s: %w", cmdStr, err)
	}
	return outStr, errStr, nil
}

// MockCommand describes one canned response for the mock executor.
// Pattern is matched as a substring of the command string.
type MockCommand struct {
	Pattern string
	Output  string
	Stderr  string
	Error   error
}

// MockExecutor replays canned outputs and records every command it sees.
type MockExecutor struct {
	Commands []MockCommand
	Calls    []string
}

func NewMockExecutor(commands []MockCommand) *MockExecutor {
	return &MockExecutor{Commands: commands}
}

func (m *MockExecutor) lookup(cmdStr string) (MockCommand, error) {
	for _, mc := range m.Commands {
		if strings.Contains(cmdStr, mc.Pattern) {
			return mc, nil
		}
	}
	return MockCommand{}, fmt.Errorf("unexpected command: %s", cmdStr)
}

func (m *MockExecutor) Exec(ctx context.Context, cmdStr string, envVal []string) (string, error) {
	m.Calls = append(m.Calls, cmdStr)
	if err := ctx.Err(); err != nil {
		return "", err
	}
	mc, err := m.lookup(cmdStr)
	if err != nil {
		return "", err
	}
	return mc.Output + mc.Stderr, mc.Error
}

func (m *MockExecutor) ExecSplit(ctx context.Context, cmdStr string, envVal []string) (string, string, error) {
	m.Calls = append(m.Calls, cmdStr)
	if err := ctx.Err(); err != nil {
		return "", "", err
	}
	mc, err := m.lookup(cmdStr)
	if err != nil {
		return "", "", err
	}
	return mc.Output, mc.Stderr, mc.Error
}
