package pkgmgr

import (
	"context"
	"fmt"
	"strings"

	"github.com/observatory-platform/repodeps/internal/utils/logger"
	"github.com/observatory-platform/repodeps/internal/utils/shell"
	"github.com/observatory-platform/repodeps/internal/utils/slice"
	"github.com/observatory-platform/repodeps/internal/utils/system"
)

var supportedTools = []string{"yum", "dnf", "tdnf"}

// Manager shells out to a repository query tool (yum, dnf or tdnf).
// Each query returns the tool's stdout as payload and its stderr as opaque
// text the caller may persist; the tool is never linked as a library since
// its API surface is undocumented and its CLI output is stable.
type Manager struct {
	tool string
}

// New returns a Manager for the given query tool. An empty tool name
// detects one from the host OS.
func New(ctx context.Context, tool string) (*Manager, error) {
	log := logger.Logger()

	if tool == "" {
		detected, err := system.GetHostOsPkgManager(ctx)
		if err != nil {
			return nil, fmt.Errorf("detecting package query tool: %w", err)
		}
		tool = detected
	}

	if !slice.Contains(supportedTools, tool) {
		return nil, fmt.Errorf("unsupported package query tool %q", tool)
	}

	log.Debugf("using package query tool %s", tool)
	return &Manager{tool: tool}, nil
}

// Tool returns the query tool command name
func (m *Manager) Tool() string {
	return m.tool
}

// ListAvailable runs the "list available" query across all enabled repositories
func (m *Manager) ListAvailable(ctx context.Context) (string, string, error) {
	return shell.ExecCmdSplit(ctx, m.tool+" -q list available", nil)
}

// Info runs the "info" query for a single package
func (m *Manager) Info(ctx context.Context, pkg string) (string, string, error) {
	return shell.ExecCmdSplit(ctx, m.tool+" -q info "+quoteArg(pkg), nil)
}

// Deplist runs the "deplist" query for a single package
func (m *Manager) Deplist(ctx context.Context, pkg string) (string, string, error) {
	return shell.ExecCmdSplit(ctx, m.tool+" -q deplist "+quoteArg(pkg), nil)
}

// quoteArg single-quotes a package name for the shell command line.
// Names come from the tool's own list output but may still carry
// shell-significant characters (e.g. "libstdc++").
func quoteArg(arg string) string {
	return "'" + strings.ReplaceAll(arg, "'", `'\''`) + "'"
}
