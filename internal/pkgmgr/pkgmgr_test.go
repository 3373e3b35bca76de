package pkgmgr

import (
	"context"
	"strings"
	"testing"

	"github.com/observatory-platform/repodeps/internal/utils/shell"
)

func TestNewRejectsUnknownTool(t *testing.T) {
	if _, err := New(context.Background(), "apt"); err == nil {
		t.Fatalf("expected error for unsupported tool")
	}
}

func TestNewKeepsExplicitTool(t *testing.T) {
	m, err := New(context.Background(), "tdnf")
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if m.Tool() != "tdnf" {
		t.Errorf("expected tdnf, got %q", m.Tool())
	}
}

func TestQueriesBuildExpectedCommandLines(t *testing.T) {
	originalExecutor := shell.Default
	defer func() { shell.Default = originalExecutor }()

	mock := shell.NewMockExecutor([]shell.MockCommand{
		{Pattern: "list available", Output: "pkg-a.x86_64  1.0-1  repo-a\n"},
		{Pattern: "info", Output: "Name: pkg-a\n"},
		{Pattern: "deplist", Output: "package: pkg-a.x86_64 1.0-1\n", Stderr: "warning: repo slow\n"},
	})
	shell.Default = mock

	m, err := New(context.Background(), "yum")
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if _, _, err := m.ListAvailable(context.Background()); err != nil {
		t.Fatalf("ListAvailable failed: %v", err)
	}
	if _, _, err := m.Info(context.Background(), "pkg-a.x86_64"); err != nil {
		t.Fatalf("Info failed: %v", err)
	}
	stdout, stderr, err := m.Deplist(context.Background(), "pkg-a.x86_64")
	if err != nil {
		t.Fatalf("Deplist failed: %v", err)
	}
	if !strings.HasPrefix(stdout, "package:") {
		t.Errorf("unexpected deplist stdout: %q", stdout)
	}
	if stderr != "warning: repo slow\n" {
		t.Errorf("expected stderr passthrough, got %q", stderr)
	}

	want := []string{
		"yum -q list available",
		"yum -q info 'pkg-a.x86_64'",
		"yum -q deplist 'pkg-a.x86_64'",
	}
	if len(mock.Calls) != len(want) {
		t.Fatalf("expected %d calls, got %d: %v", len(want), len(mock.Calls), mock.Calls)
	}
	for i, cmd := range want {
		if mock.Calls[i] != cmd {
			t.Errorf("call %d: expected %q, got %q", i, cmd, mock.Calls[i])
		}
	}
}

func TestQuoteArgEscapesQuotes(t *testing.T) {
	quoted := quoteArg("odd'name")
	if quoted != `'odd'\''name'` {
		t.Errorf("unexpected quoting: %s", quoted)
	}
}
