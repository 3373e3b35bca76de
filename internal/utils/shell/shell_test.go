package shell

import (
	"context"
	"strings"
	"testing"
)

func TestExecCmd(t *testing.T) {
	out, err := ExecCmd(context.Background(), "echo 'test-exec-cmd'", nil)
	if err != nil {
		t.Fatalf("ExecCmd failed: %v", err)
	}
	if !strings.Contains(out, "test-exec-cmd") {
		t.Errorf("Expected output to contain 'test-exec-cmd', got: %s", out)
	}
}

func TestExecCmdWithEnv(t *testing.T) {
	out, err := ExecCmd(context.Background(), "echo $REPODEPS_TEST_VAR", []string{"REPODEPS_TEST_VAR=from-env"})
	if err != nil {
		t.Fatalf("ExecCmd failed: %v", err)
	}
	if !strings.Contains(out, "from-env") {
		t.Errorf("Expected output to contain 'from-env', got: %s", out)
	}
}

func TestExecCmdSplitSeparatesStreams(t *testing.T) {
	stdout, stderr, err := ExecCmdSplit(context.Background(), "echo out-text; echo err-text >&2", nil)
	if err != nil {
		t.Fatalf("ExecCmdSplit failed: %v", err)
	}
	if !strings.Contains(stdout, "out-text") {
		t.Errorf("Expected stdout to contain 'out-text', got: %s", stdout)
	}
	if strings.Contains(stdout, "err-text") {
		t.Errorf("stderr leaked into stdout: %s", stdout)
	}
	if !strings.Contains(stderr, "err-text") {
		t.Errorf("Expected stderr to contain 'err-text', got: %s", stderr)
	}
}

func TestExecCmdSplitReturnsStderrOnFailure(t *testing.T) {
	_, stderr, err := ExecCmdSplit(context.Background(), "echo broken >&2; exit 3", nil)
	if err == nil {
		t.Fatalf("Expected error from failing command")
	}
	if !strings.Contains(stderr, "broken") {
		t.Errorf("Expected stderr to survive the failure, got: %s", stderr)
	}
}

func TestExecCmdSplitCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err := ExecCmdSplit(ctx, "sleep 5", nil)
	if err == nil {
		t.Fatalf("Expected error from cancelled context")
	}
}

func TestMockExecutorReplaysCannedOutput(t *testing.T) {
	mock := NewMockExecutor([]MockCommand{
		{Pattern: "info foo", Output: "Name: foo\n", Stderr: "warning: slow mirror\n"},
	})

	stdout, stderr, err := mock.ExecSplit(context.Background(), "yum -q info foo.x86_64", nil)
	if err != nil {
		t.Fatalf("ExecSplit failed: %v", err)
	}
	if stdout != "Name: foo\n" {
		t.Errorf("unexpected stdout: %q", stdout)
	}
	if stderr != "warning: slow mirror\n" {
		t.Errorf("unexpected stderr: %q", stderr)
	}
	if len(mock.Calls) != 1 {
		t.Errorf("expected 1 recorded call, got %d", len(mock.Calls))
	}

	if _, _, err := mock.ExecSplit(context.Background(), "rpm -qa", nil); err == nil {
		t.Errorf("expected error for unmatched command")
	}
}

func TestIsCommandExist(t *testing.T) {
	if !IsCommandExist("echo") {
		t.Errorf("Expected 'echo' to exist")
	}
	if IsCommandExist("definitely-not-a-real-command-xyz") {
		t.Errorf("Expected bogus command to be missing")
	}
}
