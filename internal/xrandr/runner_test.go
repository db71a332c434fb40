package xrandr

import (
	"context"
	"errors"
	"os/exec"
	"testing"
)

func TestExecRunner(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
	r := ExecRunner{}

	out, err := r.Run(context.Background(), "sh", "-c", "echo hello")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if string(out) != "hello\n" {
		t.Errorf("Run() = %q, want %q", out, "hello\n")
	}

	_, err = r.Run(context.Background(), "sh", "-c", "echo oops >&2; exit 3")
	var ce *CommandError
	if !errors.As(err, &ce) {
		t.Fatalf("Run() error = %v, want *CommandError", err)
	}
	if ce.ExitCode != 3 || ce.Stderr != "oops" || !ce.Exited() {
		t.Errorf("CommandError = %+v", ce)
	}
}

func TestExecRunner_MissingBinary(t *testing.T) {
	_, err := ExecRunner{}.Run(context.Background(), "cathode-no-such-binary")
	var ce *CommandError
	if !errors.As(err, &ce) {
		t.Fatalf("Run() error = %v, want *CommandError", err)
	}
	if ce.Exited() || ce.ExitCode != -1 {
		t.Errorf("CommandError = %+v, want spawn failure", ce)
	}
	if !exitedOnly(&CommandError{ExitCode: 2}) || exitedOnly(err) {
		t.Error("exitedOnly misclassified errors")
	}
}
