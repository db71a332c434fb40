package testutil

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// Response is the scripted result of one command line.
type Response struct {
	Output string
	Err    error
}

// FakeRunner returns scripted output for exact command lines and records
// every call. Unscripted commands fail. Safe for concurrent use.
type FakeRunner struct {
	mu        sync.Mutex
	responses map[string]Response
	calls     []string
}

func NewFakeRunner() *FakeRunner {
	return &FakeRunner{responses: make(map[string]Response)}
}

// On scripts the response for cmdline, e.g. "xrandr --current".
func (r *FakeRunner) On(cmdline, output string, err error) *FakeRunner {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.responses[cmdline] = Response{Output: output, Err: err}
	return r
}

func (r *FakeRunner) Run(_ context.Context, name string, args ...string) ([]byte, error) {
	cmdline := strings.Join(append([]string{name}, args...), " ")

	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, cmdline)

	resp, ok := r.responses[cmdline]
	if !ok {
		return nil, fmt.Errorf("unexpected command: %s", cmdline)
	}
	return []byte(resp.Output), resp.Err
}

// Calls returns every command line run so far, in order.
func (r *FakeRunner) Calls() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.calls...)
}

// CallsWithPrefix returns the recorded command lines starting with prefix.
func (r *FakeRunner) CallsWithPrefix(prefix string) []string {
	var out []string
	for _, c := range r.Calls() {
		if strings.HasPrefix(c, prefix) {
			out = append(out, c)
		}
	}
	return out
}
