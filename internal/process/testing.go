// pattern: Imperative Shell

package process

import (
	"context"
	"fmt"
	"sync"
)

// FakeExecutor is a scriptable Executor for tests. Responses are keyed by
// the full command line (Spec.String()). Unscripted commands return a
// Result with exit code 1 by default, or an error when FailUnknown is set.
type FakeExecutor struct {
	mu        sync.Mutex
	responses map[string]Result
	errs      map[string]error

	// FailUnknown makes unscripted commands return an error instead of
	// a non-zero Result.
	FailUnknown bool

	// Calls records every invocation in order.
	Calls []Spec
}

// NewFakeExecutor creates an empty fake.
func NewFakeExecutor() *FakeExecutor {
	return &FakeExecutor{
		responses: make(map[string]Result),
		errs:      make(map[string]error),
	}
}

// Respond scripts a result for the given command line.
func (f *FakeExecutor) Respond(commandLine string, result Result) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responses[commandLine] = result
}

// RespondErr scripts a hard error (start failure) for the given command line.
func (f *FakeExecutor) RespondErr(commandLine string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.errs[commandLine] = err
}

// Run implements Executor.
func (f *FakeExecutor) Run(_ context.Context, spec Spec) (Result, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.Calls = append(f.Calls, spec)

	key := spec.String()
	if err, ok := f.errs[key]; ok {
		return Result{ExitCode: -1}, err
	}
	if result, ok := f.responses[key]; ok {
		return result, nil
	}
	if f.FailUnknown {
		return Result{ExitCode: -1}, fmt.Errorf("unscripted command: %s", key)
	}
	return Result{ExitCode: 1}, nil
}

// CallLines returns the recorded command lines in invocation order.
func (f *FakeExecutor) CallLines() []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	lines := make([]string, len(f.Calls))
	for i, call := range f.Calls {
		lines[i] = call.String()
	}
	return lines
}
