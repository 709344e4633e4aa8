// Package scan runs package-manager backends over source paths.
//
// [Scanner.Scan] visits every backend, and for each backend every source
// path, in the order given. A backend that errors, panics or times out on
// one path is logged and skipped; the scan always goes on with the next
// (backend, path) pair. Only cancellation of the scan's own context stops
// it early.
package scan

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/packman/pkg/deps"
	perrors "github.com/matzehuels/packman/pkg/errors"
	"github.com/matzehuels/packman/pkg/observability"
)

// Result groups the projects one backend extracted from one source path.
type Result struct {
	Type     deps.Type
	Path     string
	Projects []*deps.Node
}

// Scanner invokes backends with failure isolation.
type Scanner struct {
	Logger *log.Logger
	// Timeout bounds each Applicable and Extract call. Zero means no limit.
	Timeout time.Duration
}

// New creates a scanner logging to logger.
func New(logger *log.Logger, timeout time.Duration) *Scanner {
	if logger == nil {
		logger = log.Default()
	}
	return &Scanner{Logger: logger, Timeout: timeout}
}

// Scan runs backends (outer loop) against paths (inner loop) and returns
// the non-empty extraction results in visiting order.
//
// The returned error is non-nil only when ctx is cancelled; backend
// failures never surface here. An empty result is valid.
func (s *Scanner) Scan(ctx context.Context, backends []deps.Backend, paths []string) ([]Result, error) {
	logger := s.logger()
	var results []Result
	for _, b := range backends {
		for _, path := range paths {
			if err := ctx.Err(); err != nil {
				return results, err
			}
			out := s.Run(ctx, b, path)
			switch out.Status {
			case deps.StatusFailed:
				logger.Warn("package manager failed", "type", out.Type, "path", path, "err", out.Err)
			case deps.StatusExtracted:
				if len(out.Projects) > 0 {
					results = append(results, Result{Type: out.Type, Path: path, Projects: out.Projects})
				}
			}
		}
	}
	if err := ctx.Err(); err != nil {
		return results, err
	}
	if len(results) == 0 {
		logger.Info("could not find any package managers")
	}
	return results, nil
}

// Run invokes one backend against one path and reports the outcome.
// It never panics and never returns a nil-status outcome.
func (s *Scanner) Run(ctx context.Context, b deps.Backend, path string) deps.Outcome {
	t := b.Type()
	logger := s.logger()
	hooks := observability.Scan()

	start := time.Now()
	hooks.OnBackendStart(ctx, t.String(), path)
	out := s.run(ctx, b, path)
	hooks.OnBackendComplete(ctx, t.String(), path, out.Status.String(), len(out.Projects), time.Since(start), out.Err)

	if out.Status == deps.StatusExtracted {
		logger.Debug("package manager extracted", "type", t, "path", path, "projects", len(out.Projects), "duration", time.Since(start).Round(time.Millisecond))
	}
	return out
}

func (s *Scanner) run(ctx context.Context, b deps.Backend, path string) deps.Outcome {
	t := b.Type()
	logger := s.logger()
	logger.Debug("searching source path", "type", t.Label(), "path", path)

	ok, err := call(ctx, s.Timeout, func(ctx context.Context) (bool, error) {
		return b.Applicable(ctx, path)
	})
	if err != nil {
		return deps.Failed(t, path, err)
	}
	if !ok {
		return deps.NotApplicable(t, path)
	}

	logger.Info("found files", "type", t.Label(), "path", path)
	projects, err := call(ctx, s.Timeout, func(ctx context.Context) ([]*deps.Node, error) {
		return b.Extract(ctx, path)
	})
	if err != nil {
		return deps.Failed(t, path, err)
	}
	return deps.Extracted(t, path, projects)
}

func (s *Scanner) logger() *log.Logger {
	if s.Logger == nil {
		return log.Default()
	}
	return s.Logger
}

// call runs fn with panic recovery and, when timeout > 0, a deadline. On
// timeout call returns without waiting for fn; fn's context is cancelled
// so a well-behaved backend stops soon after.
func call[T any](ctx context.Context, timeout time.Duration, fn func(context.Context) (T, error)) (T, error) {
	if timeout <= 0 {
		return guarded(ctx, fn)
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	type result struct {
		val T
		err error
	}
	done := make(chan result, 1)
	go func() {
		v, err := guarded(ctx, fn)
		done <- result{v, err}
	}()

	select {
	case r := <-done:
		if r.err != nil && errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return r.val, timeoutError(timeout, r.err)
		}
		return r.val, r.err
	case <-ctx.Done():
		var zero T
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return zero, timeoutError(timeout, ctx.Err())
		}
		return zero, ctx.Err()
	}
}

func timeoutError(timeout time.Duration, cause error) error {
	return perrors.Wrap(perrors.ErrCodeTimeout, cause, "backend did not finish within %s", timeout)
}

func guarded[T any](ctx context.Context, fn func(context.Context) (T, error)) (val T, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = perrors.Wrap(perrors.ErrCodeBackend, &perrors.PanicError{Value: r}, "backend panicked")
		}
	}()
	return fn(ctx)
}
