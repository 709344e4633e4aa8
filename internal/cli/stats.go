package cli

import (
	"context"
	"sync"
	"time"

	"github.com/matzehuels/packman/pkg/observability"
)

// failure is one backend invocation that did not produce projects.
type failure struct {
	backend string
	path    string
	err     error
}

// scanStats collects scan and output events for the end-of-run summary.
type scanStats struct {
	mu       sync.Mutex
	invoked  int
	projects int
	nodes    int
	edges    int
	replaced int
	failures []failure
	elapsed  time.Duration
}

var (
	_ observability.ScanHooks   = (*scanStats)(nil)
	_ observability.OutputHooks = (*scanStats)(nil)
)

func (s *scanStats) OnBackendStart(context.Context, string, string) {}

func (s *scanStats) OnBackendComplete(_ context.Context, backend, path, status string, projects int, d time.Duration, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.invoked++
	s.elapsed += d
	switch status {
	case "extracted":
		s.projects += projects
	case "failed":
		s.failures = append(s.failures, failure{backend: backend, path: path, err: err})
	}
}

func (s *scanStats) OnFileWritten(_ context.Context, _, _ string, nodes, edges int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nodes += nodes
	s.edges += edges
}

func (s *scanStats) OnFileReplaced(context.Context, string, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.replaced++
}

// collectStats registers a fresh collector with the observability hooks.
// The returned function restores the no-op hooks.
func collectStats() (*scanStats, func()) {
	s := &scanStats{}
	observability.SetScanHooks(s)
	observability.SetOutputHooks(s)
	return s, observability.Reset
}
