package scan

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/packman/pkg/deps"
	perrors "github.com/matzehuels/packman/pkg/errors"
)

// fakeBackend applies to the paths listed in projects (or all paths when
// applyAll is set) and returns the configured projects for each.
type fakeBackend struct {
	typ        deps.Type
	projects   map[string][]*deps.Node
	extractErr error
	applyErr   error
	panicWith  any
	block      bool
	calls      *[]string
}

func (f *fakeBackend) Type() deps.Type { return f.typ }

func (f *fakeBackend) Applicable(ctx context.Context, path string) (bool, error) {
	if f.calls != nil {
		*f.calls = append(*f.calls, fmt.Sprintf("%s:%s", f.typ, path))
	}
	if f.applyErr != nil {
		return false, f.applyErr
	}
	_, ok := f.projects[path]
	return ok, nil
}

func (f *fakeBackend) Extract(ctx context.Context, path string) ([]*deps.Node, error) {
	if f.panicWith != nil {
		panic(f.panicWith)
	}
	if f.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if f.extractErr != nil {
		return nil, f.extractErr
	}
	return f.projects[path], nil
}

func node(t deps.Type, name string) *deps.Node {
	return deps.NewNode(t, name, "1.0.0")
}

func newTestScanner(timeout time.Duration) (*Scanner, *bytes.Buffer) {
	var buf bytes.Buffer
	return New(log.New(&buf), timeout), &buf
}

func resultSummary(rs []Result) []string {
	var out []string
	for _, r := range rs {
		for _, p := range r.Projects {
			out = append(out, fmt.Sprintf("%s:%s:%s", r.Type, r.Path, p.Name))
		}
	}
	return out
}

func TestScanOrderBackendOuterPathInner(t *testing.T) {
	var calls []string
	npm := &fakeBackend{typ: deps.TypeNPM, calls: &calls, projects: map[string][]*deps.Node{
		"/a": {node(deps.TypeNPM, "web")},
		"/b": {node(deps.TypeNPM, "api")},
	}}
	pip := &fakeBackend{typ: deps.TypePIP, calls: &calls, projects: map[string][]*deps.Node{
		"/a": {node(deps.TypePIP, "tools")},
	}}

	s, _ := newTestScanner(0)
	results, err := s.Scan(context.Background(), []deps.Backend{npm, pip}, []string{"/a", "/b"})
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}

	wantCalls := []string{"NPM:/a", "NPM:/b", "PIP:/a", "PIP:/b"}
	if !reflect.DeepEqual(calls, wantCalls) {
		t.Errorf("calls = %v, want %v", calls, wantCalls)
	}
	want := []string{"NPM:/a:web", "NPM:/b:api", "PIP:/a:tools"}
	if got := resultSummary(results); !reflect.DeepEqual(got, want) {
		t.Errorf("results = %v, want %v", got, want)
	}
}

func TestScanIsolatesFailures(t *testing.T) {
	good := &fakeBackend{typ: deps.TypeNPM, projects: map[string][]*deps.Node{"/proj": {node(deps.TypeNPM, "app")}}}

	tests := []struct {
		name    string
		bad     *fakeBackend
		wantLog string
	}{
		{
			name:    "extract error",
			bad:     &fakeBackend{typ: deps.TypePIP, projects: map[string][]*deps.Node{"/proj": nil}, extractErr: errors.New("malformed poetry.lock")},
			wantLog: "malformed poetry.lock",
		},
		{
			name:    "applicable error",
			bad:     &fakeBackend{typ: deps.TypePIP, applyErr: errors.New("permission denied")},
			wantLog: "permission denied",
		},
		{
			name:    "panic",
			bad:     &fakeBackend{typ: deps.TypePIP, projects: map[string][]*deps.Node{"/proj": nil}, panicWith: "nil map"},
			wantLog: "nil map",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, logs := newTestScanner(0)
			// failing backend first so the good one must still run after it
			results, err := s.Scan(context.Background(), []deps.Backend{tt.bad, good}, []string{"/proj"})
			if err != nil {
				t.Fatalf("Scan() error = %v, want nil", err)
			}
			if got := resultSummary(results); !reflect.DeepEqual(got, []string{"NPM:/proj:app"}) {
				t.Errorf("results = %v", got)
			}
			out := logs.String()
			for _, want := range []string{"WARN", "package manager failed", "PIP", "/proj", tt.wantLog} {
				if !strings.Contains(out, want) {
					t.Errorf("log missing %q:\n%s", want, out)
				}
			}
			if strings.Contains(out, "ERRO") {
				t.Errorf("backend failure logged as an error:\n%s", out)
			}
		})
	}
}

func TestScanSkipsNotApplicableSilently(t *testing.T) {
	b := &fakeBackend{typ: deps.TypeCargo}
	s, logs := newTestScanner(0)

	results, err := s.Scan(context.Background(), []deps.Backend{b}, []string{"/x", "/y"})
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 0 {
		t.Errorf("results = %v, want none", results)
	}
	if strings.Contains(logs.String(), "failed") {
		t.Errorf("not-applicable should not log errors:\n%s", logs.String())
	}
	if !strings.Contains(logs.String(), "could not find any package managers") {
		t.Errorf("expected empty-scan info message:\n%s", logs.String())
	}
}

func TestScanDropsEmptyExtraction(t *testing.T) {
	b := &fakeBackend{typ: deps.TypeGoMod, projects: map[string][]*deps.Node{"/src": {}}}
	s, _ := newTestScanner(0)

	results, err := s.Scan(context.Background(), []deps.Backend{b}, []string{"/src"})
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 0 {
		t.Errorf("results = %v, want none for empty extraction", results)
	}
}

func TestScanTimeout(t *testing.T) {
	hung := &fakeBackend{typ: deps.TypePIP, projects: map[string][]*deps.Node{"/proj": nil}, block: true}
	good := &fakeBackend{typ: deps.TypeNPM, projects: map[string][]*deps.Node{"/proj": {node(deps.TypeNPM, "app")}}}

	s, logs := newTestScanner(20 * time.Millisecond)
	results, err := s.Scan(context.Background(), []deps.Backend{hung, good}, []string{"/proj"})
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(results) != 1 || results[0].Type != deps.TypeNPM {
		t.Errorf("results = %v, want only NPM", resultSummary(results))
	}
	if !strings.Contains(logs.String(), string(perrors.ErrCodeTimeout)) {
		t.Errorf("expected timeout in log:\n%s", logs.String())
	}
}

func TestRunOutcome(t *testing.T) {
	s, _ := newTestScanner(0)
	ctx := context.Background()

	tests := []struct {
		name    string
		backend *fakeBackend
		want    deps.Status
	}{
		{"not applicable", &fakeBackend{typ: deps.TypeNPM}, deps.StatusNotApplicable},
		{"extracted", &fakeBackend{typ: deps.TypeNPM, projects: map[string][]*deps.Node{"/p": {node(deps.TypeNPM, "a")}}}, deps.StatusExtracted},
		{"failed", &fakeBackend{typ: deps.TypeNPM, applyErr: errors.New("x")}, deps.StatusFailed},
		{"panicked", &fakeBackend{typ: deps.TypeNPM, projects: map[string][]*deps.Node{"/p": nil}, panicWith: 1}, deps.StatusFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := s.Run(ctx, tt.backend, "/p")
			if out.Status != tt.want {
				t.Errorf("Status = %v, want %v (err: %v)", out.Status, tt.want, out.Err)
			}
			if out.Type != deps.TypeNPM || out.Path != "/p" {
				t.Errorf("outcome identity = %s %s", out.Type, out.Path)
			}
		})
	}
}

func TestRunPanicIsCoded(t *testing.T) {
	s, _ := newTestScanner(0)
	out := s.Run(context.Background(), &fakeBackend{typ: deps.TypeNPM, projects: map[string][]*deps.Node{"/p": nil}, panicWith: "boom"}, "/p")

	if !perrors.Is(out.Err, perrors.ErrCodeBackend) {
		t.Errorf("err code = %v, want %v", perrors.GetCode(out.Err), perrors.ErrCodeBackend)
	}
	var pe *perrors.PanicError
	if !errors.As(out.Err, &pe) || pe.Value != "boom" {
		t.Errorf("err = %v, want wrapped PanicError(boom)", out.Err)
	}
}

func TestScanCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	b := &fakeBackend{typ: deps.TypeNPM, projects: map[string][]*deps.Node{"/p": {node(deps.TypeNPM, "a")}}}
	s, _ := newTestScanner(0)
	if _, err := s.Scan(ctx, []deps.Backend{b}, []string{"/p"}); !errors.Is(err, context.Canceled) {
		t.Errorf("Scan() error = %v, want context.Canceled", err)
	}
}
