package collector

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// fakeRunner returns canned command output keyed by command name.
type fakeRunner struct {
	outputs map[string]string
	calls   []string
}

func (f *fakeRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	f.calls = append(f.calls, strings.Join(append([]string{name}, args...), " "))
	out, ok := f.outputs[name]
	if !ok {
		return nil, errors.New("exec: \"" + name + "\": executable file not found in $PATH")
	}
	return []byte(out), nil
}

// newSources creates empty proc and sys roots under a temp dir.
func newSources(t *testing.T) Sources {
	t.Helper()
	dir := t.TempDir()
	return Sources{
		ProcRoot: filepath.Join(dir, "proc"),
		SysRoot:  filepath.Join(dir, "sys"),
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}
