package program

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/tibasic/pb/internal/errors"
)

func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Chdir: %v", err)
	}
	t.Cleanup(func() { os.Chdir(prev) })
	return dir
}

func TestResolveCaseInsensitive(t *testing.T) {
	dir := chdirTemp(t)
	path := filepath.Join(dir, "HELLO.bas")
	if err := os.WriteFile(path, []byte("Disp \"hi\""), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	got, err := Resolve("hello")
	if err != nil {
		t.Fatalf("Resolve(\"hello\"): %v", err)
	}
	if got != "HELLO.bas" {
		t.Errorf("Resolve(\"hello\") = %q, want %q", got, "HELLO.bas")
	}
}

func TestResolveNotFound(t *testing.T) {
	chdirTemp(t)
	_, err := Resolve("MISSING")
	if err == nil {
		t.Fatal("expected an error for a program that does not exist")
	}
	if _, ok := err.(*errors.ExecutionError); !ok {
		t.Fatalf("got %T, want *errors.ExecutionError", err)
	}
}
