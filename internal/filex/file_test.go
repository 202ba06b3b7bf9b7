package filex

import (
	"os"
	"path/filepath"
	"testing"
)

func TestEnsureSubDir(t *testing.T) {
	tmp := t.TempDir()
	cwd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(tmp); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(cwd) })

	dir, err := EnsureSubDir("staging")
	if err != nil {
		t.Fatalf("EnsureSubDir error: %v", err)
	}

	info, err := os.Stat(dir)
	if err != nil {
		t.Fatalf("stat %s: %v", dir, err)
	}
	if !info.IsDir() {
		t.Fatalf("%s is not a directory", dir)
	}
	if filepath.Base(dir) != "staging" {
		t.Fatalf("unexpected dir name: %s", dir)
	}

	// second call is a no-op
	if _, err := EnsureSubDir("staging"); err != nil {
		t.Fatalf("EnsureSubDir second call error: %v", err)
	}
}
