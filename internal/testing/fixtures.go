package testing

import (
	_ "embed"
	"os"
	"path/filepath"
	"strconv"
	"testing"
)

// StandaloneTemplate is the stock single-container template with every
// placeholder the wizard writes.
//
//go:embed testdata/standalone.yml
var StandaloneTemplate string

// WriteTemplate writes StandaloneTemplate to dir/samples/standalone.yml and
// returns its path.
func WriteTemplate(t *testing.T, dir string) string {
	t.Helper()
	return WriteFile(t, filepath.Join(dir, "samples", "standalone.yml"), StandaloneTemplate)
}

// WriteFile writes content to path, creating parent directories.
func WriteFile(t *testing.T, path, content string) string {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
	return path
}

// WriteLauncher writes an executable shell script that exits with code and
// records its arguments in dir/launcher.args.
func WriteLauncher(t *testing.T, dir string, code int) string {
	t.Helper()
	path := filepath.Join(dir, "launcher")
	script := "#!/bin/sh\necho \"$@\" > \"$(dirname \"$0\")/launcher.args\"\nexit " + strconv.Itoa(code) + "\n"
	WriteFile(t, path, script)
	if err := os.Chmod(path, 0o755); err != nil {
		t.Fatalf("failed to chmod %s: %v", path, err)
	}
	return path
}
