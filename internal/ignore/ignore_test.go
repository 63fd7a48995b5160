package ignore

import (
	"bufio"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestIgnoreMatch(t *testing.T) {
	dir := t.TempDir()
	ig := filepath.Join(dir, FileName)
	content := "node_modules/\n*.pem\n# comment\n\nsecret.env\n/build/**\ndocs/*.md\n!keep.pem\n"
	if err := os.WriteFile(ig, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	m, err := Load(ig)
	if err != nil {
		t.Fatal(err)
	}
	cases := map[string]bool{
		"node_modules/pkg/index.js": true,
		"a/node_modules/x.js":       true,
		"node_modules":              false,
		"certs/key.pem":             true,
		"certs/keep.pem":            false,
		"secret.env":                true,
		"config/secret.env":         true,
		"build/out/app.bin":         true,
		"src/build/app.bin":         false,
		"docs/readme.md":            true,
		"docs/api/readme.md":        false,
		"src/app.go":                false,
		"./src/key.pem":             true,
	}
	for p, want := range cases {
		if got := m.Match(p); got != want {
			t.Fatalf("Match(%q)=%v want %v", p, got, want)
		}
	}
}

func TestLoad_Missing(t *testing.T) {
	m, err := Load(filepath.Join(t.TempDir(), FileName))
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
	if !m.Empty() || m.Match("anything") {
		t.Fatal("missing file must ignore nothing")
	}
}

func TestParse_SkipsInvalidPatterns(t *testing.T) {
	m, err := Parse(bufio.NewScanner(strings.NewReader("[unterminated\n*.key\n")))
	if err != nil {
		t.Fatal(err)
	}
	if !m.Match("a/b.key") {
		t.Fatal("valid pattern after an invalid one must still apply")
	}
}
