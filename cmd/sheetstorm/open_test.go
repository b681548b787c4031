package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/dshills/sheetstorm/internal/source"
)

func writeFile(t *testing.T, dir, name, data string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestOpenSourcesOrder(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "alpha.csv", "x,y\n1,2\n")
	b := writeFile(t, dir, "beta.tsv", "x\ty\n1\t2\n")

	sheets, err := openSources(context.Background(), []string{a, b}, nil, source.Options{})
	if err != nil {
		t.Fatalf("openSources() error = %v", err)
	}
	if len(sheets) != 2 {
		t.Fatalf("len(sheets) = %d, want 2", len(sheets))
	}
	if sheets[0].Name() != "alpha" || sheets[1].Name() != "beta" {
		t.Errorf("names = %q, %q, want alpha, beta", sheets[0].Name(), sheets[1].Name())
	}
}

func TestOpenSourcesErrors(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name string
		args []string
	}{
		{"missing file", []string{filepath.Join(dir, "nope.csv")}},
		{"directory", []string{dir}},
		{"stdin unavailable", []string{"-"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := openSources(context.Background(), tt.args, nil, source.Options{}); err == nil {
				t.Error("openSources() error = nil, want error")
			}
		})
	}
}

func TestOpenSourcesStdin(t *testing.T) {
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()
	if _, err := w.WriteString("a\tb\n1\t2\n"); err != nil {
		t.Fatal(err)
	}
	w.Close()

	sheets, err := openSources(context.Background(), nil, r, source.Options{Delimiter: "\t"})
	if err != nil {
		t.Fatalf("openSources() error = %v", err)
	}
	if len(sheets) != 1 || sheets[0].Name() != stdinName {
		t.Fatalf("sheets = %v, want one stdin sheet", sheets)
	}
}

func TestOpenSourcesNothing(t *testing.T) {
	sheets, err := openSources(context.Background(), nil, nil, source.Options{})
	if err != nil || len(sheets) != 0 {
		t.Errorf("openSources() = %v, %v, want no sheets and no error", sheets, err)
	}
}
