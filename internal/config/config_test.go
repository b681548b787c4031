package config

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaultsCoverEveryName(t *testing.T) {
	opts := DefaultOptions()
	for _, name := range Names() {
		if _, err := opts.Get(name); err != nil {
			t.Errorf("Get(%q) error = %v", name, err)
		}
	}
	if got, _ := opts.Get("default_width"); got != "20" {
		t.Errorf("default_width = %q, want %q", got, "20")
	}
	if got, _ := opts.Get("disp_truncator"); got != "…" {
		t.Errorf("disp_truncator = %q, want %q", got, "…")
	}
}

func TestSet(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		want    string
		wantErr error
	}{
		{"default_width", "30", "30", nil},
		{"textwrap", "false", "false", nil},
		{"disp_none", "∅", "∅", nil},
		{"default_width", "wide", "", ErrTypeMismatch},
		{"debug", "maybe", "", ErrTypeMismatch},
		{"no_such_option", "1", "", ErrSettingNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name+"="+tt.value, func(t *testing.T) {
			opts := DefaultOptions()
			err := opts.Set(tt.name, tt.value)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Set() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Set() error = %v", err)
			}
			if got, _ := opts.Get(tt.name); got != tt.want {
				t.Errorf("Get() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestList(t *testing.T) {
	opts := DefaultOptions()
	opts.DefaultWidth = 12
	list := opts.List()
	if len(list) != len(Names()) {
		t.Fatalf("List() has %d entries, want %d", len(list), len(Names()))
	}
	for _, info := range list {
		if info.Name == "default_width" {
			if info.Value != "12" || info.Default != "20" {
				t.Errorf("default_width = %+v, want value 12 default 20", info)
			}
			if info.Help == "" {
				t.Error("expected help text for default_width")
			}
			return
		}
	}
	t.Error("default_width missing from List()")
}

func TestLoadMissingFile(t *testing.T) {
	opts, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if opts != DefaultOptions() {
		t.Error("expected defaults for missing file")
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sheetstorm.toml")
	data := "default_width = 8\ndisp_column_sep = \"  \"\nreadonly = true\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	opts, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if opts.DefaultWidth != 8 || opts.DispColumnSep != "  " || !opts.ReadOnly {
		t.Errorf("Load() = width %d sep %q readonly %v", opts.DefaultWidth, opts.DispColumnSep, opts.ReadOnly)
	}
	if opts.RegexFlags != "I" {
		t.Errorf("RegexFlags = %q, want default %q", opts.RegexFlags, "I")
	}
}

func TestLoadParseError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(path, []byte("default_width = 8\ndefault_width = = 9\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := Load(path)
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("Load() error = %v, want *ParseError", err)
	}
	if perr.Path != path {
		t.Errorf("Path = %q, want %q", perr.Path, path)
	}
	if perr.Line != 2 {
		t.Errorf("Line = %d, want 2", perr.Line)
	}
}

func TestWriteRoundTrip(t *testing.T) {
	opts := DefaultOptions()
	opts.DateFormat = "%d/%m/%Y"
	var buf bytes.Buffer
	if err := Write(&buf, opts); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if !strings.Contains(buf.String(), "date_format") {
		t.Errorf("encoded options missing date_format:\n%s", buf.String())
	}
	var back Options
	if err := Decode("buf", buf.Bytes(), &back); err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if back != opts {
		t.Error("decoded options differ from written options")
	}
}

func TestStoreSetNotifies(t *testing.T) {
	s := NewStore(DefaultOptions())
	var seen []int
	s.OnChange(func(o Options) { seen = append(seen, o.DefaultWidth) })

	if err := s.Set("default_width", "5"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := s.Set("default_width", "x"); err == nil {
		t.Error("expected error for bad value")
	}
	if s.Get().DefaultWidth != 5 {
		t.Errorf("DefaultWidth = %d, want 5", s.Get().DefaultWidth)
	}
	if len(seen) != 1 || seen[0] != 5 {
		t.Errorf("notifications = %v, want [5]", seen)
	}
}

func TestWatcherReloads(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sheetstorm.toml")
	if err := os.WriteFile(path, []byte("default_width = 8\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	store := NewStore(DefaultOptions())
	changed := make(chan Options, 4)
	store.OnChange(func(o Options) { changed <- o })

	w, err := WatchFile(path, store, nil)
	if err != nil {
		t.Fatalf("WatchFile() error = %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(path, []byte("default_width = 11\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	select {
	case o := <-changed:
		if o.DefaultWidth != 11 {
			t.Errorf("DefaultWidth = %d, want 11", o.DefaultWidth)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for reload")
	}
}

func TestWatcherCloseTwice(t *testing.T) {
	path := filepath.Join(t.TempDir(), "x.toml")
	w, err := WatchFile(path, NewStore(DefaultOptions()), nil)
	if err != nil {
		t.Fatalf("WatchFile() error = %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := w.Close(); !errors.Is(err, ErrWatcherClosed) {
		t.Errorf("second Close() = %v, want ErrWatcherClosed", err)
	}
}
