package sheets

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/dshills/sheetstorm/internal/column"
	"github.com/dshills/sheetstorm/internal/config"
	"github.com/dshills/sheetstorm/internal/dispatcher"
	"github.com/dshills/sheetstorm/internal/input/keymap"
	"github.com/dshills/sheetstorm/internal/row"
	"github.com/dshills/sheetstorm/internal/sheet"
)

type item struct {
	Name string
	N    string
}

func itemSheet(items ...item) *sheet.Sheet {
	cols := []*column.Column{
		column.New("name", func(r *row.Row) (any, error) { return r.Data.(*item).Name, nil }),
		column.New("n", func(r *row.Row) (any, error) { return r.Data.(*item).N, nil }),
	}
	ptrs := make([]*item, len(items))
	for i := range items {
		ptrs[i] = &items[i]
	}
	return sheet.New("items", sheet.WithColumns(cols...), sheet.WithRows(row.FromSlice(ptrs)))
}

func load(t *testing.T, sh *sheet.Sheet) {
	t.Helper()
	if err := sh.Reload(context.Background()); err != nil {
		t.Fatalf("Reload() error = %v", err)
	}
}

func texts(sh *sheet.Sheet) []string {
	col := sh.Column(0)
	var out []string
	for _, r := range sh.Rows() {
		out = append(out, col.DisplayValue(r, 0).Text)
	}
	return out
}

func TestNewText(t *testing.T) {
	tests := []struct {
		name   string
		source any
		opts   []TextOption
		want   []string
	}{
		{"string", "a\nb\n", nil, []string{"a", "b"}},
		{"lines", []string{"x", "y", "z"}, nil, []string{"x", "y", "z"}},
		{"error", errors.New("boom"), nil, []string{"boom"}},
		{"errors", []error{errors.New("one"), errors.New("two")}, nil, []string{"one", "", "two", ""}},
		{"reader", strings.NewReader("r1\nr2"), nil, []string{"r1", "r2"}},
		{"wrap", "alpha beta gamma", []TextOption{WithWrap(10)}, []string{"alpha beta", "gamma"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sh := NewText("text", tt.source, tt.opts...)
			load(t, sh)
			got := texts(sh)
			if strings.Join(got, "|") != strings.Join(tt.want, "|") {
				t.Errorf("rows = %q, want %q", got, tt.want)
			}
			if sh.Kind() != sheet.KindText {
				t.Errorf("Kind() = %v, want %v", sh.Kind(), sheet.KindText)
			}
		})
	}
}

func TestNewTextUnknownSource(t *testing.T) {
	sh := NewText("text", 42)
	if err := sh.Reload(context.Background()); err == nil {
		t.Error("expected error for unsupported source")
	}
}

func TestColumnsSheetEditsSource(t *testing.T) {
	src := itemSheet(item{"a", "3"}, item{"b", "x"})
	cs := NewColumns(src)
	load(t, cs)
	if cs.NRows() != 2 {
		t.Fatalf("NRows() = %d, want 2", cs.NRows())
	}

	typeCol := cs.Column(2)
	if err := typeCol.SetValue(cs.Row(1), "int"); err != nil {
		t.Fatalf("set type error = %v", err)
	}
	if got := src.Column(1).Type(); got != column.Int {
		t.Errorf("source type = %v, want int", got.Name())
	}

	if err := cs.Column(0).SetValue(cs.Row(0), "label"); err != nil {
		t.Fatalf("rename error = %v", err)
	}
	if got := src.Column(0).Name(); got != "label" {
		t.Errorf("source name = %q, want %q", got, "label")
	}

	if err := cs.Column(1).SetValue(cs.Row(0), "7"); err != nil {
		t.Fatalf("width error = %v", err)
	}
	if got := src.Column(0).Width(); got != 7 {
		t.Errorf("source width = %d, want 7", got)
	}

	if err := typeCol.SetValue(cs.Row(0), "bogus"); !errors.Is(err, column.ErrUnknownType) {
		t.Errorf("bad type error = %v, want %v", err, column.ErrUnknownType)
	}

	if err := cs.Column(4).SetValue(cs.Row(1), "sum"); err != nil {
		t.Fatalf("aggregator error = %v", err)
	}
	if a := src.Column(1).Aggregator(); a == nil || a.Name() != "sum" {
		t.Errorf("source aggregator = %v, want sum", a)
	}
}

func TestColumnsSheetValueFollowsSourceCursor(t *testing.T) {
	src := itemSheet(item{"a", "1"}, item{"b", "2"})
	cs := NewColumns(src)
	load(t, cs)
	src.SetCursor(sheet.Cursor{Row: 1})
	if got := cs.Column(5).DisplayValue(cs.Row(0), 0).Text; got != "b" {
		t.Errorf("value = %q, want %q", got, "b")
	}
}

func TestSheetsSheet(t *testing.T) {
	a := itemSheet(item{"a", "1"})
	b := itemSheet(item{"b", "2"}, item{"c", "3"})
	var ss *sheet.Sheet
	ss = NewSheets(func() []*sheet.Sheet { return []*sheet.Sheet{a, b, ss} })
	load(t, ss)
	if ss.NRows() != 2 {
		t.Fatalf("NRows() = %d, want 2", ss.NRows())
	}
	got, ok := SheetAt(ss.Row(1))
	if !ok || got != b {
		t.Errorf("SheetAt(1) = %v, want second sheet", got)
	}
	if n := ss.Column(1).Value(ss.Row(1)); n != int64(2) {
		t.Errorf("nRows = %v, want 2", n)
	}
}

func TestOptionsSheet(t *testing.T) {
	store := config.NewStore(config.DefaultOptions())
	opts := NewOptions(store)
	load(t, opts)
	if opts.NRows() != len(config.Names()) {
		t.Fatalf("NRows() = %d, want %d", opts.NRows(), len(config.Names()))
	}
	var idx = -1
	for i, r := range opts.Rows() {
		if name, _ := OptionAt(r); name == "default_width" {
			idx = i
		}
	}
	if idx < 0 {
		t.Fatal("default_width not listed")
	}
	if err := opts.Column(1).SetValue(opts.Row(idx), "12"); err != nil {
		t.Fatalf("SetValue() error = %v", err)
	}
	if got := store.Get().DefaultWidth; got != 12 {
		t.Errorf("default_width = %d, want 12", got)
	}
	if err := opts.Column(1).SetValue(opts.Row(idx), "wide"); !errors.Is(err, config.ErrTypeMismatch) {
		t.Errorf("SetValue(wide) error = %v, want %v", err, config.ErrTypeMismatch)
	}
}

func TestHelpSheet(t *testing.T) {
	km := keymap.Default()
	src := itemSheet(item{"a", "1"})
	hs := NewHelp(km, src)
	load(t, hs)
	found := false
	for _, r := range hs.Rows() {
		b := r.Data.(keymap.Binding)
		if b.Name() == "q" {
			found = true
			if b.Command != dispatcher.CmdQuitSheet {
				t.Errorf("q command = %v, want %v", b.Command, dispatcher.CmdQuitSheet)
			}
			if g := hs.Column(2).DisplayValue(r, 0).Text; g == "" || g == "-" {
				t.Errorf("with_g_prefix for q = %q, want gq help", g)
			}
		}
	}
	if !found {
		t.Error("help sheet does not list q")
	}
}

func TestBinRowsOrdersByCount(t *testing.T) {
	src := itemSheet(item{"a", "1"}, item{"b", "2"}, item{"b", "3"}, item{"c", "4"}, item{"b", "5"}, item{"c", "6"})
	bins, err := BinRows(context.Background(), src.Rows(), src.Column(0), nil)
	if err != nil {
		t.Fatalf("BinRows() error = %v", err)
	}
	var got []string
	for _, b := range bins {
		got = append(got, b.Value)
	}
	if strings.Join(got, "") != "bca" {
		t.Errorf("bins = %v, want [b c a]", got)
	}
	if len(bins[0].Rows) != 3 {
		t.Errorf("len(bins[0].Rows) = %d, want 3", len(bins[0].Rows))
	}
}

func TestBinRowsAborts(t *testing.T) {
	src := itemSheet(item{"a", "1"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := BinRows(ctx, src.Rows(), src.Column(0), nil); err == nil {
		t.Error("expected abort error")
	}
}

func TestFreqSheetAggregates(t *testing.T) {
	src := itemSheet(item{"a", "1"}, item{"b", "2"}, item{"a", "3"})
	n := src.Column(1)
	n.SetType(column.Int)
	agg, err := column.LookupAggregator("sum")
	if err != nil {
		t.Fatal(err)
	}
	n.SetAggregator(agg)

	fs := NewFreq(src, src.Column(0))
	load(t, fs)
	if fs.NColumns() != 3 {
		t.Fatalf("NColumns() = %d, want 3", fs.NColumns())
	}
	if name := fs.Column(2).Name(); name != "n_sum" {
		t.Errorf("aggregate column = %q, want %q", name, "n_sum")
	}
	first := fs.Row(0)
	if v := fs.Column(1).Value(first); v != int64(2) {
		t.Errorf("count = %v, want 2", v)
	}
	if v := fs.Column(2).Value(first); v != int64(4) {
		t.Errorf("n_sum = %v, want 4", v)
	}

	b, _ := BinAt(first)
	bs := NewBinSheet(src, b)
	if bs.NRows() != 2 {
		t.Errorf("bin sheet rows = %d, want 2", bs.NRows())
	}
}
