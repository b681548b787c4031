package columns_test

import (
	"errors"
	"slices"
	"testing"

	"github.com/dshills/sheetstorm/internal/column"
	"github.com/dshills/sheetstorm/internal/dispatcher"
	"github.com/dshills/sheetstorm/internal/dispatcher/handlers/columns"
	"github.com/dshills/sheetstorm/internal/dispatcher/handlers/handlertest"
	"github.com/dshills/sheetstorm/internal/sheet"
)

func setup(t *testing.T) (*handlertest.App, *dispatcher.Dispatcher, *sheet.Sheet) {
	t.Helper()
	sh := handlertest.Table("items", []string{"name", "qty", "price"},
		[]string{"pen", "3", "1.5"},
		[]string{"ink", "x", "4"},
		[]string{"pad", "5", "2"},
	)
	app := handlertest.New(sh)
	d := dispatcher.NewWithDefaults()
	columns.NewHandler().Register(d)
	return app, d, sh
}

func at(sh *sheet.Sheet, col int) {
	cur := sh.Cursor()
	cur.Col = col
	sh.SetCursor(cur)
}

func names(sh *sheet.Sheet) []string {
	var out []string
	for _, c := range sh.Columns() {
		out = append(out, c.Name())
	}
	return out
}

func TestSetTypeInt(t *testing.T) {
	app, d, sh := setup(t)
	at(sh, 1)
	if res := d.Dispatch(app.Context("#"), dispatcher.CmdTypeInt); res.IsError() {
		t.Fatalf("type-int: %v", res.Error)
	}
	col := sh.Column(1)
	if col.Type() != column.Int {
		t.Fatalf("Type() = %s, want int", col.Type().Name())
	}
	want := []column.Kind{column.KindValue, column.KindWrongType, column.KindValue}
	for i, r := range sh.Rows() {
		if got := col.DisplayValue(r, 0).Kind; got != want[i] {
			t.Errorf("row %d kind = %s, want %s", i, got, want[i])
		}
	}
	if got := handlertest.Cells(sh, 1); got[0] != "3" || got[2] != "5" {
		t.Errorf("Cells() = %q, want 3 and 5 around the bad value", got)
	}
}

func TestHideColumn(t *testing.T) {
	app, d, sh := setup(t)
	at(sh, 1)
	d.Dispatch(app.Context("-"), dispatcher.CmdHideColumn)
	if !sh.Column(1).Hidden() {
		t.Error("qty not hidden")
	}
	if n := len(sh.VisibleColumns()); n != 2 {
		t.Errorf("visible columns = %d, want 2", n)
	}
}

func TestToggleWidth(t *testing.T) {
	app, d, sh := setup(t)
	d.Dispatch(app.Context("_"), dispatcher.CmdToggleWidth)
	if w := sh.Column(0).Width(); w != 6 {
		t.Errorf("width = %d, want 6", w)
	}
	d.Dispatch(app.Context("_"), dispatcher.CmdToggleWidth)
	if w := sh.Column(0).Width(); w != app.Options().DefaultWidth {
		t.Errorf("width = %d, want default %d", w, app.Options().DefaultWidth)
	}
}

func TestToggleKey(t *testing.T) {
	app, d, sh := setup(t)
	at(sh, 2)
	res := d.Dispatch(app.Context("!"), dispatcher.CmdToggleKey)
	if res.IsError() {
		t.Fatalf("toggle-key: %v", res.Error)
	}
	if got := names(sh); !slices.Equal(got, []string{"price", "name", "qty"}) {
		t.Errorf("columns = %q, want price first", got)
	}
	if sh.NKeys() != 1 || sh.Cursor().Col != 0 {
		t.Errorf("nKeys = %d cursor = %d, want 1 and 0", sh.NKeys(), sh.Cursor().Col)
	}
	d.Dispatch(app.Context("!"), dispatcher.CmdToggleKey)
	if sh.NKeys() != 0 {
		t.Errorf("nKeys = %d after second toggle, want 0", sh.NKeys())
	}
}

func TestMoveColumn(t *testing.T) {
	app, d, sh := setup(t)
	at(sh, 1)
	d.Dispatch(app.Context("L"), dispatcher.CmdMoveColumnRight)
	if got := names(sh); !slices.Equal(got, []string{"name", "price", "qty"}) {
		t.Errorf("columns = %q after L", got)
	}
	if c := sh.Cursor().Col; c != 2 {
		t.Errorf("cursor = %d, want 2", c)
	}
	if res := d.Dispatch(app.Context("L"), dispatcher.CmdMoveColumnRight); res.IsError() {
		t.Errorf("L at right edge: %v", res.Error)
	}

	if _, err := sh.ToggleKeyColumn(0); err != nil {
		t.Fatal(err)
	}
	at(sh, 1)
	res := d.Dispatch(app.Context("H"), dispatcher.CmdMoveColumnLeft)
	if !errors.Is(res.Error, columns.ErrKeyBoundary) {
		t.Errorf("H across keys error = %v, want ErrKeyBoundary", res.Error)
	}
}

func TestRenameAndClean(t *testing.T) {
	app, d, sh := setup(t)
	app.Answer("unit price ($)")
	at(sh, 2)
	if res := d.Dispatch(app.Context("^"), dispatcher.CmdRenameColumn); res.IsError() {
		t.Fatalf("rename: %v", res.Error)
	}
	if got := sh.Column(2).Name(); got != "unit price ($)" {
		t.Errorf("Name() = %q", got)
	}
	d.Dispatch(app.Context("zc"), dispatcher.CmdCleanNames)
	if got := sh.Column(2).Name(); got != "unitprice" {
		t.Errorf("cleaned Name() = %q, want unitprice", got)
	}

	res := d.Dispatch(app.Context("^"), dispatcher.CmdRenameColumn)
	if !res.IsAborted() {
		t.Errorf("rename with no answer = %v, want aborted", res.Status)
	}
}

func TestCleanName(t *testing.T) {
	tests := []struct{ in, want string }{
		{"a b", "ab"},
		{"total_€", "total_"},
		{"é1", "é1"},
		{"#", ""},
	}
	for _, tt := range tests {
		if got := columns.CleanName(tt.in); got != tt.want {
			t.Errorf("CleanName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSetAggregator(t *testing.T) {
	app, d, sh := setup(t)
	at(sh, 2)
	app.Answer("sum")
	d.Dispatch(app.Context("+"), dispatcher.CmdSetAggregator)
	if agg := sh.Column(2).Aggregator(); agg == nil || agg.Name() != "sum" {
		t.Fatalf("Aggregator() = %v, want sum", agg)
	}
	app.Answer("median-ish")
	if res := d.Dispatch(app.Context("+"), dispatcher.CmdSetAggregator); !res.IsError() {
		t.Error("unknown aggregator accepted")
	}
	app.Answer("")
	d.Dispatch(app.Context("+"), dispatcher.CmdSetAggregator)
	if agg := sh.Column(2).Aggregator(); agg != nil {
		t.Errorf("Aggregator() = %s after clearing", agg.Name())
	}
}

func TestAddExpr(t *testing.T) {
	app, d, sh := setup(t)
	sh.Column(1).SetType(column.Int)
	sh.Column(2).SetType(column.Float)
	app.Answer("qty * price")
	if res := d.Dispatch(app.Context("="), dispatcher.CmdAddExpr); res.IsError() {
		t.Fatalf("add-expr: %v", res.Error)
	}
	if got := names(sh); !slices.Equal(got, []string{"name", "qty * price", "qty", "price"}) {
		t.Fatalf("columns = %q", got)
	}
	if c := sh.Cursor().Col; c != 1 {
		t.Errorf("cursor = %d, want 1", c)
	}
	// expression columns are untyped, so the value is its display form
	if got := sh.CellValue(0, sh.Column(1)); got != "4.5" {
		t.Errorf("first value = %#v, want %q", got, "4.5")
	}

	app.Answer("qty *")
	if res := d.Dispatch(app.Context("="), dispatcher.CmdAddExpr); !res.IsError() {
		t.Error("syntax error accepted")
	}
}

func TestCopyToSource(t *testing.T) {
	app, d, sh := setup(t)
	if res := d.Dispatch(app.Context("zA"), dispatcher.CmdCopyColumnToSource); !errors.Is(res.Error, columns.ErrNoSourceSheet) {
		t.Errorf("error = %v, want ErrNoSourceSheet", res.Error)
	}

	derived := sheet.New("derived", sheet.WithSources(sh), sheet.WithColumns(sh.Column(0).Copy()))
	app.Push(derived)
	if res := d.Dispatch(app.Context("zA"), dispatcher.CmdCopyColumnToSource); res.IsError() {
		t.Fatalf("copy-column-to-source: %v", res.Error)
	}
	if n := sh.NColumns(); n != 4 {
		t.Errorf("source columns = %d, want 4", n)
	}
}

func TestSort(t *testing.T) {
	app, d, sh := setup(t)
	at(sh, 0)
	d.Dispatch(app.Context("["), dispatcher.CmdSortAsc)
	if err := app.Wait(); err != nil {
		t.Fatal(err)
	}
	if got := handlertest.Cells(sh, 0); !slices.Equal(got, []string{"ink", "pad", "pen"}) {
		t.Errorf("ascending = %q", got)
	}
	d.Dispatch(app.Context("]"), dispatcher.CmdSortDesc)
	if err := app.Wait(); err != nil {
		t.Fatal(err)
	}
	if got := handlertest.Cells(sh, 0); !slices.Equal(got, []string{"pen", "pad", "ink"}) {
		t.Errorf("descending = %q", got)
	}

	res := d.Dispatch(app.Context("g["), dispatcher.CmdSortKeysAsc)
	if !errors.Is(res.Error, columns.ErrNoKeyColumns) {
		t.Errorf("key sort error = %v, want ErrNoKeyColumns", res.Error)
	}
}
