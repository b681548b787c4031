package sheetstack_test

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/dshills/sheetstorm/internal/dispatcher"
	"github.com/dshills/sheetstorm/internal/dispatcher/handlers/handlertest"
	"github.com/dshills/sheetstorm/internal/dispatcher/handlers/sheetstack"
	"github.com/dshills/sheetstorm/internal/input/keymap"
	"github.com/dshills/sheetstorm/internal/row"
	"github.com/dshills/sheetstorm/internal/sheet"
	"github.com/dshills/sheetstorm/internal/sheets"
)

func setup(t *testing.T) (*handlertest.App, *dispatcher.Dispatcher, *sheet.Sheet) {
	t.Helper()
	sh := handlertest.Table("fruit", []string{"name", "color"},
		[]string{"apple", "red"},
		[]string{"lime", "green"},
		[]string{"cherry", "red"},
	)
	app := handlertest.New(sh)
	d := dispatcher.NewWithDefaults()
	sheetstack.NewHandler(keymap.Default()).Register(d)
	return app, d, sh
}

func dispatch(t *testing.T, app *handlertest.App, d *dispatcher.Dispatcher, cmd dispatcher.Command) *sheet.Sheet {
	t.Helper()
	if res := d.Dispatch(app.Context(""), cmd); res.IsError() {
		t.Fatalf("%s: %v", cmd, res.Error)
	}
	top := app.Top()
	if top != nil && !top.Loaded() && top.Loader() != nil {
		if err := top.Reload(context.Background()); err != nil {
			t.Fatalf("load %s: %v", top.Name(), err)
		}
	}
	return top
}

func TestQuit(t *testing.T) {
	app, d, sh := setup(t)
	other := handlertest.Table("other", []string{"a"})
	app.Push(other)

	if top := dispatch(t, app, d, dispatcher.CmdQuitSheet); top != sh {
		t.Fatalf("top after q = %v, want fruit", top)
	}
	if app.Quitting() {
		t.Fatal("quit with a sheet left")
	}
	dispatch(t, app, d, dispatcher.CmdQuitSheet)
	if !app.Quitting() {
		t.Error("empty stack did not quit")
	}
}

func TestQuitAll(t *testing.T) {
	app, d, _ := setup(t)
	app.Push(handlertest.Table("other", []string{"a"}))
	dispatch(t, app, d, dispatcher.CmdQuitAll)
	if !app.Quitting() || len(app.Sheets()) != 0 {
		t.Errorf("quit-all left %d sheets", len(app.Sheets()))
	}
}

func TestSwap(t *testing.T) {
	app, d, sh := setup(t)
	if res := d.Dispatch(app.Context("^^"), dispatcher.CmdSwapSheets); res.Message != "no other sheet" {
		t.Errorf("swap alone = %q", res.Message)
	}
	other := handlertest.Table("other", []string{"a"})
	app.Push(other)
	if top := dispatch(t, app, d, dispatcher.CmdSwapSheets); top != sh {
		t.Errorf("top = %s, want fruit", top.Name())
	}
	if top := dispatch(t, app, d, dispatcher.CmdSwapSheets); top != other {
		t.Errorf("top = %s, want other", top.Name())
	}
}

func TestPushSelectedAndSource(t *testing.T) {
	app, d, sh := setup(t)
	sh.SelectRow(sh.Row(2))
	sh.SelectRow(sh.Row(0))

	top := dispatch(t, app, d, dispatcher.CmdPushSelected)
	if top.Name() != "fruit~selected" {
		t.Errorf("Name() = %q", top.Name())
	}
	if got := handlertest.Cells(top, 0); !slices.Equal(got, []string{"apple", "cherry"}) {
		t.Errorf("rows = %q, want apple cherry", got)
	}
	if top.Source() != sh {
		t.Errorf("Source() = %v, want fruit", top.Source())
	}

	if back := dispatch(t, app, d, dispatcher.CmdPushSource); back != sh {
		t.Errorf("push-source top = %s, want fruit", back.Name())
	}
	if res := d.Dispatch(app.Context("`"), dispatcher.CmdPushSource); !errors.Is(res.Error, sheetstack.ErrNoSourceSheet) {
		t.Errorf("push-source on root = %v, want ErrNoSourceSheet", res.Error)
	}
}

func TestPushCopy(t *testing.T) {
	app, d, sh := setup(t)
	top := dispatch(t, app, d, dispatcher.CmdPushCopy)
	if top == sh || top.NRows() != 3 {
		t.Fatalf("copy = %v with %d rows", top.Name(), top.NRows())
	}
	top.Column(0).SetName("renamed")
	if sh.Column(0).Name() != "name" {
		t.Error("copy shares columns with its source")
	}
}

func TestMetaSheets(t *testing.T) {
	tests := []struct {
		cmd      dispatcher.Command
		wantKind sheet.Kind
		wantRows int
	}{
		{dispatcher.CmdColumnsSheet, sheet.KindColumns, 2},
		{dispatcher.CmdSheetsSheet, sheet.KindSheets, 1},
		{dispatcher.CmdFreq, sheet.KindFreq, 3},
		{dispatcher.CmdViewCell, sheet.KindText, 1},
	}
	for _, tt := range tests {
		t.Run(tt.cmd.String(), func(t *testing.T) {
			app, d, _ := setup(t)
			top := dispatch(t, app, d, tt.cmd)
			if top.Kind() != tt.wantKind || top.NRows() != tt.wantRows {
				t.Errorf("top = %s/%d rows, want %s/%d", top.Kind(), top.NRows(), tt.wantKind, tt.wantRows)
			}
		})
	}
}

func TestHelpAndOptions(t *testing.T) {
	app, d, _ := setup(t)
	if top := dispatch(t, app, d, dispatcher.CmdHelp); top.Kind() != sheet.KindHelp || top.NRows() == 0 {
		t.Errorf("help = %s with %d rows", top.Kind(), top.NRows())
	}
	top := dispatch(t, app, d, dispatcher.CmdOptionsSheet)
	if top.Kind() != sheet.KindOptions {
		t.Fatalf("options kind = %s", top.Kind())
	}

	for i, r := range top.Rows() {
		if name, _ := sheets.OptionAt(r); name == "default_width" {
			cur := top.Cursor()
			cur.Row = i
			top.SetCursor(cur)
		}
	}
	app.Answer("8")
	if res := d.Dispatch(app.Context("e"), dispatcher.CmdEditOption); res.IsError() {
		t.Fatalf("edit-option: %v", res.Error)
	}
	if w := app.Options().DefaultWidth; w != 8 {
		t.Errorf("default_width = %d, want 8", w)
	}
}

func TestStatusAndErrors(t *testing.T) {
	app, d, _ := setup(t)
	app.Status("hello")
	if top := dispatch(t, app, d, dispatcher.CmdStatusHistory); top.NRows() != 1 {
		t.Errorf("status history rows = %d, want 1", top.NRows())
	}

	if res := d.Dispatch(app.Context("^E"), dispatcher.CmdLastError); res.Message != "no error" {
		t.Errorf("^E with no errors = %q", res.Message)
	}
	d.RecordError(errors.New("first"))
	d.RecordError(errors.New("second\nwith detail"))
	top := dispatch(t, app, d, dispatcher.CmdLastError)
	if got := handlertest.Cells(top, 0); !slices.Equal(got, []string{"second", "with detail"}) {
		t.Errorf("last error = %q", got)
	}
	top = dispatch(t, app, d, dispatcher.CmdAllErrors)
	if n := top.NRows(); n != 5 {
		t.Errorf("all errors rows = %d, want 5", n)
	}
}

func TestJumpToSheet(t *testing.T) {
	app, d, sh := setup(t)
	app.Push(handlertest.Table("other", []string{"a"}))
	list := dispatch(t, app, d, dispatcher.CmdSheetsSheet)
	for i, r := range list.Rows() {
		if s, _ := sheets.SheetAt(r); s == sh {
			cur := list.Cursor()
			cur.Row = i
			list.SetCursor(cur)
		}
	}
	if top := dispatch(t, app, d, dispatcher.CmdJumpToSheet); top != sh {
		t.Errorf("top = %s, want fruit", top.Name())
	}
}

func TestFreqBins(t *testing.T) {
	app, d, sh := setup(t)
	cur := sh.Cursor()
	cur.Col = 1
	sh.SetCursor(cur)
	freq := dispatch(t, app, d, dispatcher.CmdFreq)
	if got := handlertest.Cells(freq, 0); !slices.Equal(got, []string{"red", "green"}) {
		t.Fatalf("bins = %q", got)
	}

	bin := dispatch(t, app, d, dispatcher.CmdPushBin)
	if got := handlertest.Cells(bin, 0); !slices.Equal(got, []string{"apple", "cherry"}) {
		t.Errorf("bin rows = %q", got)
	}
	app.Pop()

	freq.SelectRow(freq.Row(0))
	freq.SelectRow(freq.Row(1))
	if res := d.Dispatch(app.Context("g^J"), dispatcher.CmdSelectBinSources); res.IsError() {
		t.Fatalf("select-bin-sources: %v", res.Error)
	}
	var got []int
	for i, r := range sh.Rows() {
		if sh.IsSelected(r) {
			got = append(got, i)
		}
	}
	if !slices.Equal(got, []int{0, 1}) {
		t.Errorf("selected source rows = %v, want [0 1]", got)
	}
}

func TestOpenTable(t *testing.T) {
	app, d, sh := setup(t)
	if res := d.Dispatch(app.Context("^J"), dispatcher.CmdOpenTable); !errors.Is(res.Error, sheetstack.ErrNotOpenable) {
		t.Errorf("open on plain sheet = %v, want ErrNotOpenable", res.Error)
	}
	db := sheet.New("db", sheet.WithKind(sheet.KindDB), sheet.WithSources(opener{}), sheet.WithRows(sh.Rows()))
	app.Push(db)
	top := dispatch(t, app, d, dispatcher.CmdOpenTable)
	if top.Name() != "apple" {
		t.Errorf("opened %q, want apple", top.Name())
	}
}

type opener struct{}

func (opener) Open(r *row.Row) (*sheet.Sheet, error) {
	return handlertest.Table((*r.Data.(*[]string))[0], []string{"x"}), nil
}
