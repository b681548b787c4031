package selection_test

import (
	"testing"

	"github.com/dshills/sheetstorm/internal/dispatcher"
	"github.com/dshills/sheetstorm/internal/dispatcher/handlers/handlertest"
	"github.com/dshills/sheetstorm/internal/dispatcher/handlers/selection"
	"github.com/dshills/sheetstorm/internal/sheet"
)

func setup(t *testing.T) (*handlertest.App, *dispatcher.Dispatcher, *sheet.Sheet) {
	t.Helper()
	sh := handlertest.Table("people", []string{"name", "city"},
		[]string{"ann", "Oslo"},
		[]string{"bob", "Rome"},
		[]string{"cat", "oslo"},
		[]string{"dan", "Paris"},
		[]string{"ann", "Rome"},
	)
	app := handlertest.New(sh)
	d := dispatcher.NewWithDefaults()
	selection.NewHandler().Register(d)
	return app, d, sh
}

// selected returns the indexes of the selected rows.
func selected(sh *sheet.Sheet) []int {
	var out []int
	for i, r := range sh.Rows() {
		if sh.IsSelected(r) {
			out = append(out, i)
		}
	}
	return out
}

func equal(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func dispatch(t *testing.T, app *handlertest.App, d *dispatcher.Dispatcher, cmd dispatcher.Command) {
	t.Helper()
	if res := d.Dispatch(app.Context(""), cmd); res.IsError() {
		t.Fatalf("%s: %v", cmd, res.Error)
	}
	if err := app.Wait(); err != nil {
		t.Fatal(err)
	}
}

func TestRowCommandsAdvance(t *testing.T) {
	app, d, sh := setup(t)
	dispatch(t, app, d, dispatcher.CmdSelectRow)
	dispatch(t, app, d, dispatcher.CmdToggleRow)
	if got := selected(sh); !equal(got, []int{0, 1}) {
		t.Errorf("selected = %v, want [0 1]", got)
	}
	if r := sh.Cursor().Row; r != 2 {
		t.Errorf("cursor row = %d, want 2", r)
	}

	cur := sh.Cursor()
	cur.Row = 1
	sh.SetCursor(cur)
	dispatch(t, app, d, dispatcher.CmdUnselectRow)
	dispatch(t, app, d, dispatcher.CmdUnselectRow)
	if got := selected(sh); !equal(got, []int{0}) {
		t.Errorf("selected = %v, want [0]", got)
	}
}

func TestRegex(t *testing.T) {
	tests := []struct {
		name    string
		col     int
		cmd     dispatcher.Command
		pattern string
		want    []int
	}{
		{"cursor column ignores case", 1, dispatcher.CmdSelectRegex, "^oslo$", []int{0, 2}},
		{"visible columns", 0, dispatcher.CmdSelectRegexVisible, "^(ann|Paris)$", []int{0, 3, 4}},
		{"no match", 1, dispatcher.CmdSelectRegex, "Berlin", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, d, sh := setup(t)
			cur := sh.Cursor()
			cur.Col = tt.col
			sh.SetCursor(cur)
			app.Answer(tt.pattern)
			dispatch(t, app, d, tt.cmd)
			if got := selected(sh); !equal(got, tt.want) {
				t.Errorf("selected = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestUnselectRegex(t *testing.T) {
	app, d, sh := setup(t)
	dispatch(t, app, d, dispatcher.CmdSelectAll)
	app.Answer("o")
	dispatch(t, app, d, dispatcher.CmdUnselectRegex)
	if got := selected(sh); !equal(got, []int{0, 2, 3, 4}) {
		t.Errorf("selected = %v, want [0 2 3 4]", got)
	}
	if got := app.LastStatus(); got != "unselected 1 rows" {
		t.Errorf("status = %q", got)
	}
}

func TestBadRegex(t *testing.T) {
	app, d, _ := setup(t)
	app.Answer("(")
	if res := d.Dispatch(app.Context("|"), dispatcher.CmdSelectRegex); !res.IsError() {
		t.Error("invalid regex accepted")
	}
}

func TestAll(t *testing.T) {
	app, d, sh := setup(t)
	sh.SelectRow(sh.Row(1))
	dispatch(t, app, d, dispatcher.CmdToggleAll)
	if got := selected(sh); !equal(got, []int{0, 2, 3, 4}) {
		t.Errorf("after toggle-all = %v", got)
	}
	dispatch(t, app, d, dispatcher.CmdSelectAll)
	if n := sh.NSelected(); n != 5 {
		t.Errorf("NSelected() = %d after select-all, want 5", n)
	}
	dispatch(t, app, d, dispatcher.CmdUnselectAll)
	if n := sh.NSelected(); n != 0 {
		t.Errorf("NSelected() = %d after unselect-all, want 0", n)
	}
}

func TestSelectEqual(t *testing.T) {
	app, d, sh := setup(t)
	dispatch(t, app, d, dispatcher.CmdSelectEqualColumn)
	if got := selected(sh); !equal(got, []int{0, 4}) {
		t.Errorf("select-equal-column = %v, want [0 4]", got)
	}

	sh.ClearSelection()
	dispatch(t, app, d, dispatcher.CmdSelectEqualRow)
	if got := selected(sh); !equal(got, []int{0}) {
		t.Errorf("select-equal-row = %v, want [0]", got)
	}

	sh.ClearSelection()
	sh.SelectRow(sh.Row(1))
	cur := sh.Cursor()
	cur.Col = 1
	sh.SetCursor(cur)
	dispatch(t, app, d, dispatcher.CmdSelectEqualSelected)
	if got := selected(sh); !equal(got, []int{1, 4}) {
		t.Errorf("select-equal-selected = %v, want [1 4]", got)
	}
}

func TestSelectEqualSelectedNeedsSelection(t *testing.T) {
	app, d, _ := setup(t)
	res := d.Dispatch(app.Context("z,"), dispatcher.CmdSelectEqualSelected)
	if res.Message != "no rows selected" {
		t.Errorf("Message = %q, want %q", res.Message, "no rows selected")
	}
}
