package app

import (
	"github.com/dshills/sheetstorm/internal/column"
	"github.com/dshills/sheetstorm/internal/config"
	"github.com/dshills/sheetstorm/internal/renderer"
	"github.com/dshills/sheetstorm/internal/renderer/clip"
	"github.com/dshills/sheetstorm/internal/renderer/core"
	"github.com/dshills/sheetstorm/internal/renderer/statusline"
	"github.com/dshills/sheetstorm/internal/renderer/style"
	"github.com/dshills/sheetstorm/internal/renderer/viewport"
	"github.com/dshills/sheetstorm/internal/sheet"
)

func displaySettings(o config.Options) column.Display {
	return column.Display{
		None:       o.DispNone,
		ErrorVal:   o.DispErrorVal,
		DateFormat: o.DateFormat,
		FloatChars: o.FloatChars,
		NullFilter: o.NullFilter,
		Encoding:   o.Encoding,
	}
}

func themeSettings(o config.Options) sheet.Theme {
	return sheet.Theme{
		Default:     o.ColorDefault,
		DefaultHdr:  o.ColorDefaultHdr,
		CurrentHdr:  o.ColorCurrentHdr,
		CurrentCol:  o.ColorCurrentCol,
		CurrentRow:  o.ColorCurrentRow,
		KeyCol:      o.ColorKeyCol,
		SelectedRow: o.ColorSelectedRow,
	}
}

func viewportSettings(o config.Options) viewport.Options {
	return viewport.Options{
		DefaultWidth: o.DefaultWidth,
		ColumnSep:    o.DispColumnSep,
		MoreLeft:     o.DispMoreLeft,
		MoreRight:    o.DispMoreRight,
	}
}

func colorStyle(colors string) core.Style {
	return style.NewAttr().Update(colors, 0).Style
}

func rendererSettings(o config.Options) renderer.Options {
	cl := clip.Options{
		Truncator:  o.DispTruncator,
		OddSpace:   o.DispOddSpace,
		AmbigWidth: o.DispAmbigWidth,
	}
	return renderer.Options{
		ColumnSep:      o.DispColumnSep,
		KeyColSep:      o.DispKeyColSep,
		MoreLeft:       o.DispMoreLeft,
		MoreRight:      o.DispMoreRight,
		ColumnFill:     o.DispColumnFill,
		FormatExc:      o.DispFormatExc,
		GetterExc:      o.DispGetterExc,
		ColorColumnSep: o.ColorColumnSep,
		ColorFormatExc: o.ColorFormatExc,
		ColorGetterExc: o.ColorGetterExc,
		Clip:           cl,
		Status: statusline.Options{
			Format:    o.DispStatusFmt,
			Sep:       o.DispStatusSep,
			EditFill:  o.DispEditFill,
			Style:     colorStyle(o.ColorStatus),
			EditStyle: colorStyle(o.ColorEditCell),
			Clip:      cl,
		},
	}
}

// applyOptions pushes o into every subsystem that caches settings. It runs
// at startup and after each option change.
func (app *Application) applyOptions(o config.Options) {
	column.Configure(displaySettings(o))
	sheet.ConfigureTheme(themeSettings(o))
	app.vp.SetOptions(viewportSettings(o))
	app.dispatcher.SetDebug(o.Debug)
	app.tasks.SetDebug(o.Debug)

	app.mu.Lock()
	r := app.renderer
	app.mu.Unlock()
	if r != nil {
		r.SetOptions(rendererSettings(o))
	}
	app.logger.Debug("options applied (debug=%v readonly=%v)", o.Debug, o.ReadOnly)
}
