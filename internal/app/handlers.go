package app

import (
	"github.com/dshills/sheetstorm/internal/dispatcher"
	columnshandler "github.com/dshills/sheetstorm/internal/dispatcher/handlers/columns"
	cursorhandler "github.com/dshills/sheetstorm/internal/dispatcher/handlers/cursor"
	editorhandler "github.com/dshills/sheetstorm/internal/dispatcher/handlers/editor"
	searchhandler "github.com/dshills/sheetstorm/internal/dispatcher/handlers/search"
	selectionhandler "github.com/dshills/sheetstorm/internal/dispatcher/handlers/selection"
	sheetstackhandler "github.com/dshills/sheetstorm/internal/dispatcher/handlers/sheetstack"
	taskshandler "github.com/dshills/sheetstorm/internal/dispatcher/handlers/tasks"
	viewhandler "github.com/dshills/sheetstorm/internal/dispatcher/handlers/view"
	"github.com/dshills/sheetstorm/internal/input/keymap"
)

// RegisterHandlers registers every command handler with d. Handlers that
// run keystrokes or list bindings use km.
func RegisterHandlers(d *dispatcher.Dispatcher, km *keymap.Keymap) {
	cursorhandler.NewHandler().Register(d)
	columnshandler.NewHandler().Register(d)
	selectionhandler.NewHandler().Register(d)
	searchhandler.NewHandler().Register(d)
	editorhandler.NewHandler(km).Register(d)
	sheetstackhandler.NewHandler(km).Register(d)
	viewhandler.NewHandler().Register(d)
	taskshandler.NewHandler().Register(d)
}
