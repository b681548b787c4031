package keymap

import (
	"github.com/dshills/sheetstorm/internal/dispatcher"
	"github.com/dshills/sheetstorm/internal/input/key"
	"github.com/dshills/sheetstorm/internal/sheet"
)

type entry struct {
	keys []string
	cmd  dispatcher.Command
	help string
}

func s(keys ...string) []string { return keys }

var globalBindings = []entry{
	{s("q"), dispatcher.CmdQuitSheet, "quit this sheet"},
	{s("g", "q"), dispatcher.CmdQuitAll, "quit all sheets (clean exit)"},

	{s("h"), dispatcher.CmdCursorLeft, "move one column left"},
	{s(key.Left), dispatcher.CmdCursorLeft, "move one column left"},
	{s("j"), dispatcher.CmdCursorDown, "move one row down"},
	{s(key.Down), dispatcher.CmdCursorDown, "move one row down"},
	{s("k"), dispatcher.CmdCursorUp, "move one row up"},
	{s(key.Up), dispatcher.CmdCursorUp, "move one row up"},
	{s("l"), dispatcher.CmdCursorRight, "move one column right"},
	{s(key.Right), dispatcher.CmdCursorRight, "move one column right"},
	{s("^F"), dispatcher.CmdPageDown, "scroll one page down"},
	{s(key.PageDown), dispatcher.CmdPageDown, "scroll one page down"},
	{s("^B"), dispatcher.CmdPageUp, "scroll one page up"},
	{s(key.PageUp), dispatcher.CmdPageUp, "scroll one page up"},
	{s("g", "h"), dispatcher.CmdLeftmost, "move all the way to the left"},
	{s("g", "k"), dispatcher.CmdTop, "move all the way to the top"},
	{s("g", "g"), dispatcher.CmdTop, "move all the way to the top"},
	{s(key.Home), dispatcher.CmdTop, "move all the way to the top"},
	{s("g", "j"), dispatcher.CmdBottom, "move all the way to the bottom"},
	{s("G"), dispatcher.CmdBottom, "move all the way to the bottom"},
	{s(key.End), dispatcher.CmdBottom, "move all the way to the bottom"},
	{s("g", "l"), dispatcher.CmdRightmost, "move all the way to the right"},
	{s("z", "h"), dispatcher.CmdPageLeft, "scroll one screen of columns left"},
	{s("z", "l"), dispatcher.CmdPageRight, "scroll one screen of columns right"},
	{s("<"), dispatcher.CmdPrevValue, "move up to the previous value in this column"},
	{s(">"), dispatcher.CmdNextValue, "move down to the next value in this column"},
	{s("{"), dispatcher.CmdPrevSelected, "move to the previous selected row"},
	{s("}"), dispatcher.CmdNextSelected, "move to the next selected row"},

	{s("^L"), dispatcher.CmdRedraw, "refresh screen"},
	{s("^G"), dispatcher.CmdSheetInfo, "show info about this sheet"},
	{s("^V"), dispatcher.CmdVersion, "show version information"},
	{s("^P"), dispatcher.CmdStatusHistory, "open status history"},
	{s("^D"), dispatcher.CmdToggleDebug, "toggle debug mode"},
	{s("^E"), dispatcher.CmdLastError, "open stack trace for most recent error"},
	{s("g", "^E"), dispatcher.CmdAllErrors, "open stack traces for recent errors"},
	{s("^^"), dispatcher.CmdSwapSheets, "jump to previous sheet"},

	{s("_"), dispatcher.CmdToggleWidth, "toggle this column width between default and max"},
	{s("g", "_"), dispatcher.CmdFitWidths, "set width of all columns to fit visible values"},
	{s("-"), dispatcher.CmdHideColumn, "hide this column"},
	{s("!"), dispatcher.CmdToggleKey, "toggle this column as a key column"},
	{s("~"), dispatcher.CmdTypeString, "set column type to string"},
	{s("@"), dispatcher.CmdTypeDate, "set column type to date"},
	{s("#"), dispatcher.CmdTypeInt, "set column type to integer"},
	{s("$"), dispatcher.CmdTypeCurrency, "set column type to currency"},
	{s("%"), dispatcher.CmdTypeFloat, "set column type to float"},
	{s("z", "~"), dispatcher.CmdTypeAny, "set column type to anytype"},
	{s("^"), dispatcher.CmdRenameColumn, "rename this column"},
	{s("+"), dispatcher.CmdSetAggregator, "set aggregator for this column"},
	{s("H"), dispatcher.CmdMoveColumnLeft, "move this column one left"},
	{s("L"), dispatcher.CmdMoveColumnRight, "move this column one right"},
	{s("z", "c"), dispatcher.CmdCleanNames, "clean up column names"},
	{s("z", "A"), dispatcher.CmdCopyColumnToSource, "add a copy of this column to the source sheet"},
	{s("="), dispatcher.CmdAddExpr, "add column by expression"},

	{s("["), dispatcher.CmdSortAsc, "sort by this column ascending"},
	{s("]"), dispatcher.CmdSortDesc, "sort by this column descending"},
	{s("g", "["), dispatcher.CmdSortKeysAsc, "sort by all key columns ascending"},
	{s("g", "]"), dispatcher.CmdSortKeysDesc, "sort by all key columns descending"},

	{s("^R"), dispatcher.CmdReload, "reload sheet from source"},
	{s("z", "^R"), dispatcher.CmdReloadEvery, "reload sheet every N seconds"},
	{s("/"), dispatcher.CmdSearchForward, "search this column forward for regex"},
	{s("?"), dispatcher.CmdSearchBackward, "search this column backward for regex"},
	{s("n"), dispatcher.CmdSearchNext, "go to next match"},
	{s("N"), dispatcher.CmdSearchPrev, "go to previous match"},
	{s("g", "/"), dispatcher.CmdSearchVisibleForward, "search visible columns forward for regex"},
	{s("g", "?"), dispatcher.CmdSearchVisibleBackward, "search visible columns backward for regex"},
	{s("c"), dispatcher.CmdSearchColumnName, "move to the next column with name matching regex"},

	{s("e"), dispatcher.CmdEditCell, "edit this cell"},
	{s("g", "e"), dispatcher.CmdEditSelected, "set this column for selected rows"},
	{s("g", "="), dispatcher.CmdSetExprSelected, "set this column for selected rows by expression"},
	{s("d"), dispatcher.CmdDeleteRow, "delete this row"},
	{s("g", "d"), dispatcher.CmdDeleteSelected, "delete all selected rows"},
	{s("Y"), dispatcher.CmdYank, "copy this cell to the clipboard"},

	{s(" "), dispatcher.CmdToggleRow, "toggle selection of this row and advance"},
	{s("s"), dispatcher.CmdSelectRow, "select this row and advance"},
	{s("u"), dispatcher.CmdUnselectRow, "unselect this row and advance"},
	{s("|"), dispatcher.CmdSelectRegex, "select rows by regex matching this column"},
	{s("\\"), dispatcher.CmdUnselectRegex, "unselect rows by regex matching this column"},
	{s("g", "|"), dispatcher.CmdSelectRegexVisible, "select rows by regex matching any visible column"},
	{s("g", "\\"), dispatcher.CmdUnselectRegexVisible, "unselect rows by regex matching any visible column"},
	{s("g", " "), dispatcher.CmdToggleAll, "toggle selection of all rows"},
	{s("g", "s"), dispatcher.CmdSelectAll, "select all rows"},
	{s("g", "u"), dispatcher.CmdUnselectAll, "unselect all rows"},
	{s(","), dispatcher.CmdSelectEqualColumn, "select rows matching this cell in this column"},
	{s("g", ","), dispatcher.CmdSelectEqualRow, "select rows matching this row in all visible columns"},
	{s("z", ","), dispatcher.CmdSelectEqualSelected, "select rows matching a selected row's value in this column"},
	{s("\""), dispatcher.CmdPushSelected, "push duplicate sheet with only selected rows"},
	{s("g", "\""), dispatcher.CmdPushCopy, "push duplicate sheet"},

	{s("V"), dispatcher.CmdViewCell, "view contents of this cell in a new sheet"},
	{s("`"), dispatcher.CmdPushSource, "push source sheet"},
	{s("S"), dispatcher.CmdSheetsSheet, "open the sheets sheet"},
	{s("C"), dispatcher.CmdColumnsSheet, "open the columns sheet"},
	{s("O"), dispatcher.CmdOptionsSheet, "open the options sheet"},
	{s("z", "?"), dispatcher.CmdHelp, "open the help sheet"},
	{s("KEY_F(1)"), dispatcher.CmdHelp, "open the help sheet"},
	{s("F"), dispatcher.CmdFreq, "open frequency table for this column"},

	{s(key.Interrupt), dispatcher.CmdCancelTask, "cancel this sheet's background task"},
	{s("g", key.Interrupt), dispatcher.CmdCancelAllTasks, "cancel all background tasks"},
}

var kindBindings = map[sheet.Kind][]entry{
	sheet.KindSheets: {
		{s(key.Enter), dispatcher.CmdJumpToSheet, "jump to this sheet"},
	},
	sheet.KindOptions: {
		{s(key.Enter), dispatcher.CmdEditOption, "edit this option"},
		{s("e"), dispatcher.CmdEditOption, "edit this option"},
	},
	sheet.KindFreq: {
		{s(key.Enter), dispatcher.CmdPushBin, "push sheet of source rows in this bin"},
		{s("g", key.Enter), dispatcher.CmdSelectBinSources, "select source rows of the selected bins"},
	},
	sheet.KindDB: {
		{s(key.Enter), dispatcher.CmdOpenTable, "open this table"},
	},
}

// Default returns a keymap holding the built-in bindings.
func Default() *Keymap {
	km := New()
	for _, e := range globalBindings {
		km.Bind(e.keys, e.cmd, e.help)
	}
	for kind, entries := range kindBindings {
		for _, e := range entries {
			km.BindKind(kind, e.keys, e.cmd, e.help)
		}
	}
	return km
}
