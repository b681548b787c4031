package dispatcher

// Command identifies a command. The set is closed; every value has exactly
// one handler.
type Command uint16

// Commands.
const (
	CmdNone Command = iota

	// Sheet stack
	CmdQuitSheet
	CmdQuitAll
	CmdSwapSheets
	CmdPushSelected
	CmdPushCopy
	CmdPushSource
	CmdSheetsSheet
	CmdColumnsSheet
	CmdOptionsSheet
	CmdHelp
	CmdStatusHistory
	CmdLastError
	CmdAllErrors
	CmdViewCell
	CmdFreq
	CmdJumpToSheet
	CmdEditOption
	CmdPushBin
	CmdSelectBinSources
	CmdOpenTable

	// Cursor
	CmdCursorLeft
	CmdCursorDown
	CmdCursorUp
	CmdCursorRight
	CmdPageDown
	CmdPageUp
	CmdLeftmost
	CmdTop
	CmdBottom
	CmdRightmost
	CmdPageLeft
	CmdPageRight
	CmdPrevValue
	CmdNextValue
	CmdPrevSelected
	CmdNextSelected

	// Display
	CmdRedraw
	CmdSheetInfo
	CmdVersion
	CmdToggleDebug

	// Columns
	CmdToggleWidth
	CmdFitWidths
	CmdHideColumn
	CmdToggleKey
	CmdTypeString
	CmdTypeDate
	CmdTypeInt
	CmdTypeCurrency
	CmdTypeFloat
	CmdTypeAny
	CmdRenameColumn
	CmdSetAggregator
	CmdMoveColumnLeft
	CmdMoveColumnRight
	CmdCleanNames
	CmdCopyColumnToSource
	CmdAddExpr

	// Sorting
	CmdSortAsc
	CmdSortDesc
	CmdSortKeysAsc
	CmdSortKeysDesc

	// Search
	CmdSearchForward
	CmdSearchBackward
	CmdSearchNext
	CmdSearchPrev
	CmdSearchVisibleForward
	CmdSearchVisibleBackward
	CmdSearchColumnName

	// Selection
	CmdToggleRow
	CmdSelectRow
	CmdUnselectRow
	CmdSelectRegex
	CmdUnselectRegex
	CmdSelectRegexVisible
	CmdUnselectRegexVisible
	CmdToggleAll
	CmdSelectAll
	CmdUnselectAll
	CmdSelectEqualColumn
	CmdSelectEqualRow
	CmdSelectEqualSelected

	// Editing
	CmdEditCell
	CmdEditSelected
	CmdSetExprSelected
	CmdDeleteRow
	CmdDeleteSelected
	CmdYank

	// Tasks
	CmdReload
	CmdReloadEvery
	CmdCancelTask
	CmdCancelAllTasks

	numCommands
)

var commandNames = [numCommands]string{
	CmdNone:             "none",
	CmdQuitSheet:        "quit-sheet",
	CmdQuitAll:          "quit-all",
	CmdSwapSheets:       "swap-sheets",
	CmdPushSelected:     "push-selected",
	CmdPushCopy:         "push-copy",
	CmdPushSource:       "push-source",
	CmdSheetsSheet:      "sheets-sheet",
	CmdColumnsSheet:     "columns-sheet",
	CmdOptionsSheet:     "options-sheet",
	CmdHelp:             "help",
	CmdStatusHistory:    "status-history",
	CmdLastError:        "last-error",
	CmdAllErrors:        "all-errors",
	CmdViewCell:         "view-cell",
	CmdFreq:             "frequency-table",
	CmdJumpToSheet:      "jump-to-sheet",
	CmdEditOption:       "edit-option",
	CmdPushBin:          "push-bin",
	CmdSelectBinSources: "select-bin-sources",
	CmdOpenTable:        "open-table",

	CmdCursorLeft:   "cursor-left",
	CmdCursorDown:   "cursor-down",
	CmdCursorUp:     "cursor-up",
	CmdCursorRight:  "cursor-right",
	CmdPageDown:     "page-down",
	CmdPageUp:       "page-up",
	CmdLeftmost:     "go-leftmost",
	CmdTop:          "go-top",
	CmdBottom:       "go-bottom",
	CmdRightmost:    "go-rightmost",
	CmdPageLeft:     "page-left",
	CmdPageRight:    "page-right",
	CmdPrevValue:    "prev-value",
	CmdNextValue:    "next-value",
	CmdPrevSelected: "prev-selected",
	CmdNextSelected: "next-selected",

	CmdRedraw:      "redraw",
	CmdSheetInfo:   "sheet-info",
	CmdVersion:     "version",
	CmdToggleDebug: "toggle-debug",

	CmdToggleWidth:        "toggle-width",
	CmdFitWidths:          "fit-widths",
	CmdHideColumn:         "hide-column",
	CmdToggleKey:          "toggle-key",
	CmdTypeString:         "type-string",
	CmdTypeDate:           "type-date",
	CmdTypeInt:            "type-int",
	CmdTypeCurrency:       "type-currency",
	CmdTypeFloat:          "type-float",
	CmdTypeAny:            "type-any",
	CmdRenameColumn:       "rename-column",
	CmdSetAggregator:      "set-aggregator",
	CmdMoveColumnLeft:     "move-column-left",
	CmdMoveColumnRight:    "move-column-right",
	CmdCleanNames:         "clean-names",
	CmdCopyColumnToSource: "copy-column-to-source",
	CmdAddExpr:            "add-expr-column",

	CmdSortAsc:      "sort-asc",
	CmdSortDesc:     "sort-desc",
	CmdSortKeysAsc:  "sort-keys-asc",
	CmdSortKeysDesc: "sort-keys-desc",

	CmdSearchForward:         "search-forward",
	CmdSearchBackward:        "search-backward",
	CmdSearchNext:            "search-next",
	CmdSearchPrev:            "search-prev",
	CmdSearchVisibleForward:  "search-visible-forward",
	CmdSearchVisibleBackward: "search-visible-backward",
	CmdSearchColumnName:      "search-column-name",

	CmdToggleRow:            "toggle-row",
	CmdSelectRow:            "select-row",
	CmdUnselectRow:          "unselect-row",
	CmdSelectRegex:          "select-regex",
	CmdUnselectRegex:        "unselect-regex",
	CmdSelectRegexVisible:   "select-regex-visible",
	CmdUnselectRegexVisible: "unselect-regex-visible",
	CmdToggleAll:            "toggle-all",
	CmdSelectAll:            "select-all",
	CmdUnselectAll:          "unselect-all",
	CmdSelectEqualColumn:    "select-equal-column",
	CmdSelectEqualRow:       "select-equal-row",
	CmdSelectEqualSelected:  "select-equal-selected",

	CmdEditCell:        "edit-cell",
	CmdEditSelected:    "edit-selected",
	CmdSetExprSelected: "set-expr-selected",
	CmdDeleteRow:       "delete-row",
	CmdDeleteSelected:  "delete-selected",
	CmdYank:            "yank-cell",

	CmdReload:         "reload",
	CmdReloadEvery:    "reload-every",
	CmdCancelTask:     "cancel-task",
	CmdCancelAllTasks: "cancel-all-tasks",
}

var commandsByName = func() map[string]Command {
	m := make(map[string]Command, numCommands)
	for c, name := range commandNames {
		m[name] = Command(c)
	}
	return m
}()

// String returns the command name.
func (c Command) String() string {
	if c < numCommands && commandNames[c] != "" {
		return commandNames[c]
	}
	return "unknown"
}

// Valid reports whether c names a command.
func (c Command) Valid() bool {
	return c > CmdNone && c < numCommands
}

// LookupCommand returns the command with the given name.
func LookupCommand(name string) (Command, bool) {
	c, ok := commandsByName[name]
	return c, ok && c != CmdNone
}

// Commands returns every command in declaration order.
func Commands() []Command {
	out := make([]Command, 0, numCommands-1)
	for c := CmdNone + 1; c < numCommands; c++ {
		out = append(out, c)
	}
	return out
}
