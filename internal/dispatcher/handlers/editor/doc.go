// Package editor provides handlers that change cell values and remove
// rows.
//
// Edits respect the readonly option and column setters. After a cell edit
// the keystrokes in the cmd_after_edit option run on the same sheet, so
// the default "j" moves to the next row.
package editor
