// Package selection provides handlers that add rows to or remove rows from
// the selection of the current sheet.
//
// Commands over a single row act at the cursor and advance it. Commands
// that scan the whole sheet run as background tasks on the sheet and
// report the number of rows affected when they finish.
package selection
