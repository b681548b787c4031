// Package cursor provides handlers for cursor movement.
//
// Moves adjust the sheet's cursor coordinates only; the input loop clamps
// the cursor and scrolls the viewport after every command.
//
//   - cursor-left/down/up/right (h j k l): move one cell
//   - page-down, page-up (^F ^B): move one screen of rows
//   - go-top, go-bottom, go-leftmost, go-rightmost (gk gj gh gl)
//   - page-left, page-right (zh zl): move one screen of columns
//   - prev-value, next-value (< >): move to the next different value
//   - prev-selected, next-selected ({ }): move to the next selected row
package cursor
