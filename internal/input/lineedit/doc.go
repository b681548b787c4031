// Package lineedit implements the single-line editor used for prompts and
// cell edits.
//
// An Editor consumes key names one at a time (see package key) and reports
// whether the edit continues, was accepted or was aborted. Editing keys:
//
//	Home ^A / End ^E      start / end of line
//	Left ^B / Right ^F    move one character
//	Backspace ^H          delete before the cursor
//	Delete ^D             delete under the cursor
//	^K / ^U               delete to end / start of line
//	^R                    restore the initial value
//	^T                    swap the two characters before the cursor
//	^V                    insert the next key literally
//	Insert                toggle insert and overwrite
//	Up / Down             walk the history for this input kind
//	Enter                 accept
//	Esc ^C                abort
//
// The first printable key replaces a prefilled value instead of extending it.
package lineedit
