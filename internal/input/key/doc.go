// Package key names keystrokes the way command tables refer to them.
//
// Key names come in three forms:
//
//   - Printable characters are their own name: "j", "G", "/", " ".
//   - Control chords are written with a caret: "^R", "^J" (Enter), "^[" (Escape).
//   - Other special keys use curses-style names: "KEY_LEFT", "KEY_NPAGE",
//     "KEY_F(1)", "KEY_RESIZE".
//
// Name converts a backend event into its key name and Event performs the
// reverse, which lets tests and macros feed named keys into a backend.
package key
