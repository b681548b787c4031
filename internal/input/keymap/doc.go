// Package keymap maps keystroke sequences to commands.
//
// A Keymap holds a global table and optional per-sheet-kind tables that
// shadow it. Lookup checks the sheet's kind table first and the global table
// second.
//
// Sequences are lists of key names as produced by package key. Multi-key
// sequences start with one of the reserved prefix keys: "g" (global
// modifier) and "z" (scroll modifier).
//
//	km := keymap.Default()
//	b, ok := km.Lookup(sheet.KindTable, keymap.Seq("g", "j"))
//
// A Sequencer accumulates keys from the input loop:
//
//	seq := keymap.NewSequencer(km)
//	b, state := seq.Feed(sh.Kind(), key.Name(ev))
//	switch state {
//	case keymap.Matched:
//	    dispatch b.Command
//	case keymap.Unbound:
//	    report "no command for ..."
//	}
package keymap
