// Package renderer draws the visible sheet: the header line, one line per
// on-screen row with column separators and cell annotations, and the
// status line.
//
// Layout and scrolling come from the viewport package; colors come from the
// sheet's own rules, so the renderer only decides placement.
//
// Usage:
//
//	term, _ := backend.NewTerminal()
//	vp := viewport.New(term.Size())
//	r := renderer.New(term, vp, renderer.DefaultOptions())
//	r.Draw(renderer.Frame{Sheet: top, Statuses: pending})
package renderer
