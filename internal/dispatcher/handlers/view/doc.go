// Package view provides display and diagnostic handlers: redraw, sheet
// info, version and the debug switch.
package view
