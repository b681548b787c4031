// Package sheetstack provides handlers that push sheets onto or pop them
// off the sheet stack.
//
// Pushed sheets that have a loader are populated by the input loop the
// first time they reach the top of the stack; copies and bin sheets are
// pushed already loaded.
package sheetstack
