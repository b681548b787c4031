// Package search provides regex search handlers.
//
// The last pattern, scope and direction are kept by the handler so that
// search-next and search-prev repeat the most recent search on whichever
// sheet is current.
package search
