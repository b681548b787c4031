// Package source opens data files as sheets.
//
// Open picks a format from the file extension (or Options.Filetype) and
// returns an unloaded sheet whose loader parses the file; reloading the
// sheet reads the file again. Supported formats are delimited text (csv,
// tsv), JSON and JSON Lines, YAML, SQLite databases and plain text.
package source
