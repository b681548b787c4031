// Package sheets builds the built-in sheets: text viewers, the columns,
// sheets, options and help sheets, and frequency tables.
//
// Each constructor returns an unloaded *sheet.Sheet whose loader fills the
// row list; the application loads a sheet the first time it is shown.
package sheets
