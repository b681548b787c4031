// Package columns provides handlers that change the cursor column or the
// column list: widths, key status, types, names, aggregators, order,
// expression columns and sorting.
package columns
