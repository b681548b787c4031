// Package expr evaluates Lua expressions over sheet rows.
//
// An expression is compiled once into a function prototype shared by a pool
// of Lua states; each evaluation runs in a fresh environment whose unknown
// globals resolve to the values of same-named columns in the row being
// evaluated. Only the base, table, string and math libraries are opened.
//
//	sh.AddColumn(expr.NewColumn(sh, "price * qty"), idx)
package expr
