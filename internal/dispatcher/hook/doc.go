// Package hook provides the fixed extension points observed around command
// dispatch, cell edits and drawing.
//
// # Points
//
//   - PreAction: before a command handler runs
//   - PostAction: after it returns, with the result
//   - PreEdit: before a cell value is written
//   - PostEdit: after a cell value is written
//   - PreDraw: before a sheet is drawn
//
// Hooks are observers. They run synchronously in registration order, a
// panicking hook is skipped, and none of them can cancel dispatch.
//
// # Usage
//
//	var points hook.Points
//	points.PreAction.Add(hook.LogActions(logger))
//	points.PostEdit.Add(func(ctx *execctx.Context, col *column.Column, r *row.Row) {
//	    // ...
//	})
package hook
