// Package dispatcher maps commands to typed handlers and runs them.
//
// Every command is a value of the closed Command enum. A handler receives an
// *execctx.Context carrying the sheet the command was issued on, its cursor
// and the application controller, and returns a handler.Result:
//
//	d := dispatcher.New(dispatcher.DefaultConfig())
//	d.Register(dispatcher.CmdCursorDown, func(ctx *execctx.Context) handler.Result {
//	    ctx.Sheet().MoveCursor(1, 0)
//	    return handler.Success()
//	})
//	result := d.Dispatch(execctx.New(ctx, app, sh, "j"), dispatcher.CmdCursorDown)
//
// # Failures
//
// A result with StatusAborted is reported as a status message only. A
// result with StatusError, or a handler panic, is appended to the bounded
// error history (the last ten failures) and reported as a status message.
// In debug mode panics are not recovered, and the caller is expected to stop
// on an error result.
//
// # Hooks
//
// Hooks() exposes the fixed extension points of package hook. PreAction and
// PostAction run around every dispatch.
package dispatcher
