// Package tasks provides handlers that start or cancel background tasks:
// reloading a sheet once or on an interval, and cancelling the sheet's
// task or every task.
package tasks
