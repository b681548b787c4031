package editor

// SetClipboard replaces the clipboard writer until the returned function
// is called.
func SetClipboard(fn func(string) error) (restore func()) {
	old := writeClipboard
	writeClipboard = fn
	return func() { writeClipboard = old }
}
