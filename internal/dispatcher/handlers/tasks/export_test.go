package tasks

import "time"

// SetUnit sets the duration of one reload-every second.
func (h *Handler) SetUnit(d time.Duration) {
	h.unit = d
}
