package services

import "time"

// Clock supplies the current time. Visibility depends on the wall clock,
// so it is injected to let tests pin "now" to a fixed instant.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock returns a Clock backed by the wall clock.
func SystemClock() Clock { return systemClock{} }
