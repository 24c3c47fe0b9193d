package service

import "time"

// Clock supplies the current time to services. Tests pass a fixed clock.
type Clock func() time.Time

func SystemClock() time.Time {
	return time.Now().UTC()
}

func clockOrSystem(c Clock) Clock {
	if c == nil {
		return SystemClock
	}
	return c
}
