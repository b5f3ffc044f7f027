/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package charades

import "time"

// Scheduler runs f once after d. The returned stop func cancels it if it has
// not fired yet.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) (stop func() bool)
}

type timeScheduler struct{}

func (timeScheduler) AfterFunc(d time.Duration, f func()) func() bool {
	return time.AfterFunc(d, f).Stop
}

// TimeScheduler schedules on real timers.
func TimeScheduler() Scheduler {
	return timeScheduler{}
}
