/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package charades

import (
	"sync"
	"time"

	"github.com/stretchr/testify/mock"
)

// --- Notifier ---

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) SendTo(conn ConnID, event string, payload any) {
	m.Called(conn, event, payload)
}

func (m *MockNotifier) Broadcast(code string, event string, payload any) {
	m.Called(code, event, payload)
}

func (m *MockNotifier) JoinChannel(conn ConnID, code string) {
	m.Called(conn, code)
}

func (m *MockNotifier) LeaveChannel(conn ConnID, code string) {
	m.Called(conn, code)
}

// --- recording Notifier ---

// sent is one outbound event. Exactly one of To and Room is set.
type sent struct {
	To      ConnID
	Room    string
	Event   string
	Payload any
}

type recorder struct {
	mu       sync.Mutex
	sent     []sent
	channels map[string]map[ConnID]bool
}

func newRecorder() *recorder {
	return &recorder{channels: make(map[string]map[ConnID]bool)}
}

func (r *recorder) SendTo(conn ConnID, event string, payload any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, sent{To: conn, Event: event, Payload: payload})
}

func (r *recorder) Broadcast(code string, event string, payload any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, sent{Room: code, Event: event, Payload: payload})
}

func (r *recorder) JoinChannel(conn ConnID, code string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.channels[code] == nil {
		r.channels[code] = make(map[ConnID]bool)
	}
	r.channels[code][conn] = true
}

func (r *recorder) LeaveChannel(conn ConnID, code string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.channels[code], conn)
	if len(r.channels[code]) == 0 {
		delete(r.channels, code)
	}
}

// take returns and clears everything sent so far.
func (r *recorder) take() []sent {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.sent
	r.sent = nil
	return out
}

func (r *recorder) members(code string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.channels[code])
}

// --- Scheduler ---

type fakeTask struct {
	delay   time.Duration
	f       func()
	fired   bool
	stopped bool
}

// fakeScheduler never fires on its own; tests call fire.
type fakeScheduler struct {
	tasks []*fakeTask
}

func (s *fakeScheduler) AfterFunc(d time.Duration, f func()) func() bool {
	t := &fakeTask{delay: d, f: f}
	s.tasks = append(s.tasks, t)
	return func() bool {
		if t.fired || t.stopped {
			return false
		}
		t.stopped = true
		return true
	}
}

func (s *fakeScheduler) pending() []*fakeTask {
	var out []*fakeTask
	for _, t := range s.tasks {
		if !t.fired && !t.stopped {
			out = append(out, t)
		}
	}
	return out
}

// fire runs every pending task and reports how many ran.
func (s *fakeScheduler) fire() int {
	tasks := s.pending()
	for _, t := range tasks {
		t.fired = true
		t.f()
	}
	return len(tasks)
}

// fireStale runs tasks that were stopped, as a timer racing its Stop would.
func (s *fakeScheduler) fireStale() {
	for _, t := range s.tasks {
		if t.stopped {
			t.f()
		}
	}
}

// --- clock ---

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }
