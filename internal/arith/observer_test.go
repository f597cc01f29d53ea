package arith

import (
	"bytes"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"
)

// mockObserver records every update it receives.
type mockObserver struct {
	mu      sync.Mutex
	updates []ProgressUpdate
	calls   atomic.Int64
}

func newMockObserver() *mockObserver {
	return &mockObserver{}
}

func (m *mockObserver) Update(operator string, progress float64) {
	m.calls.Add(1)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.updates = append(m.updates, ProgressUpdate{Operator: operator, Value: progress})
}

func (m *mockObserver) last() (ProgressUpdate, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.updates) == 0 {
		return ProgressUpdate{}, false
	}
	return m.updates[len(m.updates)-1], true
}

// ─────────────────────────────────────────────────────────────────────────────
// BuildSubject Tests
// ─────────────────────────────────────────────────────────────────────────────

// TestNewBuildSubject verifies subject construction.
func TestNewBuildSubject(t *testing.T) {
	t.Parallel()

	subject := NewBuildSubject("adder")
	if subject == nil {
		t.Fatal("NewBuildSubject returned nil")
	}
	if subject.ObserverCount() != 0 {
		t.Errorf("new subject should have 0 observers, got %d", subject.ObserverCount())
	}
}

// TestBuildSubject_Register verifies observer registration.
func TestBuildSubject_Register(t *testing.T) {
	t.Parallel()

	subject := NewBuildSubject("adder")

	// Register nil should be no-op
	subject.Register(nil)
	if subject.ObserverCount() != 0 {
		t.Errorf("registering nil should not add observer, got %d", subject.ObserverCount())
	}

	subject.Register(newMockObserver())
	if subject.ObserverCount() != 1 {
		t.Errorf("expected 1 observer, got %d", subject.ObserverCount())
	}

	subject.Register(newMockObserver())
	if subject.ObserverCount() != 2 {
		t.Errorf("expected 2 observers, got %d", subject.ObserverCount())
	}
}

// TestBuildSubject_Unregister verifies observer removal.
func TestBuildSubject_Unregister(t *testing.T) {
	t.Parallel()

	subject := NewBuildSubject("adder")
	observer1 := newMockObserver()
	observer2 := newMockObserver()

	subject.Register(observer1)
	subject.Register(observer2)

	// Unregister nil should be no-op
	subject.Unregister(nil)
	if subject.ObserverCount() != 2 {
		t.Errorf("unregistering nil should not remove observer, got %d", subject.ObserverCount())
	}

	subject.Unregister(observer1)
	if subject.ObserverCount() != 1 {
		t.Errorf("expected 1 observer after unregister, got %d", subject.ObserverCount())
	}

	// Unregistering an unknown observer is a no-op
	subject.Unregister(observer1)
	if subject.ObserverCount() != 1 {
		t.Errorf("unregistering twice should be no-op, got %d", subject.ObserverCount())
	}
}

// TestBuildSubject_Notify verifies updates carry the subject's operator.
func TestBuildSubject_Notify(t *testing.T) {
	t.Parallel()

	subject := NewBuildSubject("multiplier")
	observer := newMockObserver()
	subject.Register(observer)

	subject.Notify(0.25)
	subject.Notify(0.5)

	last, ok := observer.last()
	if !ok {
		t.Fatal("observer received no updates")
	}
	if last.Operator != "multiplier" {
		t.Errorf("update operator = %q, want multiplier", last.Operator)
	}
	if last.Value != 0.5 {
		t.Errorf("update value = %v, want 0.5", last.Value)
	}
	if observer.calls.Load() != 2 {
		t.Errorf("update count = %d, want 2", observer.calls.Load())
	}
}

// TestBuildSubject_AsReporter verifies the reporter adapter, including the
// nil-subject case, which builders rely on to report unconditionally.
func TestBuildSubject_AsReporter(t *testing.T) {
	t.Parallel()

	t.Run("NilSubjectDiscards", func(t *testing.T) {
		t.Parallel()
		var subject *BuildSubject
		reporter := subject.AsReporter()
		// Must not panic.
		reporter(0.5)
		reporter(1.0)
	})

	t.Run("ForwardsToObservers", func(t *testing.T) {
		t.Parallel()
		subject := NewBuildSubject("adder")
		observer := newMockObserver()
		subject.Register(observer)

		subject.AsReporter()(0.75)

		last, ok := observer.last()
		if !ok {
			t.Fatal("observer received no updates")
		}
		if last.Value != 0.75 {
			t.Errorf("update value = %v, want 0.75", last.Value)
		}
	})
}

// TestBuildSubject_ConcurrentNotify verifies the subject under concurrent
// registration and notification.
func TestBuildSubject_ConcurrentNotify(t *testing.T) {
	t.Parallel()

	subject := NewBuildSubject("multiplier")
	observer := newMockObserver()
	subject.Register(observer)

	var wg sync.WaitGroup
	const goroutines = 16
	const notifications = 50

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < notifications; j++ {
				subject.Notify(float64(j) / notifications)
			}
		}()
	}
	wg.Wait()

	if got := observer.calls.Load(); got != goroutines*notifications {
		t.Errorf("update count = %d, want %d", got, goroutines*notifications)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Concrete Observer Tests
// ─────────────────────────────────────────────────────────────────────────────

// TestChannelObserver verifies channel delivery and overflow behavior.
func TestChannelObserver(t *testing.T) {
	t.Parallel()

	t.Run("DeliversUpdates", func(t *testing.T) {
		t.Parallel()
		ch := make(chan ProgressUpdate, 4)
		observer := NewChannelObserver(ch)

		observer.Update("adder", 0.5)

		select {
		case u := <-ch:
			if u.Operator != "adder" || u.Value != 0.5 {
				t.Errorf("received %+v, want {adder 0.5}", u)
			}
		default:
			t.Fatal("no update delivered")
		}
	})

	t.Run("ClampsAboveOne", func(t *testing.T) {
		t.Parallel()
		ch := make(chan ProgressUpdate, 1)
		NewChannelObserver(ch).Update("adder", 1.5)
		if u := <-ch; u.Value != 1.0 {
			t.Errorf("value = %v, want clamped to 1.0", u.Value)
		}
	})

	t.Run("FullChannelDropsWithoutBlocking", func(t *testing.T) {
		t.Parallel()
		ch := make(chan ProgressUpdate, 1)
		observer := NewChannelObserver(ch)
		observer.Update("adder", 0.1)
		// Second update must not block even though nothing drains ch.
		observer.Update("adder", 0.2)
		if u := <-ch; u.Value != 0.1 {
			t.Errorf("first buffered value = %v, want 0.1", u.Value)
		}
	})

	t.Run("TerminalUpdateEvictsOldest", func(t *testing.T) {
		t.Parallel()
		ch := make(chan ProgressUpdate, 1)
		observer := NewChannelObserver(ch)
		observer.Update("multiplier", 0.9)
		// Nothing drains ch, yet completion must still come through.
		observer.Update("multiplier", 1.0)
		if u := <-ch; u.Value != 1.0 {
			t.Errorf("buffered value = %v, want terminal 1.0", u.Value)
		}
	})

	t.Run("NilChannelDiscards", func(t *testing.T) {
		t.Parallel()
		NewChannelObserver(nil).Update("adder", 0.5)
	})
}

// TestLoggingObserver verifies threshold throttling.
func TestLoggingObserver(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)
	observer := NewLoggingObserver(logger, 0.5)

	observer.Update("multiplier", 0.1) // first nonzero progress: logged
	before := buf.Len()
	observer.Update("multiplier", 0.2) // below threshold: suppressed
	if buf.Len() != before {
		t.Error("update below threshold should not log")
	}
	observer.Update("multiplier", 0.7) // 0.6 change: logged
	if buf.Len() == before {
		t.Error("update above threshold should log")
	}
	after := buf.Len()
	observer.Update("multiplier", 1.0) // completion always logs
	if buf.Len() == after {
		t.Error("completion should log")
	}
}

// TestNoOpObserver verifies the null object does nothing, quietly.
func TestNoOpObserver(t *testing.T) {
	t.Parallel()

	observer := NewNoOpObserver()
	observer.Update("adder", 0.5)
	observer.Update("adder", 1.0)
}
