// Package arith provides builders for quantum arithmetic circuits.
// This file contains the Observer pattern implementation for build progress.
package arith

import (
	"sync"
)

// ─────────────────────────────────────────────────────────────────────────────
// Observer Pattern Interfaces
// ─────────────────────────────────────────────────────────────────────────────

// ProgressReporter is a function that receives a normalized build progress
// value in [0.0, 1.0]. Builders call it as repeated gate blocks are appended.
type ProgressReporter func(progress float64)

// ProgressUpdate is a single progress event delivered over a channel.
type ProgressUpdate struct {
	// Operator identifies the builder emitting the update.
	Operator string
	// Value is the normalized progress (0.0 to 1.0).
	Value float64
}

// BuildObserver defines the interface for observing build progress events.
// Implementations receive notifications as circuit construction advances,
// enabling decoupled handling of progress updates for UI, logging, metrics, etc.
type BuildObserver interface {
	// Update is called when build progress changes.
	//
	// Parameters:
	//   - operator: The builder identifier (e.g. "multiplier").
	//   - progress: The normalized progress value (0.0 to 1.0)
	Update(operator string, progress float64)
}

// ─────────────────────────────────────────────────────────────────────────────
// Build Subject (Observable)
// ─────────────────────────────────────────────────────────────────────────────

// BuildSubject manages observer registration and notification for build
// progress events. It implements the Subject part of the Observer pattern,
// allowing multiple observers to be notified of progress without tight
// coupling between the builder and its consumers.
//
// BuildSubject is safe for concurrent use.
type BuildSubject struct {
	observers []BuildObserver
	operator  string
	mu        sync.RWMutex
}

// NewBuildSubject creates a new subject for managing build observers.
//
// Parameters:
//   - operator: The builder identifier included in every notification.
//
// Returns:
//   - *BuildSubject: A new, empty subject ready to accept observers.
func NewBuildSubject(operator string) *BuildSubject {
	return &BuildSubject{
		observers: make([]BuildObserver, 0),
		operator:  operator,
	}
}

// Register adds an observer to receive progress updates.
// Observers are notified in the order they are registered.
//
// Parameters:
//   - observer: The observer to add. If nil, this call is a no-op.
func (s *BuildSubject) Register(observer BuildObserver) {
	if observer == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, observer)
}

// Unregister removes an observer from receiving updates.
// If the observer is not found, this call is a no-op.
//
// Parameters:
//   - observer: The observer to remove.
func (s *BuildSubject) Unregister(observer BuildObserver) {
	if observer == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, o := range s.observers {
		if o == observer {
			// Remove observer while preserving order
			s.observers = append(s.observers[:i], s.observers[i+1:]...)
			return
		}
	}
}

// Notify sends a progress update to all registered observers.
// Observers are notified synchronously in registration order.
//
// Parameters:
//   - progress: The normalized progress value (0.0 to 1.0).
func (s *BuildSubject) Notify(progress float64) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, observer := range s.observers {
		observer.Update(s.operator, progress)
	}
}

// ObserverCount returns the number of registered observers.
// This is primarily useful for testing and diagnostics.
//
// Returns:
//   - int: The number of registered observers.
func (s *BuildSubject) ObserverCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.observers)
}

// AsReporter returns a ProgressReporter function that notifies all
// registered observers. A nil subject yields a reporter that discards
// every update, so builders can call it unconditionally.
//
// Returns:
//   - ProgressReporter: A function that can be passed to builders.
func (s *BuildSubject) AsReporter() ProgressReporter {
	if s == nil {
		return func(float64) {}
	}
	return func(progress float64) {
		s.Notify(progress)
	}
}
