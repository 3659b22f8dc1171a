// Package flows holds the controllers behind each screen. Every controller
// owns one explicit step type with a transition table, guards its state
// with a mutex and allows a single request in flight at a time.
package flows

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"cedarclub/client"
	"cedarclub/models"
)

var (
	ErrIllegalTransition = errors.New("illegal transition")
	ErrInFlight          = errors.New("a request is already in flight")
	ErrNoMembership      = errors.New("session has no membership")
	ErrNotLoggedIn       = errors.New("no active session")
)

// ValidationError is raised before any request when user input is
// incomplete or invalid.
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %v", e.Field, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func invalid(field string, err error) error {
	return &ValidationError{Field: field, Err: err}
}

// Message returns the server's error text when err carries one, otherwise
// fallback.
func Message(err error, fallback string) string {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

// SessionStore is the part of the session the flows read and write.
type SessionStore interface {
	User() (models.User, bool)
	Login(ctx context.Context, user models.User, token string) error
	Logout(ctx context.Context) error
}

// Confirmer asks the user a yes/no question and blocks for the answer.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) bool
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(ctx context.Context, prompt string) bool

func (f ConfirmFunc) Confirm(ctx context.Context, prompt string) bool { return f(ctx, prompt) }

// transitions maps an action to the steps it may be taken from.
type transitions[S comparable] map[string][]S

func (t transitions[S]) valid(action string, from S) bool {
	for _, s := range t[action] {
		if s == from {
			return true
		}
	}
	return false
}

// wizard is the state shared by every step-based controller.
type wizard[S comparable] struct {
	mu    sync.Mutex
	step  S
	table transitions[S]
	busy  bool
	err   error
	msg   string
}

// Step returns the current step.
func (w *wizard[S]) Step() S {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.step
}

// Busy reports whether a request is in flight.
func (w *wizard[S]) Busy() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.busy
}

// Err returns the error of the last failed action, if any.
func (w *wizard[S]) Err() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.err
}

// ErrorMessage is the text to show for Err.
func (w *wizard[S]) ErrorMessage() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.msg
}

// Caller holds mu for every method below.

func (w *wizard[S]) check(action string) error {
	if !w.table.valid(action, w.step) {
		return fmt.Errorf("%w: %s from %v", ErrIllegalTransition, action, w.step)
	}
	return nil
}

func (w *wizard[S]) move(action string, to S) error {
	if err := w.check(action); err != nil {
		return err
	}
	w.step = to
	return nil
}

func (w *wizard[S]) acquire(action string) error {
	if w.busy {
		return ErrInFlight
	}
	if err := w.check(action); err != nil {
		return err
	}
	w.busy = true
	w.clearErr()
	return nil
}

func (w *wizard[S]) fail(err error, fallback string) {
	w.err = err
	w.msg = Message(err, fallback)
}

func (w *wizard[S]) clearErr() {
	w.err = nil
	w.msg = ""
}

// digits keeps the ASCII digits of s, up to limit characters.
func digits(s string, limit int) string {
	out := make([]byte, 0, limit)
	for i := 0; i < len(s) && len(out) < limit; i++ {
		if s[i] >= '0' && s[i] <= '9' {
			out = append(out, s[i])
		}
	}
	return string(out)
}
