// Package flow implements the multi-step wizard state machines and the
// per-user session registry that owns them.
//
// A wizard is a linear, stateful dialogue: each user reply is fed to the
// active wizard's transition function, which validates it, advances the
// state or re-prompts, and produces the next message. At most one wizard is
// active per user; starting a new wizard implicitly cancels and replaces the
// previous session.
package flow

import (
	"context"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"github.com/BTreeMap/FitTrack/internal/models"
)

// Wizard is an active multi-step dialogue for one user.
type Wizard interface {
	// Type identifies the wizard for logging and collision handling.
	Type() models.FlowType

	// Start performs the wizard's entry step and returns the opening prompt.
	Start(ctx context.Context) string

	// HandleInput consumes one user reply and returns the next message.
	// done reports whether the session reached a terminal state.
	HandleInput(ctx context.Context, input string) (reply string, done bool)

	// Cancel discards collected answers and returns the cancellation reply.
	Cancel() string
}

// SessionManager maps user identities to their active wizard.
type SessionManager struct {
	mu       sync.RWMutex
	sessions map[string]Wizard
}

// NewSessionManager creates an empty session registry.
func NewSessionManager() *SessionManager {
	return &SessionManager{sessions: make(map[string]Wizard)}
}

// Begin registers a wizard as the user's active session. Any previous
// session is cancelled and replaced; the replacement is deterministic and
// silent (the new wizard's opening prompt takes over the conversation).
func (s *SessionManager) Begin(userID string, w Wizard) {
	s.mu.Lock()
	prev, had := s.sessions[userID]
	s.sessions[userID] = w
	s.mu.Unlock()
	if had {
		prev.Cancel()
		slog.Debug("SessionManager replaced active session", "user", userID, "previous", prev.Type(), "new", w.Type())
	} else {
		slog.Debug("SessionManager session started", "user", userID, "flow", w.Type())
	}
}

// Active returns the user's active wizard, if any.
func (s *SessionManager) Active(userID string) (Wizard, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	w, ok := s.sessions[userID]
	return w, ok
}

// End removes the user's session after a terminal transition.
func (s *SessionManager) End(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, userID)
}

// Cancel terminates the user's active session, if any, and returns the
// wizard's cancellation reply.
func (s *SessionManager) Cancel(userID string) (string, bool) {
	s.mu.Lock()
	w, ok := s.sessions[userID]
	if ok {
		delete(s.sessions, userID)
	}
	s.mu.Unlock()
	if !ok {
		return "", false
	}
	slog.Debug("SessionManager session cancelled", "user", userID, "flow", w.Type())
	return w.Cancel(), true
}

// parseDecimal parses a float accepting a comma as the decimal separator.
func parseDecimal(s string) (float64, error) {
	return strconv.ParseFloat(strings.Replace(strings.TrimSpace(s), ",", ".", 1), 64)
}
