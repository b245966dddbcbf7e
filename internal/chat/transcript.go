// Package chat keeps the in-memory transcript of an interactive session.
package chat

import (
	"sync"

	"github.com/google/uuid"
)

type Role string

const (
	RoleUser Role = "user"
	RoleAI   Role = "ai"
)

type Turn struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Transcript is an append-only sequence of turns held for one session.
type Transcript struct {
	mu    sync.RWMutex
	id    string
	turns []Turn
}

func NewTranscript() *Transcript {
	return &Transcript{id: uuid.NewString()}
}

// ID identifies the session in logs.
func (t *Transcript) ID() string {
	return t.id
}

func (t *Transcript) Append(role Role, content string) Turn {
	turn := Turn{Role: role, Content: content}

	t.mu.Lock()
	t.turns = append(t.turns, turn)
	t.mu.Unlock()

	return turn
}

func (t *Transcript) Turns() []Turn {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([]Turn, len(t.turns))
	copy(out, t.turns)
	return out
}

func (t *Transcript) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.turns)
}
