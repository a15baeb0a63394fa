package utility

import (
	"sync"

	"github.com/google/uuid"
)

// SessionID identifies one run of the feed process. Every event carries it so
// recorded data from different sessions never gets conflated on replay.
type SessionID = uuid.UUID

var (
	sessionID     SessionID
	sessionIDOnce sync.Once
	sessionIDMu   sync.RWMutex
)

func GetSessionID() SessionID {
	sessionIDOnce.Do(func() {
		sessionID = uuid.Must(uuid.NewV7())
	})

	sessionIDMu.RLock()
	defer sessionIDMu.RUnlock()
	return sessionID
}

func ResetSessionID() SessionID {
	sessionIDMu.Lock()
	defer sessionIDMu.Unlock()

	sessionID = uuid.Must(uuid.NewV7())
	return sessionID
}
