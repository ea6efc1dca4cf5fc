package repository

import (
	"context"

	"loan-assistant-be/pkg/store"
)

// ISessionRepository is the injected session store abstraction. Backed by
// an in-process cache by default and swappable for an external store
// without touching orchestrator logic.
type ISessionRepository interface {
	Get(ctx context.Context, sessionID string) (*store.Session, bool)
	Save(ctx context.Context, session *store.Session) error
	Delete(ctx context.Context, sessionID string) error
}
