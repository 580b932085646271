package memory

import (
	"context"

	"decisionlab/internal/app/ports"
	"decisionlab/internal/domain/session"
)

type SessionRepo struct {
	store *Store
}

func NewSessionRepo(store *Store) SessionRepo {
	return SessionRepo{store: store}
}

func (r SessionRepo) Get(ctx context.Context, id string) (session.Session, error) {
	if !inTx(ctx) {
		r.store.mu.RLock()
		defer r.store.mu.RUnlock()
	}
	sess, ok := r.store.sessions[id]
	if !ok {
		return session.Session{}, ports.ErrNotFound
	}
	return cloneSession(sess), nil
}

func (r SessionRepo) SaveWithVersion(ctx context.Context, sess session.Session, expectedVersion int64) error {
	if !inTx(ctx) {
		r.store.mu.Lock()
		defer r.store.mu.Unlock()
	}
	current, ok := r.store.sessions[sess.ID]
	if !ok {
		if expectedVersion != 0 {
			return ports.ErrConflict
		}
		r.store.sessions[sess.ID] = cloneSession(sess)
		return nil
	}
	if expectedVersion == 0 || current.Version != expectedVersion {
		return ports.ErrConflict
	}
	r.store.sessions[sess.ID] = cloneSession(sess)
	return nil
}
