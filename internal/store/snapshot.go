package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/qtts/assetdesk/internal/state"
)

// DefaultStateKey is the kv key the state blob is stored under.
const DefaultStateKey = "qtts-asset-storage"

// LoadState returns the state blob stored under key, or nil if none is stored.
func LoadState(ctx context.Context, db *sql.DB, key string) (*state.Persisted, error) {
	raw, ok, err := GetValue(ctx, db, key)
	if err != nil {
		return nil, fmt.Errorf("loading state: %w", err)
	}
	if !ok {
		return nil, nil
	}

	var p state.Persisted
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return nil, fmt.Errorf("decoding state: %w", err)
	}
	return &p, nil
}

// SaveState stores p under key as one JSON blob.
func SaveState(ctx context.Context, db *sql.DB, key string, p state.Persisted) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encoding state: %w", err)
	}
	if err := SetValue(ctx, db, key, string(data)); err != nil {
		return fmt.Errorf("saving state: %w", err)
	}
	return nil
}

// OpenState loads the stored state under key and returns a store seeded with
// it and the default user directory. With nothing stored the store starts empty.
func OpenState(ctx context.Context, db *sql.DB, key string) (*state.Store, error) {
	p, err := LoadState(ctx, db, key)
	if err != nil {
		return nil, err
	}
	if p == nil {
		p = &state.Persisted{}
	}
	return state.New(state.Restore(*p, state.DefaultUsers())), nil
}

// Persister writes the state blob after every change to a state store.
type Persister struct {
	DB  *sql.DB
	Key string
}

// Save writes s. Write failures are logged; the in-memory state stays authoritative.
func (p *Persister) Save(s state.State) {
	if err := SaveState(context.Background(), p.DB, p.Key, s.Persisted()); err != nil {
		slog.Error("failed to persist state", "key", p.Key, "version", s.Version, "error", err)
	}
}

// Attach subscribes the persister to st and returns the unsubscribe function.
func (p *Persister) Attach(st *state.Store) func() {
	return st.Subscribe(p.Save)
}
