// Package state holds the in-process asset store: an immutable snapshot of
// the session, user directory, assets and reference catalogs, mutated only
// through typed commands dispatched to a Store.
package state

import "github.com/qtts/assetdesk/internal/model"

// State is one snapshot of the store. Slices reachable from a published
// snapshot are never written to again, so a State may be read freely after
// the store has moved on. SessionID changes on every login and is empty
// without a session.
type State struct {
	Session    *model.User
	SessionID  string
	Users      []model.User
	Assets     []model.Asset
	Categories []model.Category
	Suppliers  []model.Supplier
	Locations  []model.Location
	Version    uint64
}

// FindUser returns the first user with the given ID.
func (s State) FindUser(id string) (model.User, bool) { return find(s.Users, id) }

// FindAsset returns the first asset with the given ID.
func (s State) FindAsset(id string) (model.Asset, bool) { return find(s.Assets, id) }

// FindCategory returns the first category with the given ID.
func (s State) FindCategory(id string) (model.Category, bool) { return find(s.Categories, id) }

// FindSupplier returns the first supplier with the given ID.
func (s State) FindSupplier(id string) (model.Supplier, bool) { return find(s.Suppliers, id) }

// FindLocation returns the first location with the given ID.
func (s State) FindLocation(id string) (model.Location, bool) { return find(s.Locations, id) }

// AssetsByStatus returns the assets with the given status, or all assets
// when status is empty.
func (s State) AssetsByStatus(status model.AssetStatus) []model.Asset {
	if status == "" {
		return s.Assets
	}
	var out []model.Asset
	for _, a := range s.Assets {
		if a.Status == status {
			out = append(out, a)
		}
	}
	return out
}

// Persisted is the stored form of the state. The user directory is
// deliberately absent: it is reseeded on every load.
type Persisted struct {
	Session    *model.User      `json:"currentUser"`
	SessionID  string           `json:"sessionId,omitempty"`
	Assets     []model.Asset    `json:"assets"`
	Categories []model.Category `json:"categories"`
	Suppliers  []model.Supplier `json:"suppliers"`
	Locations  []model.Location `json:"locations"`
}

// Persisted returns the stored form of s.
func (s State) Persisted() Persisted {
	return Persisted{
		Session:    s.Session,
		SessionID:  s.SessionID,
		Assets:     orEmpty(s.Assets),
		Categories: orEmpty(s.Categories),
		Suppliers:  orEmpty(s.Suppliers),
		Locations:  orEmpty(s.Locations),
	}
}

// Restore rebuilds a State from its stored form and a user directory. The
// stored session survives only if the same identity is still in the directory.
func Restore(p Persisted, users []model.User) State {
	s := State{
		Users:      users,
		Assets:     p.Assets,
		Categories: p.Categories,
		Suppliers:  p.Suppliers,
		Locations:  p.Locations,
	}
	if p.Session != nil {
		if u, ok := find(users, p.Session.ID); ok && u.Email == p.Session.Email {
			s.Session = &u
			s.SessionID = p.SessionID
		}
	}
	return s
}

func orEmpty[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
