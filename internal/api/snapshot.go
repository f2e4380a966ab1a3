package api

import (
	"encoding/hex"
	"encoding/json"
	"net/http"

	"golang.org/x/crypto/blake2b"

	"github.com/qtts/assetdesk/internal/model"
	"github.com/qtts/assetdesk/internal/state"
)

// StateHandler serves the whole store snapshot.
type StateHandler struct {
	Store *state.Store
}

type snapshot struct {
	Version    uint64           `json:"version"`
	Session    *model.User      `json:"currentUser"`
	Users      []model.User     `json:"users"`
	Assets     []model.Asset    `json:"assets"`
	Categories []model.Category `json:"categories"`
	Suppliers  []model.Supplier `json:"suppliers"`
	Locations  []model.Location `json:"locations"`
}

// Get handles GET /api/state. The ETag is a BLAKE2b-256 digest of the
// encoded snapshot; a matching If-None-Match gets 304.
func (h *StateHandler) Get(w http.ResponseWriter, r *http.Request) {
	s := h.Store.State()
	body, err := json.Marshal(snapshot{
		Version:    s.Version,
		Session:    s.Session,
		Users:      orEmpty(s.Users),
		Assets:     orEmpty(s.Assets),
		Categories: orEmpty(s.Categories),
		Suppliers:  orEmpty(s.Suppliers),
		Locations:  orEmpty(s.Locations),
	})
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to encode state")
		return
	}

	sum := blake2b.Sum256(body)
	etag := `"` + hex.EncodeToString(sum[:]) + `"`
	w.Header().Set("ETag", etag)
	w.Header().Set("Cache-Control", "no-cache")
	if r.Header.Get("If-None-Match") == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Write(body)
}
