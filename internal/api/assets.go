package api

import (
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/qtts/assetdesk/internal/export"
	"github.com/qtts/assetdesk/internal/imaging"
	"github.com/qtts/assetdesk/internal/model"
	"github.com/qtts/assetdesk/internal/state"
	"github.com/qtts/assetdesk/internal/store"
)

// maxImportBytes bounds the body of an import request.
const maxImportBytes = 10 << 20

// AssetsHandler handles the asset endpoints beyond plain CRUD.
type AssetsHandler struct {
	Store *state.Store
	DB    *sql.DB
}

type statusRequest struct {
	Status model.AssetStatus `json:"status"`
}

func (h *AssetsHandler) collection() *CollectionHandler[model.Asset, model.AssetPatch] {
	return &CollectionHandler[model.Asset, model.AssetPatch]{
		Store:  h.Store,
		Kind:   "asset",
		Plural: "assets",
		List:   func(s state.State) []model.Asset { return s.Assets },
		Find:   state.State.FindAsset,
		WithID: func(a model.Asset, id string) model.Asset { a.ID = id; return a },
		Add:    state.AddAsset,
		Update: state.UpdateAsset,
		Delete: state.DeleteAsset,
		Filter: filterByStatus,
		Export: export.Assets,
		OnDelete: func(r *http.Request, id string) {
			if err := store.DeleteAssetImage(r.Context(), h.DB, id); err != nil {
				slog.Error("failed to delete asset image", "asset", id, "error", err)
			}
		},
	}
}

// filterByStatus keeps assets matching the status query parameter, if any.
func filterByStatus(r *http.Request, assets []model.Asset) ([]model.Asset, error) {
	status := model.AssetStatus(r.URL.Query().Get("status"))
	if status == "" {
		return assets, nil
	}
	if !status.Valid() {
		return nil, fmt.Errorf("invalid status %q", status)
	}
	return state.State{Assets: assets}.AssetsByStatus(status), nil
}

// SetStatus handles POST /api/assets/{id}/status. Maintenance, liquidation and
// loss are all plain status changes.
func (h *AssetsHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req statusRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if !req.Status.Valid() {
		jsonError(w, http.StatusBadRequest, "invalid status")
		return
	}

	if err := h.Store.Dispatch(state.SetAssetStatus(id, req.Status)); err != nil {
		commandError(w, err)
		return
	}

	asset, _ := h.Store.State().FindAsset(id)
	slog.Info("asset status changed", "user", actor(r), "asset", id, "status", req.Status)
	jsonResponse(w, http.StatusOK, asset)
}

// Import handles POST /api/assets/import. The body is a JSON array of rows;
// either every row is added or none is.
func (h *AssetsHandler) Import(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxImportBytes)
	data, err := io.ReadAll(r.Body)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "import too large or unreadable")
		return
	}

	batch, err := state.ParseImport(data)
	if err != nil {
		commandError(w, err)
		return
	}
	if err := h.Store.Dispatch(state.ImportAssets(batch)); err != nil {
		commandError(w, err)
		return
	}

	slog.Info("assets imported", "user", actor(r), "count", len(batch))
	jsonResponse(w, http.StatusOK, map[string]int{"imported": len(batch)})
}

// UploadImage handles PUT /api/assets/{id}/image.
func (h *AssetsHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if _, ok := h.Store.State().FindAsset(id); !ok {
		jsonError(w, http.StatusNotFound, "asset not found")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, imaging.MaxUploadBytes+(1<<20))
	if err := r.ParseMultipartForm(imaging.MaxUploadBytes); err != nil {
		jsonError(w, http.StatusBadRequest, "file too large or invalid multipart form")
		return
	}

	file, _, err := r.FormFile("image")
	if err != nil {
		jsonError(w, http.StatusBadRequest, "image file required")
		return
	}
	defer file.Close()

	photo, err := imaging.Process(file, imaging.DefaultOptions)
	if errors.Is(err, imaging.ErrTooLarge) {
		jsonError(w, http.StatusRequestEntityTooLarge, err.Error())
		return
	}
	if err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := store.SetAssetImage(r.Context(), h.DB, id, photo.Data, photo.MIME); err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to save image")
		return
	}

	link := "/api/assets/" + id + "/image"
	if err := h.Store.Dispatch(state.UpdateAsset(id, model.AssetPatch{Image: &link})); err != nil {
		commandError(w, err)
		return
	}

	slog.Info("asset image uploaded", "user", actor(r), "asset", id, "width", photo.Width, "height", photo.Height)
	jsonResponse(w, http.StatusOK, map[string]string{"message": "image uploaded", "image": link})
}

// GetImage handles GET /api/assets/{id}/image. With ?size=thumb a small
// rendition is returned.
func (h *AssetsHandler) GetImage(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	data, mime, err := store.GetAssetImage(r.Context(), h.DB, id)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to get image")
		return
	}
	if data == nil {
		jsonError(w, http.StatusNotFound, "no image")
		return
	}

	if r.URL.Query().Get("size") == "thumb" {
		thumb, err := imaging.Thumbnail(data)
		if err != nil {
			jsonError(w, http.StatusInternalServerError, "failed to render thumbnail")
			return
		}
		data, mime = thumb.Data, thumb.MIME
	}

	w.Header().Set("Content-Type", mime)
	w.Header().Set("Cache-Control", "private, max-age=3600")
	w.Write(data)
}

// DeleteImage handles DELETE /api/assets/{id}/image.
func (h *AssetsHandler) DeleteImage(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := store.DeleteAssetImage(r.Context(), h.DB, id); err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to delete image")
		return
	}

	empty := ""
	if err := h.Store.Dispatch(state.UpdateAsset(id, model.AssetPatch{Image: &empty})); err != nil {
		commandError(w, err)
		return
	}

	slog.Info("asset image removed", "user", actor(r), "asset", id)
	jsonResponse(w, http.StatusOK, map[string]string{"message": "image removed"})
}
