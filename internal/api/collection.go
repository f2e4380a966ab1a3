package api

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/qtts/assetdesk/internal/export"
	"github.com/qtts/assetdesk/internal/state"
)

// keyed is implemented by every entity served by a CollectionHandler.
type keyed interface {
	Key() string
}

// CollectionHandler serves list/get/create/update/delete for one state
// collection. T is the entity and P its patch type.
type CollectionHandler[T keyed, P any] struct {
	Store *state.Store
	// Kind names the entity in logs and errors, e.g. "category".
	Kind string
	// Plural names the collection in routes and exported files.
	Plural string
	List   func(state.State) []T
	Find   func(state.State, string) (T, bool)
	WithID func(T, string) T
	Add    func(T) state.Command
	Update func(string, P) state.Command
	Delete func(string) state.Command
	// Filter, when set, narrows the list by query parameters.
	Filter func(r *http.Request, items []T) ([]T, error)
	// Export, when set, backs the /export route.
	Export func(state.State) export.Table
	// OnDelete runs after a successful delete.
	OnDelete func(r *http.Request, id string)
}

// HandleList handles GET on the collection.
func (h *CollectionHandler[T, P]) HandleList(w http.ResponseWriter, r *http.Request) {
	items := h.List(h.Store.State())
	if h.Filter != nil {
		var err error
		if items, err = h.Filter(r, items); err != nil {
			jsonError(w, http.StatusBadRequest, err.Error())
			return
		}
	}
	if items == nil {
		items = []T{}
	}
	jsonResponse(w, http.StatusOK, items)
}

// HandleGet handles GET on one item.
func (h *CollectionHandler[T, P]) HandleGet(w http.ResponseWriter, r *http.Request) {
	item, ok := h.Find(h.Store.State(), r.PathValue("id"))
	if !ok {
		jsonError(w, http.StatusNotFound, h.Kind+" not found")
		return
	}
	jsonResponse(w, http.StatusOK, item)
}

// HandleCreate handles POST on the collection. An empty ID is assigned here so
// the created item can be returned.
func (h *CollectionHandler[T, P]) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var item T
	if err := decodeJSON(r, &item); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if item.Key() == "" {
		item = h.WithID(item, uuid.NewString())
	}

	if err := h.Store.Dispatch(h.Add(item)); err != nil {
		commandError(w, err)
		return
	}

	created, _ := h.Find(h.Store.State(), item.Key())
	slog.Info(h.Kind+" created", "user", actor(r), "id", item.Key())
	jsonResponse(w, http.StatusCreated, created)
}

// HandleUpdate handles PATCH on one item.
func (h *CollectionHandler[T, P]) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var patch P
	if err := decodeJSON(r, &patch); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.Store.Dispatch(h.Update(id, patch)); err != nil {
		commandError(w, err)
		return
	}

	updated, _ := h.Find(h.Store.State(), id)
	slog.Info(h.Kind+" updated", "user", actor(r), "id", id)
	jsonResponse(w, http.StatusOK, updated)
}

// HandleDelete handles DELETE on one item.
func (h *CollectionHandler[T, P]) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := h.Store.Dispatch(h.Delete(id)); err != nil {
		commandError(w, err)
		return
	}

	if h.OnDelete != nil {
		h.OnDelete(r, id)
	}
	slog.Info(h.Kind+" deleted", "user", actor(r), "id", id)
	jsonResponse(w, http.StatusOK, map[string]string{"message": h.Kind + " deleted"})
}

// HandleExport handles GET .../export, sending the collection as a spreadsheet.
func (h *CollectionHandler[T, P]) HandleExport(w http.ResponseWriter, r *http.Request) {
	writeSpreadsheet(w, h.Export(h.Store.State()), h.Plural)
}

const xlsxMIME = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func writeSpreadsheet(w http.ResponseWriter, t export.Table, name string) {
	w.Header().Set("Content-Type", xlsxMIME)
	w.Header().Set("Content-Disposition", `attachment; filename="`+name+`.xlsx"`)
	if err := t.WriteXLSX(w, name); err != nil {
		slog.Error("failed to write spreadsheet", "sheet", name, "error", err)
	}
}

// register mounts the handler's routes under /api/<Plural>.
func (h *CollectionHandler[T, P]) register(mux *http.ServeMux, mw func(http.Handler) http.Handler) {
	prefix := "/api/" + h.Plural
	mux.Handle("GET "+prefix, mw(http.HandlerFunc(h.HandleList)))
	mux.Handle("POST "+prefix, mw(http.HandlerFunc(h.HandleCreate)))
	mux.Handle("GET "+prefix+"/{id}", mw(http.HandlerFunc(h.HandleGet)))
	mux.Handle("PATCH "+prefix+"/{id}", mw(http.HandlerFunc(h.HandleUpdate)))
	mux.Handle("DELETE "+prefix+"/{id}", mw(http.HandlerFunc(h.HandleDelete)))
	if h.Export != nil {
		mux.Handle("GET "+prefix+"/export", mw(http.HandlerFunc(h.HandleExport)))
	}
}
