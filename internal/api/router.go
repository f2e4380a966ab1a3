package api

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/qtts/assetdesk/internal/export"
	"github.com/qtts/assetdesk/internal/model"
	"github.com/qtts/assetdesk/internal/state"
)

// Options configures the API router.
type Options struct {
	JWTSecret string
	TokenTTL  time.Duration
	// Events, when set, is served at /api/events.
	Events http.Handler
}

// NewRouter creates the API router with all endpoints registered.
func NewRouter(st *state.Store, db *sql.DB, opts Options) http.Handler {
	mux := http.NewServeMux()

	authHandler := &AuthHandler{Store: st, JWTSecret: opts.JWTSecret, TokenTTL: opts.TokenTTL}
	assetsHandler := &AssetsHandler{Store: st, DB: db}
	stateHandler := &StateHandler{Store: st}
	reportsHandler := &ReportsHandler{Store: st}

	authMW := AuthMiddleware(opts.JWTSecret, st)

	// Public: login.
	mux.HandleFunc("POST /api/auth/login", authHandler.Login)

	// Session.
	mux.Handle("POST /api/auth/logout", authMW(http.HandlerFunc(authHandler.Logout)))
	mux.Handle("GET /api/me", authMW(http.HandlerFunc(authHandler.Me)))
	mux.Handle("GET /api/state", authMW(http.HandlerFunc(stateHandler.Get)))

	// Collections.
	usersHandler(st).register(mux, authMW)
	assetsHandler.collection().register(mux, authMW)
	categoriesHandler(st).register(mux, authMW)
	suppliersHandler(st).register(mux, authMW)
	locationsHandler(st).register(mux, authMW)

	// Asset workflows.
	mux.Handle("POST /api/assets/{id}/status", authMW(http.HandlerFunc(assetsHandler.SetStatus)))
	mux.Handle("POST /api/assets/import", authMW(http.HandlerFunc(assetsHandler.Import)))
	mux.Handle("PUT /api/assets/{id}/image", authMW(http.HandlerFunc(assetsHandler.UploadImage)))
	mux.Handle("GET /api/assets/{id}/image", authMW(http.HandlerFunc(assetsHandler.GetImage)))
	mux.Handle("DELETE /api/assets/{id}/image", authMW(http.HandlerFunc(assetsHandler.DeleteImage)))

	// Reports.
	mux.Handle("GET /api/reports/{name}", authMW(http.HandlerFunc(reportsHandler.Get)))

	if opts.Events != nil {
		mux.Handle("GET /api/events", authMW(opts.Events))
	}

	return mux
}

func usersHandler(st *state.Store) *CollectionHandler[model.User, model.UserPatch] {
	return &CollectionHandler[model.User, model.UserPatch]{
		Store:  st,
		Kind:   "user",
		Plural: "users",
		List:   func(s state.State) []model.User { return s.Users },
		Find:   state.State.FindUser,
		WithID: func(u model.User, id string) model.User { u.ID = id; return u },
		Add:    state.AddUser,
		Update: state.UpdateUser,
		Delete: state.DeleteUser,
	}
}

func categoriesHandler(st *state.Store) *CollectionHandler[model.Category, model.CategoryPatch] {
	return &CollectionHandler[model.Category, model.CategoryPatch]{
		Store:  st,
		Kind:   "category",
		Plural: "categories",
		List:   func(s state.State) []model.Category { return s.Categories },
		Find:   state.State.FindCategory,
		WithID: func(c model.Category, id string) model.Category { c.ID = id; return c },
		Add:    state.AddCategory,
		Update: state.UpdateCategory,
		Delete: state.DeleteCategory,
		Export: export.Categories,
	}
}

func suppliersHandler(st *state.Store) *CollectionHandler[model.Supplier, model.SupplierPatch] {
	return &CollectionHandler[model.Supplier, model.SupplierPatch]{
		Store:  st,
		Kind:   "supplier",
		Plural: "suppliers",
		List:   func(s state.State) []model.Supplier { return s.Suppliers },
		Find:   state.State.FindSupplier,
		WithID: func(sp model.Supplier, id string) model.Supplier { sp.ID = id; return sp },
		Add:    state.AddSupplier,
		Update: state.UpdateSupplier,
		Delete: state.DeleteSupplier,
		Export: export.Suppliers,
	}
}

func locationsHandler(st *state.Store) *CollectionHandler[model.Location, model.LocationPatch] {
	return &CollectionHandler[model.Location, model.LocationPatch]{
		Store:  st,
		Kind:   "location",
		Plural: "locations",
		List:   func(s state.State) []model.Location { return s.Locations },
		Find:   state.State.FindLocation,
		WithID: func(l model.Location, id string) model.Location { l.ID = id; return l },
		Add:    state.AddLocation,
		Update: state.UpdateLocation,
		Delete: state.DeleteLocation,
		Export: export.Locations,
	}
}
