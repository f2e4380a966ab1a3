package state

import (
	"errors"
	"fmt"
	"maps"

	"github.com/qtts/assetdesk/internal/model"
)

// Command is a typed mutation of the store. Commands are built with the
// constructors in this package and applied with Store.Dispatch.
type Command interface {
	// Name describes the command for logs.
	Name() string
	apply(s State) (State, error)
}

// errUnchanged signals a successful command that produced no new state.
var errUnchanged = errors.New("unchanged")

// kind describes one collection of the state.
type kind[T keyed] struct {
	name     string
	get      func(State) []T
	set      func(*State, []T)
	prepare  func(T) T
	validate func(T) error
	// settle runs after every successful change to the collection.
	settle func(State) State
}

func (k kind[T]) fill(item T) (T, error) {
	item = k.prepare(item)
	if err := k.validate(item); err != nil {
		return item, err
	}
	return item, nil
}

func (k kind[T]) done(s State) State {
	if k.settle != nil {
		return k.settle(s)
	}
	return s
}

type addCommand[T keyed] struct {
	k    kind[T]
	item T
}

func (c addCommand[T]) Name() string { return "add " + c.k.name }

func (c addCommand[T]) apply(s State) (State, error) {
	item, err := c.k.fill(c.item)
	if err != nil {
		return s, err
	}
	next, err := appendItem(c.k.get(s), item)
	if err != nil {
		return s, err
	}
	c.k.set(&s, next)
	return c.k.done(s), nil
}

type updateCommand[T keyed] struct {
	k     kind[T]
	id    string
	patch func(T) T
}

func (c updateCommand[T]) Name() string { return "update " + c.k.name }

func (c updateCommand[T]) apply(s State) (State, error) {
	var invalid error
	next, err := replaceItem(c.k.get(s), c.id, func(old T) T {
		updated := c.patch(old)
		invalid = c.k.validate(updated)
		return updated
	})
	if err != nil {
		return s, err
	}
	if invalid != nil {
		return s, invalid
	}
	c.k.set(&s, next)
	return c.k.done(s), nil
}

type deleteCommand[T keyed] struct {
	k  kind[T]
	id string
}

func (c deleteCommand[T]) Name() string { return "delete " + c.k.name }

func (c deleteCommand[T]) apply(s State) (State, error) {
	next, err := removeItems(c.k.get(s), c.id)
	if err != nil {
		return s, err
	}
	c.k.set(&s, next)
	return c.k.done(s), nil
}

var assets = kind[model.Asset]{
	name: "asset",
	get:  func(s State) []model.Asset { return s.Assets },
	set:  func(s *State, v []model.Asset) { s.Assets = v },
	prepare: func(a model.Asset) model.Asset {
		if a.ID == "" {
			a.ID = newID()
		}
		if a.Status == "" {
			a.Status = model.AssetStatusActive
		}
		// The caller keeps its map; the snapshot gets its own.
		a.Specs = maps.Clone(a.Specs)
		return a
	},
	validate: func(a model.Asset) error {
		if err := required("asset", [2]string{"code", a.Code}, [2]string{"name", a.Name}); err != nil {
			return err
		}
		if !a.Status.Valid() {
			return &ValidationError{Kind: "asset", Fields: []string{"status"}}
		}
		return nil
	},
}

var categories = kind[model.Category]{
	name: "category",
	get:  func(s State) []model.Category { return s.Categories },
	set:  func(s *State, v []model.Category) { s.Categories = v },
	prepare: func(c model.Category) model.Category {
		if c.ID == "" {
			c.ID = newID()
		}
		return c
	},
	validate: func(c model.Category) error {
		return required("category", [2]string{"code", c.Code}, [2]string{"name", c.Name})
	},
}

var suppliers = kind[model.Supplier]{
	name: "supplier",
	get:  func(s State) []model.Supplier { return s.Suppliers },
	set:  func(s *State, v []model.Supplier) { s.Suppliers = v },
	prepare: func(sp model.Supplier) model.Supplier {
		if sp.ID == "" {
			sp.ID = newID()
		}
		return sp
	},
	validate: func(sp model.Supplier) error {
		return required("supplier", [2]string{"code", sp.Code}, [2]string{"name", sp.Name})
	},
}

var locations = kind[model.Location]{
	name: "location",
	get:  func(s State) []model.Location { return s.Locations },
	set:  func(s *State, v []model.Location) { s.Locations = v },
	prepare: func(l model.Location) model.Location {
		if l.ID == "" {
			l.ID = newID()
		}
		return l
	},
	validate: func(l model.Location) error {
		return required("location", [2]string{"code", l.Code}, [2]string{"name", l.Name})
	},
}

var users = kind[model.User]{
	name: "user",
	get:  func(s State) []model.User { return s.Users },
	set:  func(s *State, v []model.User) { s.Users = v },
	prepare: func(u model.User) model.User {
		if u.ID == "" {
			u.ID = newID()
		}
		if u.Role == "" {
			u.Role = model.RoleUser
		}
		return u
	},
	validate: func(u model.User) error {
		if err := required("user", [2]string{"email", u.Email}, [2]string{"name", u.Name}); err != nil {
			return err
		}
		if !u.Role.Valid() {
			return &ValidationError{Kind: "user", Fields: []string{"role"}}
		}
		return nil
	},
	settle: resyncSession,
}

// resyncSession keeps the session pointing at the directory's current copy of
// the signed-in identity, and clears it if that identity was deleted.
func resyncSession(s State) State {
	if s.Session == nil {
		return s
	}
	if u, ok := find(s.Users, s.Session.ID); ok {
		s.Session = &u
	} else {
		s.Session = nil
		s.SessionID = ""
	}
	return s
}

// AddAsset appends an asset. An empty ID is generated and an empty status
// defaults to ACTIVE.
func AddAsset(a model.Asset) Command { return addCommand[model.Asset]{assets, a} }

// UpdateAsset applies a partial update to the asset with the given ID.
func UpdateAsset(id string, p model.AssetPatch) Command {
	return updateCommand[model.Asset]{assets, id, p.Apply}
}

// DeleteAsset removes the asset with the given ID.
func DeleteAsset(id string) Command { return deleteCommand[model.Asset]{assets, id} }

// SetAssetStatus moves an asset to a new status. Any status may follow any other.
func SetAssetStatus(id string, status model.AssetStatus) Command {
	return UpdateAsset(id, model.AssetPatch{Status: &status})
}

// AddCategory appends a category.
func AddCategory(c model.Category) Command { return addCommand[model.Category]{categories, c} }

// UpdateCategory applies a partial update to a category.
func UpdateCategory(id string, p model.CategoryPatch) Command {
	return updateCommand[model.Category]{categories, id, p.Apply}
}

// DeleteCategory removes a category. Assets referencing it are untouched.
func DeleteCategory(id string) Command { return deleteCommand[model.Category]{categories, id} }

// AddSupplier appends a supplier.
func AddSupplier(sp model.Supplier) Command { return addCommand[model.Supplier]{suppliers, sp} }

// UpdateSupplier applies a partial update to a supplier.
func UpdateSupplier(id string, p model.SupplierPatch) Command {
	return updateCommand[model.Supplier]{suppliers, id, p.Apply}
}

// DeleteSupplier removes a supplier.
func DeleteSupplier(id string) Command { return deleteCommand[model.Supplier]{suppliers, id} }

// AddLocation appends a location.
func AddLocation(l model.Location) Command { return addCommand[model.Location]{locations, l} }

// UpdateLocation applies a partial update to a location.
func UpdateLocation(id string, p model.LocationPatch) Command {
	return updateCommand[model.Location]{locations, id, p.Apply}
}

// DeleteLocation removes a location.
func DeleteLocation(id string) Command { return deleteCommand[model.Location]{locations, id} }

// AddUser appends an identity to the directory. An empty role defaults to USER.
func AddUser(u model.User) Command { return addCommand[model.User]{users, u} }

// UpdateUser applies a partial update to an identity.
func UpdateUser(id string, p model.UserPatch) Command {
	return updateCommand[model.User]{users, id, p.Apply}
}

// DeleteUser removes an identity. Assets managed by it keep the dangling
// reference; a session held by it ends.
func DeleteUser(id string) Command { return deleteCommand[model.User]{users, id} }

type importCommand struct {
	assets []model.Asset
}

// ImportAssets appends a batch of assets. Either every asset is added or,
// on the first invalid one, none is.
func ImportAssets(batch []model.Asset) Command { return importCommand{assets: batch} }

func (c importCommand) Name() string { return "import assets" }

func (c importCommand) apply(s State) (State, error) {
	if len(c.assets) == 0 {
		return s, errUnchanged
	}
	next := s.Assets
	for i, a := range c.assets {
		a, err := assets.fill(a)
		if err != nil {
			return s, fmt.Errorf("import row %d: %w", i+1, err)
		}
		next, err = appendItem(next, a)
		if err != nil {
			return s, fmt.Errorf("import row %d: %w", i+1, err)
		}
	}
	s.Assets = next
	return s, nil
}
