package state

import (
	"errors"
	"reflect"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/qtts/assetdesk/internal/model"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return New(State{Users: DefaultUsers()})
}

func testAsset(id string) model.Asset {
	return model.Asset{
		ID:         id,
		Code:       "TS0001",
		Name:       "Dell Latitude 5420",
		CategoryID: "c1",
		Status:     model.AssetStatusActive,
		Price:      decimal.NewFromInt(1000),
		Location:   "Floor 2",
		ManagerID:  "u2",
		Specs:      map[string]model.AttrValue{"ram": model.String("16GB"), "cores": model.Number(8)},
	}
}

func TestAddAsset(t *testing.T) {
	st := newTestStore(t)
	a := testAsset("a1")

	if err := st.Dispatch(AddAsset(a)); err != nil {
		t.Fatalf("AddAsset: %v", err)
	}

	s := st.State()
	if len(s.Assets) != 1 {
		t.Fatalf("expected 1 asset, got %d", len(s.Assets))
	}
	got, ok := s.FindAsset("a1")
	if !ok {
		t.Fatal("expected to find a1")
	}
	if !reflect.DeepEqual(got, a) {
		t.Errorf("stored asset differs:\n got %+v\nwant %+v", got, a)
	}
}

func TestAddGeneratesIDAndDefaultStatus(t *testing.T) {
	st := newTestStore(t)

	if err := st.Dispatch(AddAsset(model.Asset{Code: "X", Name: "Y"})); err != nil {
		t.Fatalf("AddAsset: %v", err)
	}
	a := st.State().Assets[0]
	if a.ID == "" {
		t.Error("expected generated ID")
	}
	if a.Status != model.AssetStatusActive {
		t.Errorf("expected ACTIVE, got %q", a.Status)
	}
}

func TestAddDuplicateID(t *testing.T) {
	st := newTestStore(t)
	st.Dispatch(AddAsset(testAsset("a1")))
	before := st.State()

	err := st.Dispatch(AddAsset(testAsset("a1")))
	if !errors.Is(err, ErrDuplicateID) {
		t.Fatalf("expected ErrDuplicateID, got %v", err)
	}
	if after := st.State(); after.Version != before.Version || len(after.Assets) != 1 {
		t.Error("rejected add changed the state")
	}
}

func TestAddRequiresFields(t *testing.T) {
	st := newTestStore(t)

	err := st.Dispatch(AddAsset(model.Asset{ID: "a1"}))
	if !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
	if !reflect.DeepEqual(verr.Fields, []string{"code", "name"}) {
		t.Errorf("unexpected missing fields: %v", verr.Fields)
	}
	if len(st.State().Assets) != 0 {
		t.Error("invalid asset was added")
	}
}

func TestUpdateAssetChangesOnlyPatchedField(t *testing.T) {
	st := newTestStore(t)
	st.Dispatch(AddAsset(testAsset("a1")))
	other := testAsset("a2")
	other.Code = "TS0002"
	st.Dispatch(AddAsset(other))

	if err := st.Dispatch(SetAssetStatus("a1", model.AssetStatusLiquidated)); err != nil {
		t.Fatalf("SetAssetStatus: %v", err)
	}

	s := st.State()
	got, _ := s.FindAsset("a1")
	want := testAsset("a1")
	want.Status = model.AssetStatusLiquidated
	if !reflect.DeepEqual(got, want) {
		t.Errorf("unexpected a1:\n got %+v\nwant %+v", got, want)
	}
	if a2, _ := s.FindAsset("a2"); !reflect.DeepEqual(a2, other) {
		t.Errorf("a2 changed: %+v", a2)
	}
}

func TestUpdateCannotClearRequiredField(t *testing.T) {
	st := newTestStore(t)
	st.Dispatch(AddAsset(testAsset("a1")))

	empty := ""
	err := st.Dispatch(UpdateAsset("a1", model.AssetPatch{Name: &empty}))
	if !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
	if a, _ := st.State().FindAsset("a1"); a.Name == "" {
		t.Error("invalid update was applied")
	}
}

func TestMissingIDLeavesStateUnchanged(t *testing.T) {
	st := newTestStore(t)
	st.Dispatch(AddAsset(testAsset("a1")))
	before := st.State()

	status := model.AssetStatusBroken
	cmds := []Command{
		UpdateAsset("missing", model.AssetPatch{Status: &status}),
		DeleteAsset("missing"),
		DeleteCategory("missing"),
		UpdateSupplier("missing", model.SupplierPatch{}),
		DeleteLocation("missing"),
		DeleteUser("missing"),
	}
	for _, cmd := range cmds {
		if err := st.Dispatch(cmd); !errors.Is(err, ErrNotFound) {
			t.Errorf("%s: expected ErrNotFound, got %v", cmd.Name(), err)
		}
	}

	after := st.State()
	if !reflect.DeepEqual(before, after) {
		t.Error("state changed after missing-id commands")
	}
}

func TestDeleteRemovesOnlyMatching(t *testing.T) {
	st := newTestStore(t)
	for _, id := range []string{"a1", "a2", "a3"} {
		st.Dispatch(AddAsset(testAsset(id)))
	}

	if err := st.Dispatch(DeleteAsset("a2")); err != nil {
		t.Fatalf("DeleteAsset: %v", err)
	}

	s := st.State()
	if len(s.Assets) != 2 {
		t.Fatalf("expected 2 assets, got %d", len(s.Assets))
	}
	if s.Assets[0].ID != "a1" || s.Assets[1].ID != "a3" {
		t.Errorf("unexpected remaining order: %s, %s", s.Assets[0].ID, s.Assets[1].ID)
	}
}

func TestSnapshotsAreImmutable(t *testing.T) {
	st := newTestStore(t)
	st.Dispatch(AddAsset(testAsset("a1")))
	old := st.State()

	st.Dispatch(SetAssetStatus("a1", model.AssetStatusLost))
	st.Dispatch(AddAsset(testAsset("a2")))
	st.Dispatch(DeleteAsset("a1"))

	if len(old.Assets) != 1 || old.Assets[0].Status != model.AssetStatusActive {
		t.Errorf("old snapshot was modified: %+v", old.Assets)
	}
	if st.State().Version != old.Version+3 {
		t.Errorf("expected version %d, got %d", old.Version+3, st.State().Version)
	}
}

func TestSnapshotsDoNotShareCallerSpecs(t *testing.T) {
	st := newTestStore(t)

	a := testAsset("a1")
	specs := map[string]model.AttrValue{"cpu": model.String("i5")}
	a.Specs = specs
	if err := st.Dispatch(AddAsset(a)); err != nil {
		t.Fatalf("AddAsset: %v", err)
	}

	batch := []model.Asset{testAsset("a2")}
	batchSpecs := batch[0].Specs
	if err := st.Dispatch(ImportAssets(batch)); err != nil {
		t.Fatalf("ImportAssets: %v", err)
	}

	specs["cpu"] = model.String("i9")
	batchSpecs["ram"] = model.String("64GB")

	s := st.State()
	got, _ := s.FindAsset("a1")
	if got.Specs["cpu"].Text() != "i5" {
		t.Errorf("published snapshot changed with caller map: cpu = %s", got.Specs["cpu"].Text())
	}
	imported, _ := s.FindAsset("a2")
	if imported.Specs["ram"].Text() != "16GB" {
		t.Errorf("imported asset changed with caller map: ram = %s", imported.Specs["ram"].Text())
	}
}

func duplicateState() State {
	first := testAsset("d")
	first.Name = "first"
	second := testAsset("d")
	second.Name = "second"
	return Restore(Persisted{
		Assets: []model.Asset{first, testAsset("x"), second},
	}, DefaultUsers())
}

func TestDuplicateIDsUpdateFirstMatch(t *testing.T) {
	st := New(duplicateState())

	name := "renamed"
	if err := st.Dispatch(UpdateAsset("d", model.AssetPatch{Name: &name})); err != nil {
		t.Fatalf("UpdateAsset: %v", err)
	}

	s := st.State()
	if len(s.Assets) != 3 {
		t.Fatalf("expected 3 assets, got %d", len(s.Assets))
	}
	if s.Assets[0].Name != "renamed" {
		t.Errorf("first match not updated: %q", s.Assets[0].Name)
	}
	if s.Assets[2].Name != "second" {
		t.Errorf("second match changed: %q", s.Assets[2].Name)
	}
	if got, _ := s.FindAsset("d"); got.Name != "renamed" {
		t.Errorf("lookup should return the first match, got %q", got.Name)
	}
}

func TestDuplicateIDsDeleteAllMatches(t *testing.T) {
	st := New(duplicateState())

	if err := st.Dispatch(DeleteAsset("d")); err != nil {
		t.Fatalf("DeleteAsset: %v", err)
	}

	s := st.State()
	if len(s.Assets) != 1 || s.Assets[0].ID != "x" {
		t.Errorf("expected only x to remain, got %+v", s.Assets)
	}
}

func TestCatalogCRUD(t *testing.T) {
	st := newTestStore(t)

	if err := st.Dispatch(AddCategory(model.Category{ID: "c1", Code: "IT", Name: "IT equipment"})); err != nil {
		t.Fatalf("AddCategory: %v", err)
	}
	if err := st.Dispatch(AddSupplier(model.Supplier{ID: "s1", Code: "FPT", Name: "FPT Trading"})); err != nil {
		t.Fatalf("AddSupplier: %v", err)
	}
	if err := st.Dispatch(AddLocation(model.Location{ID: "l1", Code: "HQ", Name: "Head office", ParentID: "nowhere"})); err != nil {
		t.Fatalf("AddLocation: %v", err)
	}

	name := "Computers"
	if err := st.Dispatch(UpdateCategory("c1", model.CategoryPatch{Name: &name})); err != nil {
		t.Fatalf("UpdateCategory: %v", err)
	}
	phone := "0900"
	if err := st.Dispatch(UpdateSupplier("s1", model.SupplierPatch{Phone: &phone})); err != nil {
		t.Fatalf("UpdateSupplier: %v", err)
	}

	s := st.State()
	if c, _ := s.FindCategory("c1"); c.Name != "Computers" || c.Code != "IT" {
		t.Errorf("unexpected category: %+v", c)
	}
	if sp, _ := s.FindSupplier("s1"); sp.Phone != "0900" || sp.Name != "FPT Trading" {
		t.Errorf("unexpected supplier: %+v", sp)
	}
	if l, ok := s.FindLocation("l1"); !ok || l.ParentID != "nowhere" {
		t.Errorf("dangling parent should be accepted: %+v", l)
	}

	if err := st.Dispatch(DeleteLocation("l1")); err != nil {
		t.Fatalf("DeleteLocation: %v", err)
	}
	if len(st.State().Locations) != 0 {
		t.Error("expected location to be deleted")
	}
}

func TestSubscribersNotifiedOnChange(t *testing.T) {
	st := newTestStore(t)

	var versions []uint64
	unsubscribe := st.Subscribe(func(s State) {
		versions = append(versions, s.Version)
	})

	st.Dispatch(AddAsset(testAsset("a1")))
	st.Dispatch(DeleteAsset("missing")) // fails: no notification
	st.Dispatch(Logout())               // no session: no notification
	st.Dispatch(DeleteAsset("a1"))

	if !reflect.DeepEqual(versions, []uint64{1, 2}) {
		t.Errorf("unexpected notifications: %v", versions)
	}

	unsubscribe()
	st.Dispatch(AddAsset(testAsset("a2")))
	if len(versions) != 2 {
		t.Error("notified after unsubscribe")
	}
}

func TestImportAssetsAtomic(t *testing.T) {
	st := newTestStore(t)
	st.Dispatch(AddAsset(testAsset("a1")))

	batch := []model.Asset{
		{ID: "b1", Code: "B1", Name: "ok"},
		{ID: "b2", Code: "", Name: "missing code"},
	}
	if err := st.Dispatch(ImportAssets(batch)); !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
	if len(st.State().Assets) != 1 {
		t.Error("partial import was applied")
	}

	batch[1].Code = "B2"
	if err := st.Dispatch(ImportAssets(batch)); err != nil {
		t.Fatalf("ImportAssets: %v", err)
	}
	if len(st.State().Assets) != 3 {
		t.Errorf("expected 3 assets, got %d", len(st.State().Assets))
	}
}
