package model

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestAssetPatchApply(t *testing.T) {
	a := Asset{
		ID:     "a1",
		Code:   "TS0001",
		Name:   "Laptop",
		Status: AssetStatusActive,
		Price:  decimal.NewFromInt(1000),
		Specs:  map[string]AttrValue{"ram": String("16GB")},
	}

	status := AssetStatusLiquidated
	got := AssetPatch{Status: &status}.Apply(a)

	if got.Status != AssetStatusLiquidated {
		t.Errorf("expected status LIQUIDATED, got %q", got.Status)
	}
	if got.Code != a.Code || got.Name != a.Name || !got.Price.Equal(a.Price) {
		t.Errorf("untouched fields changed: %+v", got)
	}
	if v, _ := got.Specs["ram"].Str(); v != "16GB" {
		t.Errorf("specs changed: %+v", got.Specs)
	}
}

func TestAssetPatchReplacesSpecs(t *testing.T) {
	a := Asset{ID: "a1", Specs: map[string]AttrValue{"ram": String("16GB")}}
	specs := map[string]AttrValue{"cores": Number(8)}

	got := AssetPatch{Specs: specs}.Apply(a)
	if _, ok := got.Specs["ram"]; ok {
		t.Error("expected specs to be replaced")
	}

	specs["cores"] = Number(2)
	if n, _ := got.Specs["cores"].Num(); n != 8 {
		t.Errorf("patched specs alias the patch map: got %v", n)
	}
}

func TestAssetPriceIsJSONNumber(t *testing.T) {
	b, err := json.Marshal(Asset{ID: "a1", Price: decimal.RequireFromString("1500.50")})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(b), `"price":1500.5`) {
		t.Errorf("price not encoded as a number: %s", b)
	}

	var a Asset
	if err := json.Unmarshal(b, &a); err != nil {
		t.Fatal(err)
	}
	if !a.Price.Equal(decimal.RequireFromString("1500.50")) {
		t.Errorf("price = %s", a.Price)
	}
	if err := json.Unmarshal([]byte(`{"price":"42.10"}`), &a); err != nil {
		t.Fatalf("quoted price rejected: %v", err)
	}
	if !a.Price.Equal(decimal.RequireFromString("42.1")) {
		t.Errorf("price = %s", a.Price)
	}
}

func TestAttrValueJSON(t *testing.T) {
	tests := []struct {
		in   string
		kind AttrKind
		text string
	}{
		{`"16GB"`, AttrString, "16GB"},
		{`8`, AttrNumber, "8"},
		{`2.5`, AttrNumber, "2.5"},
		{`true`, AttrBool, "true"},
		{`false`, AttrBool, "false"},
	}

	for _, tt := range tests {
		var v AttrValue
		if err := json.Unmarshal([]byte(tt.in), &v); err != nil {
			t.Fatalf("Unmarshal(%s): %v", tt.in, err)
		}
		if v.Kind() != tt.kind {
			t.Errorf("Unmarshal(%s) kind = %d, want %d", tt.in, v.Kind(), tt.kind)
		}
		if v.Text() != tt.text {
			t.Errorf("Unmarshal(%s) text = %q, want %q", tt.in, v.Text(), tt.text)
		}
		out, err := json.Marshal(v)
		if err != nil {
			t.Fatalf("Marshal: %v", err)
		}
		if string(out) != tt.in {
			t.Errorf("Marshal = %s, want %s", out, tt.in)
		}
	}
}

func TestAttrValueRejectsCompound(t *testing.T) {
	for _, in := range []string{`null`, `{}`, `[1]`} {
		var v AttrValue
		if err := json.Unmarshal([]byte(in), &v); err == nil {
			t.Errorf("expected error for %s", in)
		}
	}
}

func TestAssetStatusValid(t *testing.T) {
	for _, s := range AssetStatuses {
		if !s.Valid() {
			t.Errorf("expected %q to be valid", s)
		}
	}
	if AssetStatus("active").Valid() {
		t.Error("statuses are case-sensitive")
	}
}
