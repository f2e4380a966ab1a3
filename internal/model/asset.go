package model

import (
	"maps"

	"github.com/shopspring/decimal"
)

func init() {
	// Prices travel as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}

// Asset is a tracked physical item. CategoryID, SupplierID, ManagerID and
// Location are not checked against their catalogs.
type Asset struct {
	ID           string               `json:"id"`
	Code         string               `json:"code"`
	Name         string               `json:"name"`
	CategoryID   string               `json:"categoryId"`
	SupplierID   string               `json:"supplierId,omitempty"`
	Status       AssetStatus          `json:"status"`
	Price        decimal.Decimal      `json:"price"`
	Location     string               `json:"location"`
	ManagerID    string               `json:"managerId"`
	PurchaseDate string               `json:"purchaseDate,omitempty"`
	Specs        map[string]AttrValue `json:"specs,omitempty"`
	Image        string               `json:"image,omitempty"`
}

// Key returns the asset ID.
func (a Asset) Key() string { return a.ID }

// AssetStatus is the lifecycle status of an asset. Any status may follow any
// other; there is no transition table.
type AssetStatus string

// Asset statuses.
const (
	AssetStatusActive      AssetStatus = "ACTIVE"
	AssetStatusBroken      AssetStatus = "BROKEN"
	AssetStatusLiquidated  AssetStatus = "LIQUIDATED"
	AssetStatusMaintenance AssetStatus = "MAINTENANCE"
	AssetStatusLost        AssetStatus = "LOST"
)

// AssetStatuses lists every status in display order.
var AssetStatuses = []AssetStatus{
	AssetStatusActive,
	AssetStatusMaintenance,
	AssetStatusBroken,
	AssetStatusLost,
	AssetStatusLiquidated,
}

// Valid reports whether s is a known status.
func (s AssetStatus) Valid() bool {
	switch s {
	case AssetStatusActive, AssetStatusBroken, AssetStatusLiquidated, AssetStatusMaintenance, AssetStatusLost:
		return true
	}
	return false
}

// Label returns a human-readable status name.
func (s AssetStatus) Label() string {
	switch s {
	case AssetStatusActive:
		return "In use"
	case AssetStatusBroken:
		return "Broken"
	case AssetStatusLiquidated:
		return "Liquidated"
	case AssetStatusMaintenance:
		return "Under maintenance"
	case AssetStatusLost:
		return "Lost"
	default:
		return string(s)
	}
}

// AssetPatch holds the fields to change on an asset. A nil Specs map leaves
// the specs alone; a non-nil one (even empty) replaces them.
type AssetPatch struct {
	Code         *string              `json:"code,omitempty"`
	Name         *string              `json:"name,omitempty"`
	CategoryID   *string              `json:"categoryId,omitempty"`
	SupplierID   *string              `json:"supplierId,omitempty"`
	Status       *AssetStatus         `json:"status,omitempty"`
	Price        *decimal.Decimal     `json:"price,omitempty"`
	Location     *string              `json:"location,omitempty"`
	ManagerID    *string              `json:"managerId,omitempty"`
	PurchaseDate *string              `json:"purchaseDate,omitempty"`
	Specs        map[string]AttrValue `json:"specs,omitempty"`
	Image        *string              `json:"image,omitempty"`
}

// Apply returns a copy of a with the patch applied.
func (p AssetPatch) Apply(a Asset) Asset {
	if p.Code != nil {
		a.Code = *p.Code
	}
	if p.Name != nil {
		a.Name = *p.Name
	}
	if p.CategoryID != nil {
		a.CategoryID = *p.CategoryID
	}
	if p.SupplierID != nil {
		a.SupplierID = *p.SupplierID
	}
	if p.Status != nil {
		a.Status = *p.Status
	}
	if p.Price != nil {
		a.Price = *p.Price
	}
	if p.Location != nil {
		a.Location = *p.Location
	}
	if p.ManagerID != nil {
		a.ManagerID = *p.ManagerID
	}
	if p.PurchaseDate != nil {
		a.PurchaseDate = *p.PurchaseDate
	}
	if p.Specs != nil {
		a.Specs = maps.Clone(p.Specs)
	}
	if p.Image != nil {
		a.Image = *p.Image
	}
	return a
}
