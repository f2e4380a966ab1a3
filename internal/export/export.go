// Package export flattens store collections into labelled tables and writes
// them as spreadsheets. Exported files are never read back.
package export

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/qtts/assetdesk/internal/model"
	"github.com/qtts/assetdesk/internal/state"
)

// Table is a flattened collection with human-readable column labels.
type Table struct {
	Columns []string
	Rows    [][]any
}

// Assets flattens the asset registry, resolving category and manager names.
func Assets(s state.State) Table {
	t := Table{Columns: []string{
		"Asset code", "Name", "Category", "Status", "Value", "Location", "Manager", "Purchase date", "Specifications",
	}}
	for _, a := range s.Assets {
		category := a.CategoryID
		if c, ok := s.FindCategory(a.CategoryID); ok {
			category = c.Name
		}
		manager := a.ManagerID
		if u, ok := s.FindUser(a.ManagerID); ok {
			manager = u.Name
		}
		value, _ := a.Price.Float64()
		t.Rows = append(t.Rows, []any{
			a.Code, a.Name, category, a.Status.Label(), value, a.Location, manager, a.PurchaseDate, specsText(a.Specs),
		})
	}
	return t
}

// Categories flattens the category catalog.
func Categories(s state.State) Table {
	t := Table{Columns: []string{"Code", "Name", "Parent", "Description"}}
	for _, c := range s.Categories {
		parent := c.ParentID
		if p, ok := s.FindCategory(c.ParentID); ok {
			parent = p.Name
		}
		t.Rows = append(t.Rows, []any{c.Code, c.Name, parent, c.Description})
	}
	return t
}

// Suppliers flattens the supplier catalog.
func Suppliers(s state.State) Table {
	t := Table{Columns: []string{"Code", "Name", "Contact", "Phone", "Email", "Address", "Tax code"}}
	for _, sp := range s.Suppliers {
		t.Rows = append(t.Rows, []any{sp.Code, sp.Name, sp.ContactName, sp.Phone, sp.Email, sp.Address, sp.TaxCode})
	}
	return t
}

// Locations flattens the location catalog.
func Locations(s state.State) Table {
	t := Table{Columns: []string{"Code", "Name", "Parent", "Description"}}
	for _, l := range s.Locations {
		parent := l.ParentID
		if p, ok := s.FindLocation(l.ParentID); ok {
			parent = p.Name
		}
		t.Rows = append(t.Rows, []any{l.Code, l.Name, parent, l.Description})
	}
	return t
}

// ByName returns the table builder for a collection name.
func ByName(name string) (func(state.State) Table, bool) {
	switch name {
	case "assets":
		return Assets, true
	case "categories":
		return Categories, true
	case "suppliers":
		return Suppliers, true
	case "locations":
		return Locations, true
	}
	return nil, false
}

// specsText renders a spec map as "key: value" pairs in key order.
func specsText(specs map[string]model.AttrValue) string {
	keys := make([]string, 0, len(specs))
	for k := range specs {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + ": " + specs[k].Text()
	}
	return strings.Join(parts, "; ")
}

// WriteXLSX writes t as a single-sheet workbook with a bold header row.
func (t Table) WriteXLSX(w io.Writer, sheet string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}

	header := make([]any, len(t.Columns))
	for i, c := range t.Columns {
		header[i] = c
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, row := range t.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("locating row %d: %w", i+1, err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("writing row %d: %w", i+1, err)
		}
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("creating header style: %w", err)
	}
	if len(t.Columns) > 0 {
		last, err := excelize.CoordinatesToCellName(len(t.Columns), 1)
		if err != nil {
			return fmt.Errorf("locating header: %w", err)
		}
		if err := f.SetCellStyle(sheet, "A1", last, bold); err != nil {
			return fmt.Errorf("styling header: %w", err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}
