package state

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/qtts/assetdesk/internal/model"
)

// importRow is one element of a bulk import payload.
type importRow struct {
	Code     string           `json:"code"`
	Name     string           `json:"name"`
	Price    *decimal.Decimal `json:"price"`
	Category string           `json:"category"`
	Status   string           `json:"status"`
	Location string           `json:"location"`
}

// ParseImport decodes a bulk import payload: a JSON array of objects with
// code, name, price (default 0), category and status (default ACTIVE). Every
// asset gets a fresh ID. Anything that is not such a list fails with
// ErrMalformedImport and yields no assets.
func ParseImport(data []byte) ([]model.Asset, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		if !json.Valid(trimmed) {
			return nil, fmt.Errorf("%w: invalid JSON", ErrMalformedImport)
		}
		return nil, fmt.Errorf("%w: top level is not an array", ErrMalformedImport)
	}

	var elems []json.RawMessage
	if err := json.Unmarshal(trimmed, &elems); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedImport, err)
	}

	out := make([]model.Asset, 0, len(elems))
	for i, raw := range elems {
		if raw = bytes.TrimSpace(raw); len(raw) == 0 || raw[0] != '{' {
			return nil, fmt.Errorf("%w: row %d is not an object", ErrMalformedImport, i+1)
		}
		var r importRow
		if err := json.Unmarshal(raw, &r); err != nil {
			return nil, fmt.Errorf("%w: row %d: %v", ErrMalformedImport, i+1, err)
		}
		status := model.AssetStatus(r.Status)
		if status == "" {
			status = model.AssetStatusActive
		}
		if !status.Valid() {
			return nil, fmt.Errorf("%w: row %d: unknown status %q", ErrMalformedImport, i+1, r.Status)
		}
		price := decimal.Zero
		if r.Price != nil {
			price = *r.Price
		}
		out = append(out, model.Asset{
			ID:         newID(),
			Code:       r.Code,
			Name:       r.Name,
			CategoryID: r.Category,
			Status:     status,
			Price:      price,
			Location:   r.Location,
		})
	}
	return out, nil
}
