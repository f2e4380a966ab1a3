// Package report computes the dashboard's derived views. Every function is a
// pure computation over a state snapshot.
package report

import (
	"cmp"
	"slices"

	"github.com/shopspring/decimal"

	"github.com/qtts/assetdesk/internal/model"
	"github.com/qtts/assetdesk/internal/state"
)

// ManagerTotal is the value of the assets one manager is responsible for.
type ManagerTotal struct {
	ManagerID   string          `json:"managerId"`
	ManagerName string          `json:"managerName"`
	Count       int             `json:"count"`
	Total       decimal.Decimal `json:"total"`
}

// StatusCount is the number and value of assets in one status.
type StatusCount struct {
	Status model.AssetStatus `json:"status"`
	Label  string            `json:"label"`
	Count  int               `json:"count"`
	Total  decimal.Decimal   `json:"total"`
}

// LocationTotal is the value of the assets kept at one location label.
type LocationTotal struct {
	Location string          `json:"location"`
	Count    int             `json:"count"`
	Total    decimal.Decimal `json:"total"`
}

// Summary is the dashboard headline.
type Summary struct {
	TotalAssets int             `json:"totalAssets"`
	TotalValue  decimal.Decimal `json:"totalValue"`
	ByStatus    []StatusCount   `json:"byStatus"`
}

// ByManager groups assets by manager ID. Managers missing from the directory
// keep their ID with an empty name. Ordered by total value, highest first.
func ByManager(s state.State) []ManagerTotal {
	idx := make(map[string]int)
	var out []ManagerTotal
	for _, a := range s.Assets {
		i, ok := idx[a.ManagerID]
		if !ok {
			i = len(out)
			idx[a.ManagerID] = i
			mt := ManagerTotal{ManagerID: a.ManagerID}
			if u, found := s.FindUser(a.ManagerID); found {
				mt.ManagerName = u.Name
			}
			out = append(out, mt)
		}
		out[i].Count++
		out[i].Total = out[i].Total.Add(a.Price)
	}
	slices.SortFunc(out, func(a, b ManagerTotal) int {
		if c := b.Total.Cmp(a.Total); c != 0 {
			return c
		}
		return cmp.Compare(a.ManagerID, b.ManagerID)
	})
	return out
}

// ByStatus returns one row per known status, in display order, including
// statuses with no assets.
func ByStatus(s state.State) []StatusCount {
	out := make([]StatusCount, len(model.AssetStatuses))
	idx := make(map[model.AssetStatus]int, len(model.AssetStatuses))
	for i, st := range model.AssetStatuses {
		out[i] = StatusCount{Status: st, Label: st.Label()}
		idx[st] = i
	}
	for _, a := range s.Assets {
		i, ok := idx[a.Status]
		if !ok {
			continue
		}
		out[i].Count++
		out[i].Total = out[i].Total.Add(a.Price)
	}
	return out
}

// ByLocation groups assets by location label. Ordered by total value,
// highest first.
func ByLocation(s state.State) []LocationTotal {
	idx := make(map[string]int)
	var out []LocationTotal
	for _, a := range s.Assets {
		i, ok := idx[a.Location]
		if !ok {
			i = len(out)
			idx[a.Location] = i
			out = append(out, LocationTotal{Location: a.Location})
		}
		out[i].Count++
		out[i].Total = out[i].Total.Add(a.Price)
	}
	slices.SortFunc(out, func(a, b LocationTotal) int {
		if c := b.Total.Cmp(a.Total); c != 0 {
			return c
		}
		return cmp.Compare(a.Location, b.Location)
	})
	return out
}

// Summarize returns the dashboard headline for s.
func Summarize(s state.State) Summary {
	sum := Summary{TotalAssets: len(s.Assets), ByStatus: ByStatus(s)}
	for _, a := range s.Assets {
		sum.TotalValue = sum.TotalValue.Add(a.Price)
	}
	return sum
}
