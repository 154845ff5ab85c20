package service

import (
	"sort"

	"github.com/civicpulse/backend/internal/models"
)

// ResponsibilityTable resolves the accountable (department, contractor) pair
// for a (ward, category). The table is built once at startup and read-only
// after that. Lookups never fail: unknown wards and unmapped categories fall
// back to the generic pair.
type ResponsibilityTable struct {
	wards       map[string]models.Ward
	contractors map[string]models.Contractor
	fallback    models.Responsibility
}

func NewResponsibilityTable(wards []models.Ward, contractors []models.Contractor, fallback models.Responsibility) *ResponsibilityTable {
	t := &ResponsibilityTable{
		wards:       make(map[string]models.Ward, len(wards)),
		contractors: make(map[string]models.Contractor, len(contractors)),
		fallback:    fallback,
	}
	for _, w := range wards {
		t.wards[w.ID] = w
	}
	for _, c := range contractors {
		t.contractors[c.ID] = c
	}
	return t
}

func (t *ResponsibilityTable) Resolve(wardID string, category models.Category) models.Responsibility {
	ward, ok := t.wards[wardID]
	if !ok {
		return t.fallback
	}
	resp, ok := ward.Mappings[category]
	if !ok {
		return t.fallback
	}
	return resp
}

func (t *ResponsibilityTable) WardName(wardID string) string {
	if w, ok := t.wards[wardID]; ok {
		return w.Name
	}
	return "Unknown Ward"
}

func (t *ResponsibilityTable) ContractorName(contractorID string) string {
	if c, ok := t.contractors[contractorID]; ok {
		return c.Name
	}
	return "Unknown Contractor"
}

func (t *ResponsibilityTable) Wards() []models.Ward {
	out := make([]models.Ward, 0, len(t.wards))
	for _, w := range t.wards {
		out = append(out, w)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (t *ResponsibilityTable) Contractors() []models.Contractor {
	out := make([]models.Contractor, 0, len(t.contractors))
	for _, c := range t.contractors {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
