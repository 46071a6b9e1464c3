package comps

import (
	"testing"

	"github.com/KimGeorgy/bird-migration/structs"
)

func TestClassifyRoles(t *testing.T) {
	cells := []structs.Cell{
		{ID: "A", Attributes: map[string]float64{"value_wintering": 5, "value_breeding": 0}},
		{ID: "B", Attributes: map[string]float64{"value_wintering": 0, "value_breeding": 3}},
		{ID: "both", Attributes: map[string]float64{"value_wintering": 0.1, "value_breeding": 0.2}},
		{ID: "none", Attributes: map[string]float64{"value_wintering": 0, "value_breeding": -1}},
		{ID: "missing"},
	}
	roles := ClassifyRoles(cells, DefaultRoleOptions())

	if roles.Departure.Length() != 2 || !roles.IsDeparture("A") || !roles.IsDeparture("both") {
		t.Errorf("Departure = %v; want A, both", roles.Departure)
	}
	if roles.Destination.Length() != 2 || !roles.IsDestination("B") || !roles.IsDestination("both") {
		t.Errorf("Destination = %v; want B, both", roles.Destination)
	}
	if roles.IsDeparture("none") || roles.IsDestination("none") || roles.IsDeparture("missing") {
		t.Errorf("none and missing should hold no role")
	}
}

func TestClassifyRolesOptions(t *testing.T) {
	cells := []structs.Cell{
		{ID: "A", Attributes: map[string]float64{"w": 2, "b": 0.5}},
		{ID: "B", Attributes: map[string]float64{"w": 1, "b": 3}},
	}
	roles := ClassifyRoles(cells, RoleOptions{WinteringAttr: "w", BreedingAttr: "b", Threshold: 1})
	if !roles.IsDeparture("A") || roles.IsDeparture("B") {
		t.Errorf("Departure = %v; want only A (strictly above threshold)", roles.Departure)
	}
	if !roles.IsDestination("B") || roles.IsDestination("A") {
		t.Errorf("Destination = %v; want only B", roles.Destination)
	}
}
