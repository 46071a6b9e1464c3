package comps

import (
	"github.com/KimGeorgy/bird-migration/attr"
	"github.com/KimGeorgy/bird-migration/structs"
	. "github.com/KimGeorgy/bird-migration/util"
)

//*******************************************
// role classifier
//*******************************************

type RoleOptions struct {
	WinteringAttr string  `yaml:"wintering-attribute"`
	BreedingAttr  string  `yaml:"breeding-attribute"`
	Threshold     float64 `yaml:"threshold"`
}

func DefaultRoleOptions() RoleOptions {
	return RoleOptions{
		WinteringAttr: attr.VALUE_WINTERING,
		BreedingAttr:  attr.VALUE_BREEDING,
		Threshold:     0,
	}
}

// Roles holds the cells valid as route origin (departure) and as route
// target (destination). The sets are not disjoint.
type Roles struct {
	Departure   Set[structs.CellID]
	Destination Set[structs.CellID]
}

func (self *Roles) IsDeparture(id structs.CellID) bool {
	return self.Departure.Contains(id)
}
func (self *Roles) IsDestination(id structs.CellID) bool {
	return self.Destination.Contains(id)
}

// A cell is a departure cell iff its wintering value is strictly greater
// than the threshold and a destination cell iff its breeding value is.
// Missing attributes count as zero.
func ClassifyRoles(cells []structs.Cell, opts RoleOptions) Roles {
	if opts.WinteringAttr == "" {
		opts.WinteringAttr = attr.VALUE_WINTERING
	}
	if opts.BreedingAttr == "" {
		opts.BreedingAttr = attr.VALUE_BREEDING
	}
	roles := Roles{
		Departure:   NewSet[structs.CellID](len(cells) / 2),
		Destination: NewSet[structs.CellID](len(cells) / 2),
	}
	for i := range cells {
		cell := &cells[i]
		if cell.Attribute(opts.WinteringAttr) > opts.Threshold {
			roles.Departure.Add(cell.ID)
		}
		if cell.Attribute(opts.BreedingAttr) > opts.Threshold {
			roles.Destination.Add(cell.ID)
		}
	}
	return roles
}
