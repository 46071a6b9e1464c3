package selection

import (
	"encoding/json"

	"github.com/KimGeorgy/bird-migration/structs"
	. "github.com/KimGeorgy/bird-migration/util"
)

//*******************************************
// collaborators
//*******************************************

type IRoleSets interface {
	IsDeparture(id structs.CellID) bool
	IsDestination(id structs.CellID) bool
}

type IRouteSource interface {
	Get(origin, destination structs.CellID) Optional[structs.RouteRecord]
}

//*******************************************
// selection state
//*******************************************

type Phase byte

const (
	EMPTY      Phase = 0
	ORIGIN_SET Phase = 1
	COMPLETE   Phase = 2
)

func (self Phase) String() string {
	switch self {
	case EMPTY:
		return "empty"
	case ORIGIN_SET:
		return "origin_set"
	case COMPLETE:
		return "complete"
	default:
		panic("unknown phase")
	}
}
func (self Phase) MarshalJSON() ([]byte, error) {
	return json.Marshal(self.String())
}

type State struct {
	Origin Optional[structs.CellID] `json:"origin"`
	Target Optional[structs.CellID] `json:"target"`
}

func (self State) Phase() Phase {
	switch {
	case self.Target.HasValue():
		return COMPLETE
	case self.Origin.HasValue():
		return ORIGIN_SET
	default:
		return EMPTY
	}
}

func (self State) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Phase  Phase                    `json:"phase"`
		Origin Optional[structs.CellID] `json:"origin"`
		Target Optional[structs.CellID] `json:"target"`
	}{self.Phase(), self.Origin, self.Target})
}

//*******************************************
// selection controller
//*******************************************

// Controller holds at most one origin and one target selection.
//
// Once both are set the selection is frozen until Reset, so the displayed
// route stays stable. A Controller belongs to one session and is not safe
// for concurrent use.
type Controller struct {
	roles  IRoleSets
	routes IRouteSource
	state  State
	route  Optional[structs.RouteRecord]
}

func NewController(roles IRoleSets, routes IRouteSource) *Controller {
	return &Controller{
		roles:  roles,
		routes: routes,
	}
}

// Applies a cell selection.
//
// Returns an *InvalidRoleError if the cell can not take the role of the
// next free slot, the state is unchanged in that case. Selecting in the
// complete state is ignored.
func (self *Controller) Select(id structs.CellID) (State, error) {
	switch self.state.Phase() {
	case EMPTY:
		if !self.roles.IsDeparture(id) {
			return self.state, &InvalidRoleError{Role: DEPARTURE, Cell: id}
		}
		self.state.Origin = Some(id)
	case ORIGIN_SET:
		if !self.roles.IsDestination(id) {
			return self.state, &InvalidRoleError{Role: DESTINATION, Cell: id}
		}
		self.state.Target = Some(id)
		self.route = self.routes.Get(self.state.Origin.Value, id)
	case COMPLETE:
	}
	return self.state, nil
}

// Clears both slots.
func (self *Controller) Reset() State {
	self.state = State{}
	self.route = None[structs.RouteRecord]()
	return self.state
}

func (self *Controller) State() State {
	return self.state
}

// Returns the route between origin and target, empty unless the selection
// is complete and a precomputed route exists.
func (self *Controller) CurrentRoute() Optional[structs.RouteRecord] {
	return self.route
}
