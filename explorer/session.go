package explorer

import (
	"github.com/KimGeorgy/bird-migration/selection"
	"github.com/KimGeorgy/bird-migration/structs"
	. "github.com/KimGeorgy/bird-migration/util"
)

//**********************************************************
// session
//**********************************************************

// Session is the selection state of one user. Not safe for concurrent use.
type Session struct {
	explorer   *Explorer
	controller *selection.Controller
}

type ClickResult struct {
	Cell    Optional[structs.CellID] `json:"cell"`
	State   selection.State          `json:"state"`
	Warning string                   `json:"warning,omitempty"`
}

// Handles one map click: resolves the point and applies the selection.
//
// A click outside all cells leaves the state unchanged. A cell with the
// wrong role is reported as a warning.
func (self *Session) Click(lon, lat float64) ClickResult {
	cell := self.explorer.ResolvePoint(lon, lat)
	if !cell.HasValue() {
		return ClickResult{Cell: cell, State: self.controller.State()}
	}
	state, err := self.controller.Select(cell.Value)
	res := ClickResult{Cell: cell, State: state}
	if err != nil {
		res.Warning = err.Error()
	}
	return res
}

func (self *Session) Select(id structs.CellID) (selection.State, error) {
	return self.controller.Select(id)
}

func (self *Session) Reset() selection.State {
	return self.controller.Reset()
}

func (self *Session) State() selection.State {
	return self.controller.State()
}

func (self *Session) CurrentRoute() Optional[structs.RouteRecord] {
	return self.controller.CurrentRoute()
}

func (self *Session) Explorer() *Explorer {
	return self.explorer
}
