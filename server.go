package main

import (
	"context"
	"net/http"
	"strconv"

	"github.com/KimGeorgy/bird-migration/explorer"
	"github.com/KimGeorgy/bird-migration/presenter"
	"github.com/KimGeorgy/bird-migration/selection"
	"github.com/KimGeorgy/bird-migration/structs"
	. "github.com/KimGeorgy/bird-migration/util"
)

//**********************************************************
// http api
//**********************************************************

func NewServer(manager *ExplorerManager) *http.ServeMux {
	app := http.NewServeMux()

	MapPost(app, "/v0/session", func(req SessionRequest) Result {
		return HandleCreateSession(manager, req)
	})
	MapPost(app, "/v0/session/close", func(req CloseSessionRequest) Result {
		return HandleCloseSession(manager, req)
	})
	MapGet(app, "/v0/resolve", func(req ResolveRequest) Result {
		return HandleResolve(manager, req)
	})
	MapGet(app, "/v0/cells", func(req CellsRequest) Result {
		return HandleCells(manager, req)
	})
	MapGet(app, "/v0/cell", func(req CellRequest) Result {
		return HandleCellGeometry(manager, req)
	})
	MapPost(app, "/v0/select", func(req SelectRequest) Result {
		return HandleSelect(manager, req)
	})
	MapPost(app, "/v0/reset", func(req ResetRequest) Result {
		return HandleReset(manager, req)
	})
	MapGet(app, "/v0/route", func(req RouteRequest) Result {
		return HandleRoute(manager, req)
	})
	MapGet(app, "/v0/layers", func(req LayersRequest) Result {
		return HandleLayers(manager, req)
	})
	MapPost(app, "/v0/reload", func(req ReloadRequest) Result {
		return HandleReload(manager, req)
	})
	app.Handle("GET /metrics", manager.Metrics().Handler())

	return app
}

//**********************************************************
// handlers
//**********************************************************

func HandleCreateSession(manager *ExplorerManager, req SessionRequest) Result {
	exp := manager.Explorer()
	id := manager.Sessions().Create(exp)
	resp := SessionResponse{Session: id}
	manager.Sessions().With(id, func(session *explorer.Session) {
		resp.State = session.State()
	})
	return OK(resp)
}

func HandleCloseSession(manager *ExplorerManager, req CloseSessionRequest) Result {
	if !manager.Sessions().Delete(req.Session) {
		return NotFound("unknown session")
	}
	return OK(CloseSessionResponse{Session: req.Session, Closed: true})
}

func HandleResolve(manager *ExplorerManager, req ResolveRequest) Result {
	if req.Lon == nil || req.Lat == nil {
		return BadRequest("lon and lat are required")
	}
	cell := manager.Explorer().ResolvePoint(*req.Lon, *req.Lat)
	return OK(ResolveResponse{Cell: cell})
}

func HandleCells(manager *ExplorerManager, req CellsRequest) Result {
	role, err := selection.RoleFromString(req.Role)
	if err != nil {
		return BadRequest("role must be departure or destination")
	}
	exp := manager.Explorer()
	var set Set[structs.CellID]
	switch role {
	case selection.DEPARTURE:
		set = exp.GetDepartureCells()
	case selection.DESTINATION:
		set = exp.GetDestinationCells()
	}
	cells := SortedValues(set)
	return OK(CellsResponse{Role: role.String(), Count: cells.Length(), Cells: cells})
}

func HandleCellGeometry(manager *ExplorerManager, req CellRequest) Result {
	if req.Cell == "" {
		return BadRequest("missing cell")
	}
	cell := manager.Explorer().Cells().Cell(structs.CellID(req.Cell))
	if !cell.HasValue() {
		return NotFound("unknown cell " + req.Cell)
	}
	return OK(presenter.CellFeature(cell.Value))
}

func HandleSelect(manager *ExplorerManager, req SelectRequest) Result {
	if req.Cell == nil && (req.Lon == nil || req.Lat == nil) {
		return BadRequest("either cell or lon and lat are required")
	}
	metrics := manager.Metrics()
	var resp SelectResponse
	var failure error
	found := manager.Sessions().With(req.Session, func(session *explorer.Session) {
		before := session.State().Phase()
		var click explorer.ClickResult
		if req.Cell != nil {
			id := structs.CellID(*req.Cell)
			state, err := session.Select(id)
			click = explorer.ClickResult{Cell: Some(id), State: state}
			if err != nil {
				if !selection.IsInvalidRole(err) {
					failure = err
					return
				}
				click.Warning = err.Error()
			}
		} else {
			click = session.Click(*req.Lon, *req.Lat)
		}
		after := click.State.Phase()

		switch {
		case !click.Cell.HasValue():
			metrics.ObserveClick(CLICK_OUTSIDE)
		case click.Warning != "":
			metrics.ObserveClick(CLICK_INVALID)
		case before == selection.COMPLETE:
			metrics.ObserveClick(CLICK_IGNORED)
		default:
			metrics.ObserveClick(CLICK_SELECTED)
		}
		route := session.CurrentRoute()
		if before != selection.COMPLETE && after == selection.COMPLETE {
			metrics.ObserveLookup(route.HasValue())
		}

		resp = SelectResponse{
			Cell:    click.Cell,
			State:   click.State,
			Warning: click.Warning,
			Route:   route,
			Message: presenter.StatusMessage(click.State, route),
		}
	})
	if !found {
		return NotFound("unknown session")
	}
	if failure != nil {
		return InternalError(failure.Error())
	}
	return OK(resp)
}

func HandleReset(manager *ExplorerManager, req ResetRequest) Result {
	var resp SessionResponse
	found := manager.Sessions().With(req.Session, func(session *explorer.Session) {
		resp = SessionResponse{Session: req.Session, State: session.Reset()}
	})
	if !found {
		return NotFound("unknown session")
	}
	return OK(resp)
}

func HandleRoute(manager *ExplorerManager, req RouteRequest) Result {
	var resp RouteResponse
	found := manager.Sessions().With(req.Session, func(session *explorer.Session) {
		route := session.CurrentRoute()
		resp = RouteResponse{
			Route:   route,
			Message: presenter.StatusMessage(session.State(), route),
		}
		if route.HasValue() {
			details := presenter.BuildRouteDetails(route.Value)
			resp.Details = &details
		}
	})
	if !found {
		return NotFound("unknown session")
	}
	return OK(resp)
}

func HandleLayers(manager *ExplorerManager, req LayersRequest) Result {
	show_grid := manager.Config().Server.ShowGrid
	if req.Grid != "" {
		v, err := strconv.ParseBool(req.Grid)
		if err != nil {
			return BadRequest("grid must be true or false")
		}
		show_grid = v
	}
	var view presenter.MapView
	found := manager.Sessions().With(req.Session, func(session *explorer.Session) {
		view = presenter.BuildMapView(session, presenter.LayerOptions{ShowGrid: show_grid})
	})
	if !found {
		return NotFound("unknown session")
	}
	return OK(view)
}

func HandleReload(manager *ExplorerManager, req ReloadRequest) Result {
	reloaded, err := manager.Reload(context.Background())
	if err != nil {
		return InternalError(err.Error())
	}
	return OK(ReloadResponse{
		Reloaded: reloaded,
		Version:  strconv.FormatUint(manager.Version(), 16),
	})
}
