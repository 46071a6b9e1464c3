package main

import (
	"github.com/KimGeorgy/bird-migration/presenter"
	"github.com/KimGeorgy/bird-migration/selection"
	"github.com/KimGeorgy/bird-migration/structs"
	. "github.com/KimGeorgy/bird-migration/util"
)

type ErrorResponse struct {
	Request string `json:"request"`
	Error   any    `json:"error"`
}

func NewErrorResponse(request string, error any) ErrorResponse {
	return ErrorResponse{
		Request: request,
		Error:   error,
	}
}

type SessionResponse struct {
	Session string          `json:"session"`
	State   selection.State `json:"state"`
}

type CloseSessionResponse struct {
	Session string `json:"session"`
	Closed  bool   `json:"closed"`
}

type ResolveResponse struct {
	Cell Optional[structs.CellID] `json:"cell"`
}

type CellsResponse struct {
	Role  string               `json:"role"`
	Count int                  `json:"count"`
	Cells List[structs.CellID] `json:"cells"`
}

type SelectResponse struct {
	Cell    Optional[structs.CellID]      `json:"cell"`
	State   selection.State               `json:"state"`
	Warning string                        `json:"warning,omitempty"`
	Route   Optional[structs.RouteRecord] `json:"route"`
	Message string                        `json:"message,omitempty"`
}

type RouteResponse struct {
	Route   Optional[structs.RouteRecord] `json:"route"`
	Details *presenter.RouteDetails       `json:"details,omitempty"`
	Message string                        `json:"message,omitempty"`
}

type ReloadResponse struct {
	Reloaded bool   `json:"reloaded"`
	Version  string `json:"version"`
}
