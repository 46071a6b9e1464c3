package main

type SessionRequest struct{}

type CloseSessionRequest struct {
	Session string `json:"session"`
}

type ResolveRequest struct {
	Lon *float64 `json:"lon"`
	Lat *float64 `json:"lat"`
}

type CellsRequest struct {
	Role string `json:"role"`
}

type CellRequest struct {
	Cell string `json:"cell"`
}

// Either Cell or both Lon and Lat must be given.
type SelectRequest struct {
	Session string   `json:"session"`
	Cell    *string  `json:"cell"`
	Lon     *float64 `json:"lon"`
	Lat     *float64 `json:"lat"`
}

type ResetRequest struct {
	Session string `json:"session"`
}

type RouteRequest struct {
	Session string `json:"session"`
}

type LayersRequest struct {
	Session string `json:"session"`
	Grid    string `json:"grid"`
}

type ReloadRequest struct{}
