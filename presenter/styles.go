package presenter

//*******************************************
// style hints
//*******************************************

type Style struct {
	FillColor   string  `json:"fillColor"`
	Color       string  `json:"color"`
	Weight      float64 `json:"weight"`
	FillOpacity float64 `json:"fillOpacity"`
}

var (
	GRID_STYLE    = Style{FillColor: "wheat", Color: "tan", Weight: 0.3, FillOpacity: 0.3}
	BARRIER_STYLE = Style{FillColor: "red", Color: "red", Weight: 2, FillOpacity: 0.35}
	ORIGIN_STYLE  = Style{FillColor: "green", Color: "green", Weight: 2, FillOpacity: 0.6}
	TARGET_STYLE  = Style{FillColor: "red", Color: "red", Weight: 2, FillOpacity: 0.6}
	ROUTE_STYLE   = Style{Color: "blue", Weight: 4}
)

const (
	MSG_SELECT_CELLS = "Select origin and target cells to see route details."
	MSG_NO_ROUTE     = "No route found"
)
