package attr

//*******************************************
// abundance table columns
//*******************************************

const (
	LAT             = "lat"
	LNG             = "lng"
	VALUE_WINTERING = "value_wintering"
	VALUE_BREEDING  = "value_breeding"
)

// Columns every abundance table must provide.
var REQUIRED_COLUMNS = []string{LAT, LNG, VALUE_WINTERING, VALUE_BREEDING}
