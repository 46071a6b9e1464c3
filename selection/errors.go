package selection

import (
	"encoding/json"
	"errors"

	"github.com/KimGeorgy/bird-migration/structs"
)

//*******************************************
// roles
//*******************************************

type Role byte

const (
	DEPARTURE   Role = 0
	DESTINATION Role = 1
)

func (self Role) String() string {
	switch self {
	case DEPARTURE:
		return "departure"
	case DESTINATION:
		return "destination"
	default:
		panic("unknown role")
	}
}
func (self Role) MarshalJSON() ([]byte, error) {
	return json.Marshal(self.String())
}

func RoleFromString(s string) (Role, error) {
	switch s {
	case "departure":
		return DEPARTURE, nil
	case "destination":
		return DESTINATION, nil
	default:
		return DEPARTURE, errors.New("unknown role")
	}
}

//*******************************************
// invalid role error
//*******************************************

// InvalidRoleError reports a click on a cell that can not take the role
// requested by the current state. It is a user-facing warning, the
// selection state stays unchanged.
type InvalidRoleError struct {
	Role Role
	Cell structs.CellID
}

func (self *InvalidRoleError) Error() string {
	return "not a valid " + self.Role.String() + " cell"
}

func IsInvalidRole(err error) bool {
	var role_err *InvalidRoleError
	return errors.As(err, &role_err)
}
