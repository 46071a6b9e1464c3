package comps

import (
	"fmt"

	"github.com/KimGeorgy/bird-migration/structs"
)

// BuildError is returned when an index can not be constructed from its input
// table. It is fatal at load time.
type BuildError struct {
	Cell   structs.CellID
	Reason string
	Err    error
}

func (self *BuildError) Error() string {
	msg := "build failed: " + self.Reason
	if self.Cell != "" {
		msg = fmt.Sprintf("build failed: cell %q: %s", self.Cell, self.Reason)
	}
	if self.Err != nil {
		msg += ": " + self.Err.Error()
	}
	return msg
}

func (self *BuildError) Unwrap() error {
	return self.Err
}
