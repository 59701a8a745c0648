package loader

import "fmt"

// Location names a line within a loaded source file, for diagnostics.
// Grounded on gothird/internal/fileinput.Location; the shape survives even
// though the queueing reader it was attached to does not (see DESIGN.md).
type Location struct {
	Name string
	Line int
}

func (loc Location) String() string { return fmt.Sprintf("%v:%v", loc.Name, loc.Line) }
