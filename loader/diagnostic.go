package loader

import "fmt"

// Diagnostic is one compiler error report, addressed at the Location it
// occurred at, per spec §7: parsing always resumes and keeps gathering
// further diagnostics rather than aborting on the first.
type Diagnostic struct {
	Location
	Message string
}

func (d Diagnostic) String() string { return fmt.Sprintf("%v: %v", d.Location, d.Message) }
