// Package layout defines the data model for facility layouts: the closed
// element type enumeration, placed elements, the layout container, and the
// violation records produced by validation.
//
// A Layout is a plain value: a bounded 2D plane (y grows downward) holding a
// flat list of rectangular elements, each optionally rotated about its own
// center. Layouts are immutable inputs to validation - nothing in this module
// ever mutates one.
//
// # Serialization
//
// Layouts travel as JSON. ReadLayout and ReadLayoutFile decode and structurally
// check a layout in one step, failing fast on malformed numerics or duplicate
// element IDs rather than letting bad data degrade into confusing validation
// output:
//
//	l, err := layout.ReadLayoutFile("lot.json")
//	if err != nil {
//	    return err
//	}
//
// # Violations
//
// Violation is the single output record type of the validation engine. The
// sentinel subject GlobalID marks layout-wide findings (e.g. a missing
// entrance) that have no single offending element.
package layout
