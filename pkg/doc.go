// Package pkg provides the core libraries for Lotcheck layout validation.
//
// # Overview
//
// Lotcheck checks 2D facility layouts (parking garages, depots, lots) for
// geometric legality: elements must stay on the plane, must not interpenetrate,
// surface-bound elements must sit on or off roads as their kind requires, and
// every entrance must offer a drivable path to an exit. The pkg directory is
// organized into five main areas:
//
//  1. [layout] - Data model (elements, layouts, violations, reports)
//  2. [geometry] - Rotated-rectangle kernel (corners, SAT, overlap classification)
//  3. [spatial] - Uniform-grid broad phase for candidate pair pruning
//  4. [rules] - Pair rule table, element type sets, and the threshold policy
//  5. [validate] - The four-pass validation engine
//
// # Architecture
//
// The data flow through a validation run:
//
//	Layout JSON
//	     ↓
//	[layout] package (decode + structural checks)
//	     ↓
//	[spatial] package (index rotation-aware footprints)
//	     ↓
//	[validate] package (bounds → overlap → placement → connectivity,
//	    consulting [geometry] and [rules])
//	     ↓
//	Violation report (JSON)
//
// # Quick Start
//
// Validate a layout with the default policy:
//
//	import (
//	    "github.com/matzehuels/lotcheck/pkg/layout"
//	    "github.com/matzehuels/lotcheck/pkg/validate"
//	)
//
//	l, _ := layout.ReadLayoutFile("garage.json")
//	violations := validate.ValidateLayout(l)
//	report := layout.NewReport(violations)
//
// Tune thresholds with a policy:
//
//	pol, _ := rules.LoadPolicy("policy.toml")
//	engine := validate.New(pol)
//	violations := engine.Validate(l)
//
// # Supporting Packages
//
// [cache] - Report cache keyed by a content hash of layout and policy, with
// file, Redis, and null backends.
//
// [errors] - Structured error codes shared by the CLI and the HTTP API.
//
// [buildinfo] - Build-time version information injected via ldflags.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...              # All tests
//	go test ./pkg/validate/...     # Specific package
//
// [layout]: https://pkg.go.dev/github.com/matzehuels/lotcheck/pkg/layout
// [geometry]: https://pkg.go.dev/github.com/matzehuels/lotcheck/pkg/geometry
// [spatial]: https://pkg.go.dev/github.com/matzehuels/lotcheck/pkg/spatial
// [rules]: https://pkg.go.dev/github.com/matzehuels/lotcheck/pkg/rules
// [validate]: https://pkg.go.dev/github.com/matzehuels/lotcheck/pkg/validate
// [cache]: https://pkg.go.dev/github.com/matzehuels/lotcheck/pkg/cache
// [errors]: https://pkg.go.dev/github.com/matzehuels/lotcheck/pkg/errors
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/lotcheck/pkg/buildinfo
package pkg
