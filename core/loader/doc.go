// Package loader wires features into the Fiber application.
//
// A feature is a self-contained unit (the vault validation API, the report
// downloads) that knows its own routes. Features implement:
//
//	type Feature interface {
//	    Name() string
//	    IsEnabled() bool
//	    Load(app fiber.Router) error
//	}
//
// The Manager collects registered features and LoadAll mounts the enabled
// ones in registration order, skipping disabled features and stopping at
// the first load failure.
package loader
