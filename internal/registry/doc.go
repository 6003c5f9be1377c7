// Package registry records the commands an application exposes.
//
// A Registry is written once during setup and read during dispatch. Names
// are derived from handler identifiers and must be unique after derivation.
// The first run freezes the registry; later registrations fail.
package registry
