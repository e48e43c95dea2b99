// Package models provides cardiac cell membrane models for simulation.
//
// Each model implements the [cell.Model] interface, defining the ionic
// current equations that shape the action potential:
//
//   - [FentonKarma]: three-current ventricular model (fast inward,
//     slow outward, slow inward) with two recovery gates
//   - [AlievPanfilov]: two-variable excitable medium model
//
// Both models implement [cell.Configurable] for runtime parameter
// adjustment; setters validate and reject values that would make the
// equations meaningless.
//
// # Units
//
// Time constants are in milliseconds and the membrane variable u is
// dimensionless, normalized so rest sits at 0 and the action potential
// plateau near 1, following Fenton and Karma (1998).
package models
