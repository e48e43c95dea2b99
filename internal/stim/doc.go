// Package stim provides stimulation protocols for cardiac cell
// simulations.
//
// Protocols implement the [cell.Stimulus] interface to deliver a
// current waveform over time:
//
//   - [Pulse]: single rectangular pulse
//   - [Train]: periodic pacing train
//   - [S1S2]: conditioning train followed by a premature extrastimulus
//   - [Sum]: superposition of other protocols
//   - [None]: no stimulus, quiescent cell
//
// # Usage
//
//	pulse := stim.NewPulse(1.0, 0.1, 0.2) // amplitude, start, duration
//	sim := cell.New(model, integ, pulse)
//
// All pulse windows are half-open: the current is non-zero on
// [start, start+duration) and zero at the right endpoint.
//
// Protocols implementing [cell.Configurable] support live tuning.
package stim
