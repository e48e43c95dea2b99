// Package viz provides a terminal live view of a running cell simulation.
//
// The package implements an interactive TUI using the Bubble Tea framework:
//
//   - [Model]: bubbletea program stepping one cell per frame tick
//   - Recent membrane potential history plotted with asciigraph
//   - Live parameter tuning for models implementing [cell.Configurable]
//
// # Key Bindings
//
//	Space - Pause/Resume simulation
//	R     - Reset to initial state
//	Tab   - Cycle tunable parameters
//	Up/K  - Increase selected parameter (+5%)
//	Down/J- Decrease selected parameter (-5%)
//	+/-   - More/fewer integration steps per frame
//	?     - Show help overlay
//	Q     - Quit
package viz
