// Package analysis provides action potential analysis tools.
//
// The package characterizes simulated membrane traces:
//
//   - [DetectAPs]: threshold crossings with sub-sample interpolation
//   - [APDs], [DiastolicIntervals]: duration and recovery sequences
//   - [Restitution]: parallel S1S2 sweep of APD versus diastolic interval
//   - [Slope]: fitted restitution slope, the classical alternans criterion
//   - [PowerSpectrum], [DominantFrequency]: spectral content of a trace
//
// # Restitution
//
// Steep restitution predicts alternans under rapid pacing:
//
//	points, err := analysis.Restitution(ctx, model, newInteg, s1, intervals, cfg, 0.1)
//	if analysis.Slope(points) > 1 {
//	    // beat-to-beat APD oscillation expected
//	}
package analysis
