// Package analysis extracts periodic structure from recorded runs.
//
//   - [SeparationRecorder]: records the wrapped distance between two black holes
//   - [PowerSpectrum]: one-sided magnitude spectrum of a real series
//   - [DominantPeriod]: period of the strongest non-constant frequency
//
// # Orbital Periods
//
// Two bound holes oscillate in separation. Recording the separation each
// step and taking the dominant period gives their orbital period in
// simulation time:
//
//	rec := analysis.NewSeparationRecorder(0, 1)
//	s.AddObserver(rec)
//	s.Run(ctx, 4096, nil)
//	period, err := analysis.DominantPeriod(rec.Samples(), params.Dt)
package analysis
