// Package analysis summarizes the state trace of a run.
//
// The trace is the sequence of sampled quantum states a run stores:
//
//   - [Occupation]: fraction of the run spent at each principal level
//   - [Dwell]: mean uninterrupted time at each level
//   - [Jumps]: counts of level changes between consecutive samples
//
// # Sampling
//
// Transitions that start and end between two samples are not seen. Sample
// every step to count every jump:
//
//	summary := analysis.Analyze(samples)
//	fmt.Print(summary.Format())
package analysis
