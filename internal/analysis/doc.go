// Package analysis summarizes rendered frames.
//
//   - [Summarize]: escape ratio, iteration extremes and palette band usage
//   - [Histogram]: iteration counts of escaped pixels, binned
//   - [ZoomSweep]: repeated zoom toward a point, one summary per step
//
// # Example
//
//	stats := analysis.Summarize(frame)
//	fmt.Printf("%.1f%% inside\n", 100*stats.InsideRatio)
package analysis
