// Package classifier labels shapes as diagram or handwriting by weighted
// heuristic voting over their descriptor features.
//
// Each feature check adds a fixed weight to either the diagram or the
// handwriting accumulator. With conf = diagram / (diagram + handwriting):
//
//   - conf >= 0.7 yields Diagram with confidence conf
//   - conf <= 0.3 yields Handwriting with confidence 1 - conf
//   - anything in between yields Handwriting with confidence 0.6
//   - no votes at all yields Uncertain with confidence 0.5
//
// The scorer never emits Connector. Connectors are found afterwards by
// Partition, which promotes elongated, fairly straight handwriting strokes
// that are shorter than half the page. All thresholds and weights come from
// an injected Config.
package classifier
