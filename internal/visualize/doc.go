// Package visualize renders the human-viewable outputs of a coverage run:
// an annotated overlay of the binary mask and a per-section bar chart.
//
// Nothing here recomputes geometry. The overlay draws the section bounds
// and percentages carried by the spray.CoverageReport it is given.
package visualize
