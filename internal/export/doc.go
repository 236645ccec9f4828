// Package export writes run trajectories as SVG.
package export
