// Package optim sweeps scene parameters over a grid and ranks the runs by a
// metric.
package optim
