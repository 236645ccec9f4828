// Package automation runs batches of simulations: YAML scripted scenarios
// and seeded Monte Carlo stability trials.
package automation
