// Package pipeline provides a framework for executing analysis steps in sequence.
//
// A run loads the catalog, filters out stars without a rotation period,
// classifies the rest by distance, aggregates the near group, bins both groups
// and renders the figure. Each stage is a Step that receives the current
// model.Analysis and fills in its part.
//
// Steps run in order with consistent logging, and the run stops at the first
// failing step unless configured otherwise. Context cancellation is checked
// between steps.
package pipeline
