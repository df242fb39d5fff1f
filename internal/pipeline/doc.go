// Package pipeline runs detail assembly steps in sequence and fetches
// batches of resources concurrently while preserving input order.
//
// A Pipeline executes Steps one after another against a shared
// *model.DetailView. By default the first failing step stops the run;
// WithContinueOnError lets later steps execute and records the failure
// on the view instead.
//
// A BatchProcessor fans a slice of inputs out to a fetch function with a
// bounded number of goroutines (errgroup.SetLimit). Results are written
// to pre-allocated, index-addressed slots, so the output order always
// matches the input order regardless of completion order. ProcessBatch
// is all-or-nothing: if any item fails, no results are returned.
package pipeline
