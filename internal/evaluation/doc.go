// Package evaluation scores batches of predicted/ground-truth frames with the
// point metric and summarises the run.
//
// A Harness scores frames on a bounded worker pool, keeps results in input
// order and records per-frame validation failures without aborting the run.
// Reports can be rendered as a PNG histogram (gonum/plot) or an HTML page
// (go-echarts), and persisted through internal/store.
package evaluation
