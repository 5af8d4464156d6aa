// Package telemetry provides Prometheus metrics and OpenTelemetry tracing
// for render passes.
//
// Metrics collected (namespace defaults to "vlite"):
//   - vlite_render_passes_total: render passes by status
//   - vlite_render_pass_duration_seconds: render pass duration
//   - vlite_full_rebuilds_total: rebuilds by scope (forest, children, item)
//   - vlite_patches_total: in-place patches applied to existing host nodes
//   - vlite_keyed_ops_total: keyed-list operations by op (insert, move, remove)
//   - vlite_state_updates_total: state merges by trigger mode
//
// A nil *Metrics is valid and records nothing, so components can take one
// unconditionally.
package telemetry
