// Package sync orchestrates a reconciliation run.
//
// A run loads the Device42 snapshot and the target snapshot, diffs them with
// core/reconcile and, when confirmed, applies the plan. Loader issues are carried
// into the run report together with the outcome of every operation.
//
// # Runs
//
// Identical triggers that arrive while a run is in flight share its result;
// any other run waits until the current one has finished. The report of the
// last run is kept in memory and every report is archived to the storage
// bucket as <report_prefix>/<run_id>.json. Older archives beyond the configured
// retention are removed after each upload.
//
// # Endpoints
//
//   - POST /sync?dry_run=&confirm=&delete=
//   - GET /sync/plan?delete=
//   - GET /sync/report
//   - GET /sync/reports
//   - GET /sync/reports/:id
package sync
