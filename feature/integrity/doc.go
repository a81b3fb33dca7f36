// Package integrity provides health checks for the sync infrastructure.
//
// # Checks Provided
//
//   - Storage: Checks that the bucket exists and holds the Device42 export and report prefixes.
//   - Schema: Validates that every inventory table exists in the target database with the columns its model expects.
//   - Source: Pings Device42 (or verifies the export prefix when syncing from exports).
//
// # HTTP Endpoints
//
//   - GET /integrity : Runs all checks.
//   - GET /integrity/storage : Runs the storage check (supports ?fix=true).
//   - GET /integrity/schema : Runs the schema check (supports ?fix=true to migrate).
//   - GET /integrity/source : Runs the source check.
package integrity
