// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client behind the Client interface so Device42 exports
// can be read and sync reports archived against AWS S3 or a self-hosted MinIO,
// and so tests can substitute the testify mock in core/storage/mocks.
//
// # Layout
//
// A single bucket holds two prefixes: ExportPrefix with one <kind>.json or
// <kind>.yaml object per Device42 record kind, and ReportPrefix with one
// <run_id>.json object per sync run.
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage)
//	created, err := storage.EnsureBucket(ctx, client, cfg.Storage.Bucket, cfg.Storage.Region)
package storage
