// Package storage fetches stack files from S3-compatible object storage.
//
// It wraps the MinIO Go client behind a one-method Client interface so stack
// loading can be tested with core/storage/mocks. Locations of the form
// s3://bucket/key are resolved through it.
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage)
//	obj, err := client.GetObject(ctx, "stacks", "prod/stack.yaml", minio.GetObjectOptions{})
package storage
