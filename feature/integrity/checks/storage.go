package checks

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"inventory-sync/core/storage"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

func marker(prefix string) string {
	return strings.Trim(prefix, "/") + "/"
}

// CheckStorage returns the prefixes that hold no object in the bucket.
func CheckStorage(ctx context.Context, client storage.Client, bucket string, prefixes []string) ([]string, error) {
	missing := []string{}

	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("bucket %s does not exist", bucket)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	for _, prefix := range prefixes {
		opts := minio.ListObjectsOptions{
			Prefix:    marker(prefix),
			Recursive: false,
			MaxKeys:   1,
		}

		found := false
		for obj := range client.ListObjects(ctx, bucket, opts) {
			if obj.Err != nil {
				return nil, fmt.Errorf("failed to list %s: %w", prefix, obj.Err)
			}
			found = true
			break
		}

		if !found {
			missing = append(missing, prefix)
		}
	}

	return missing, nil
}

// FixStorage creates an empty marker object for every missing prefix.
func FixStorage(ctx context.Context, client storage.Client, bucket string, logger *zap.Logger, missing []string) error {
	for _, prefix := range missing {
		_, err := client.PutObject(ctx, bucket, marker(prefix), bytes.NewReader([]byte{}), 0, minio.PutObjectOptions{})
		if err != nil {
			logger.Error("Failed to create prefix marker", zap.String("prefix", prefix), zap.Error(err))
			return fmt.Errorf("failed to create marker for %s: %w", prefix, err)
		}
		logger.Info("Created missing prefix marker", zap.String("prefix", prefix))
	}
	return nil
}
