package s3

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"

	"fleetfuel/internal/domain/entity"
	"fleetfuel/pkg/client/s3"
)

// ArchiveRepo stores each group's serialized filled table so downstream
// consumers can reuse the aligned timeline without recomputing it.
type ArchiveRepo struct {
	StorageS3 *s3.StorageS3
}

func NewArchiveRepo(storageS3 *s3.StorageS3) *ArchiveRepo {
	return &ArchiveRepo{StorageS3: storageS3}
}

func tableObjectKey(key entity.GroupKey) string {
	return fmt.Sprintf("tables/%s/%s/%s.csv", key.Site, key.Day, key.UnitID)
}

func (a *ArchiveRepo) UploadTable(ctx context.Context, key entity.GroupKey, csv []byte) error {
	if a.StorageS3 == nil || a.StorageS3.Client == nil {
		return fmt.Errorf("s3 client not initialized")
	}

	_, err := a.StorageS3.Client.PutObject(
		ctx,
		a.StorageS3.Bucket,
		tableObjectKey(key),
		bytes.NewReader(csv),
		int64(len(csv)),
		minio.PutObjectOptions{ContentType: "text/csv"},
	)
	if err != nil {
		return fmt.Errorf("s3 put object: %w", err)
	}
	return nil
}

// GetTableReader streams a previously archived table.
func (a *ArchiveRepo) GetTableReader(ctx context.Context, key entity.GroupKey) (io.ReadCloser, error) {
	obj, err := a.StorageS3.Client.GetObject(ctx, a.StorageS3.Bucket, tableObjectKey(key), minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("s3 get object: %w", err)
	}
	return obj, nil
}
