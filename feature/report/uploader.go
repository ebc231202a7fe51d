package report

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"sort"
	"strings"
	"time"

	"vault-reconciler/core/storage"
	"vault-reconciler/feature/vault"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

const (
	contentTypeJSON  = "application/json"
	contentTypeExcel = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// Uploader pushes finished reports to object storage. Each run lands under
// <prefix>/<run_id>/ in both renditions, and runs beyond the retention are
// pruned oldest first.
type Uploader struct {
	client storage.Client
	bucket string
	prefix string
	keep   int
	logger *zap.Logger
}

// NewUploader creates an uploader. keep is how many runs to retain in the
// bucket; zero keeps everything.
func NewUploader(client storage.Client, bucket, prefix string, keep int, logger *zap.Logger) *Uploader {
	return &Uploader{
		client: client,
		bucket: bucket,
		prefix: prefix,
		keep:   keep,
		logger: logger,
	}
}

// Upload writes the JSON and Excel renditions of the report and applies the
// retention policy.
func (u *Uploader) Upload(ctx context.Context, r *vault.Report) error {
	exists, err := u.client.BucketExists(ctx, u.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket %s: %w", u.bucket, err)
	}
	if !exists {
		if err := u.client.MakeBucket(ctx, u.bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("failed to create bucket %s: %w", u.bucket, err)
		}
	}

	var buf bytes.Buffer
	if err := WriteJSON(r, &buf); err != nil {
		return err
	}
	if err := u.putObject(ctx, path.Join(u.prefix, r.RunID, "report.json"), &buf, contentTypeJSON); err != nil {
		return err
	}

	buf.Reset()
	if err := WriteExcel(r, &buf); err != nil {
		return err
	}
	if err := u.putObject(ctx, path.Join(u.prefix, r.RunID, "report.xlsx"), &buf, contentTypeExcel); err != nil {
		return err
	}

	u.logger.Info("Report uploaded",
		zap.String("run_id", r.RunID),
		zap.String("bucket", u.bucket),
		zap.String("prefix", u.prefix),
	)

	if u.keep > 0 {
		if err := u.prune(ctx); err != nil {
			// Retention is best effort; a failed prune never fails the upload.
			u.logger.Warn("Failed to prune old reports", zap.Error(err))
		}
	}
	return nil
}

func (u *Uploader) putObject(ctx context.Context, key string, buf *bytes.Buffer, contentType string) error {
	_, err := u.client.PutObject(ctx, u.bucket, key,
		bytes.NewReader(buf.Bytes()), int64(buf.Len()),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return fmt.Errorf("failed to upload %s: %w", key, err)
	}
	return nil
}

// prune removes the objects of the oldest runs beyond the retention count.
func (u *Uploader) prune(ctx context.Context) error {
	type runObjects struct {
		lastModified time.Time
		keys         []string
	}
	runs := make(map[string]*runObjects)

	listPrefix := u.prefix + "/"
	for obj := range u.client.ListObjects(ctx, u.bucket, minio.ListObjectsOptions{Prefix: listPrefix, Recursive: true}) {
		if obj.Err != nil {
			return obj.Err
		}
		runID, _, ok := strings.Cut(strings.TrimPrefix(obj.Key, listPrefix), "/")
		if !ok {
			continue
		}
		run := runs[runID]
		if run == nil {
			run = &runObjects{}
			runs[runID] = run
		}
		run.keys = append(run.keys, obj.Key)
		if obj.LastModified.After(run.lastModified) {
			run.lastModified = obj.LastModified
		}
	}

	if len(runs) <= u.keep {
		return nil
	}

	ids := make([]string, 0, len(runs))
	for id := range runs {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		return runs[ids[i]].lastModified.After(runs[ids[j]].lastModified)
	})

	for _, id := range ids[u.keep:] {
		for _, key := range runs[id].keys {
			if err := u.client.RemoveObject(ctx, u.bucket, key, minio.RemoveObjectOptions{}); err != nil {
				return fmt.Errorf("failed to remove %s: %w", key, err)
			}
		}
		u.logger.Info("Pruned old report", zap.String("run_id", id))
	}
	return nil
}
