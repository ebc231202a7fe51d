package report

import (
	"context"
	"testing"
	"time"

	"vault-reconciler/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

func TestUploader_Upload(t *testing.T) {
	client := new(mocks.Client)
	client.On("BucketExists", mock.Anything, "reconciler").Return(true, nil)
	client.On("PutObject", mock.Anything, "reconciler", "reports/run-1/report.json",
		mock.Anything, mock.Anything, mock.Anything).Return(minio.UploadInfo{}, nil)
	client.On("PutObject", mock.Anything, "reconciler", "reports/run-1/report.xlsx",
		mock.Anything, mock.Anything, mock.Anything).Return(minio.UploadInfo{}, nil)

	up := NewUploader(client, "reconciler", "reports", 0, zap.NewNop())
	assert.NoError(t, up.Upload(context.Background(), sampleReport()))
	client.AssertExpectations(t)
	client.AssertNotCalled(t, "ListObjects", mock.Anything, mock.Anything, mock.Anything)
}

func TestUploader_Upload_CreatesBucket(t *testing.T) {
	client := new(mocks.Client)
	client.On("BucketExists", mock.Anything, "reconciler").Return(false, nil)
	client.On("MakeBucket", mock.Anything, "reconciler", mock.Anything).Return(nil)
	client.On("PutObject", mock.Anything, "reconciler", mock.Anything,
		mock.Anything, mock.Anything, mock.Anything).Return(minio.UploadInfo{}, nil)

	up := NewUploader(client, "reconciler", "reports", 0, zap.NewNop())
	assert.NoError(t, up.Upload(context.Background(), sampleReport()))
	client.AssertExpectations(t)
}

func TestUploader_Retention(t *testing.T) {
	now := time.Now()

	objects := make(chan minio.ObjectInfo, 6)
	objects <- minio.ObjectInfo{Key: "reports/run-old/report.json", LastModified: now.Add(-3 * time.Hour)}
	objects <- minio.ObjectInfo{Key: "reports/run-old/report.xlsx", LastModified: now.Add(-3 * time.Hour)}
	objects <- minio.ObjectInfo{Key: "reports/run-mid/report.json", LastModified: now.Add(-2 * time.Hour)}
	objects <- minio.ObjectInfo{Key: "reports/run-mid/report.xlsx", LastModified: now.Add(-2 * time.Hour)}
	objects <- minio.ObjectInfo{Key: "reports/run-1/report.json", LastModified: now}
	objects <- minio.ObjectInfo{Key: "reports/run-1/report.xlsx", LastModified: now}
	close(objects)
	var listCh <-chan minio.ObjectInfo = objects

	client := new(mocks.Client)
	client.On("BucketExists", mock.Anything, "reconciler").Return(true, nil)
	client.On("PutObject", mock.Anything, "reconciler", mock.Anything,
		mock.Anything, mock.Anything, mock.Anything).Return(minio.UploadInfo{}, nil)
	client.On("ListObjects", mock.Anything, "reconciler", mock.Anything).Return(listCh)
	client.On("RemoveObject", mock.Anything, "reconciler", "reports/run-old/report.json", mock.Anything).Return(nil)
	client.On("RemoveObject", mock.Anything, "reconciler", "reports/run-old/report.xlsx", mock.Anything).Return(nil)

	up := NewUploader(client, "reconciler", "reports", 2, zap.NewNop())
	assert.NoError(t, up.Upload(context.Background(), sampleReport()))
	client.AssertExpectations(t)
	client.AssertNotCalled(t, "RemoveObject", mock.Anything, "reconciler", "reports/run-mid/report.json", mock.Anything)
}

func TestUploader_Upload_BucketCheckFails(t *testing.T) {
	client := new(mocks.Client)
	client.On("BucketExists", mock.Anything, "reconciler").Return(false, assert.AnError)

	up := NewUploader(client, "reconciler", "reports", 0, zap.NewNop())
	err := up.Upload(context.Background(), sampleReport())
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to check bucket")
}
