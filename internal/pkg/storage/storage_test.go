package storage

import (
	"context"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFromDriver(t *testing.T) {
	t.Run("unknown driver", func(t *testing.T) {
		_, err := NewFromDriver(context.Background(), "ftp", FactoryOptions{})
		assert.ErrorIs(t, err, ErrUnknownDriver)
	})

	t.Run("bucket is required", func(t *testing.T) {
		for _, driver := range []string{DriverS3, DriverMinIO, DriverGCS} {
			_, err := NewFromDriver(context.Background(), driver, FactoryOptions{})
			assert.ErrorIs(t, err, ErrBucketRequired, driver)
		}
	})
}

func TestPresignGet(t *testing.T) {
	ctx := context.Background()

	t.Run("minio", func(t *testing.T) {
		st, err := NewFromDriver(ctx, " MinIO ", FactoryOptions{MinIO: MinIOOptions{
			Bucket:    "exports",
			Endpoint:  "localhost:9000",
			AccessKey: "minioadmin",
			SecretKey: "minioadmin",
			Region:    "us-east-1",
		}})
		require.NoError(t, err)
		t.Cleanup(func() { _ = st.Close() })

		raw, err := st.PresignGet(ctx, "users/2026-10-19.csv", 15*time.Minute)
		require.NoError(t, err)

		u, err := url.Parse(raw)
		require.NoError(t, err)
		assert.Equal(t, "/exports/users/2026-10-19.csv", u.Path)
		assert.Equal(t, "900", u.Query().Get("X-Amz-Expires"))
	})

	t.Run("s3 with custom endpoint", func(t *testing.T) {
		st, err := NewS3(ctx, S3Options{
			Bucket:       "exports",
			Endpoint:     "http://localhost:4566",
			AccessKey:    "test",
			SecretKey:    "test",
			UsePathStyle: true,
		})
		require.NoError(t, err)

		raw, err := st.PresignGet(ctx, "users.csv", time.Hour)
		require.NoError(t, err)

		u, err := url.Parse(raw)
		require.NoError(t, err)
		assert.Equal(t, "localhost:4566", u.Host)
		assert.Equal(t, "/exports/users.csv", u.Path)
		assert.Equal(t, "3600", u.Query().Get("X-Amz-Expires"))
	})
}
