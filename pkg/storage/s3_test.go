package storage_test

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formdata/pkg/storage"
)

type MockS3Client struct {
	mock.Mock
}

func (m *MockS3Client) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	args := m.Called(ctx, params, optFns)
	if out := args.Get(0); out != nil {
		return out.(*s3.PutObjectOutput), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockS3Client) HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error) {
	args := m.Called(ctx, params, optFns)
	if out := args.Get(0); out != nil {
		return out.(*s3.HeadObjectOutput), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockS3Client) DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	args := m.Called(ctx, params, optFns)
	if out := args.Get(0); out != nil {
		return out.(*s3.DeleteObjectOutput), args.Error(1)
	}
	return nil, args.Error(1)
}

func newS3(t *testing.T, client *MockS3Client, cfg storage.S3Config) *storage.S3Storage {
	t.Helper()
	if cfg.Bucket == "" {
		cfg.Bucket = "uploads"
	}
	if cfg.Region == "" {
		cfg.Region = "us-east-1"
	}
	s, err := storage.NewS3Storage(context.Background(), cfg, storage.WithS3Client(client))
	require.NoError(t, err)
	return s
}

func TestNewS3Storage(t *testing.T) {
	t.Parallel()

	t.Run("requires bucket and region", func(t *testing.T) {
		t.Parallel()
		_, err := storage.NewS3Storage(context.Background(), storage.S3Config{Bucket: "b"})
		require.ErrorIs(t, err, storage.ErrInvalidConfig)
		_, err = storage.NewS3Storage(context.Background(), storage.S3Config{Region: "r"})
		require.ErrorIs(t, err, storage.ErrInvalidConfig)
	})

	t.Run("default AWS url", func(t *testing.T) {
		t.Parallel()
		s := newS3(t, new(MockS3Client), storage.S3Config{Bucket: "b", Region: "eu-west-1"})
		assert.Equal(t, "https://b.s3.eu-west-1.amazonaws.com/x/y.png", s.URL("/x/y.png"))
	})

	t.Run("custom endpoint url", func(t *testing.T) {
		t.Parallel()
		s := newS3(t, new(MockS3Client), storage.S3Config{Bucket: "b", Endpoint: "http://minio:9000/"})
		assert.Equal(t, "http://minio:9000/b/k", s.URL("k"))
	})

	t.Run("explicit base url", func(t *testing.T) {
		t.Parallel()
		s := newS3(t, new(MockS3Client), storage.S3Config{BaseURL: "https://cdn.example.com"})
		assert.Equal(t, "https://cdn.example.com/k", s.URL("k"))
	})
}

func TestS3Storage_Save(t *testing.T) {
	t.Parallel()

	t.Run("puts object with metadata", func(t *testing.T) {
		t.Parallel()
		client := new(MockS3Client)
		content := []byte("hello")

		client.On("PutObject",
			mock.Anything,
			mock.MatchedBy(func(in *s3.PutObjectInput) bool {
				body, _ := io.ReadAll(in.Body)
				return *in.Bucket == "uploads" &&
					*in.Key == "docs/a.txt" &&
					*in.ContentLength == int64(len(content)) &&
					*in.ContentType == "text/plain" &&
					in.Metadata["blake3"] == storage.Checksum(content) &&
					string(body) == "hello"
			}),
			mock.Anything,
		).Return(&s3.PutObjectOutput{}, nil).Once()

		s := newS3(t, client, storage.S3Config{})
		f, err := s.Save(context.Background(), storage.Upload{Filename: "a.txt", Content: content}, "/docs/")
		require.NoError(t, err)
		assert.Equal(t, "docs/a.txt", f.RelativePath)
		assert.Empty(t, f.AbsolutePath)
		assert.Equal(t, int64(5), f.Size)
		client.AssertExpectations(t)
	})

	t.Run("rejects traversal", func(t *testing.T) {
		t.Parallel()
		client := new(MockS3Client)
		s := newS3(t, client, storage.S3Config{})
		_, err := s.Save(context.Background(), storage.Upload{Filename: "a"}, "../a")
		require.ErrorIs(t, err, storage.ErrInvalidPath)
		client.AssertNotCalled(t, "PutObject", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("classifies access denied", func(t *testing.T) {
		t.Parallel()
		client := new(MockS3Client)
		client.On("PutObject", mock.Anything, mock.Anything, mock.Anything).
			Return(nil, &smithy.GenericAPIError{Code: "AccessDenied", Message: "nope"}).Once()

		s := newS3(t, client, storage.S3Config{})
		_, err := s.Save(context.Background(), storage.Upload{Filename: "a.txt", Content: []byte("x")}, "a.txt")
		require.ErrorIs(t, err, storage.ErrAccessDenied)
		client.AssertExpectations(t)
	})

	t.Run("classifies canceled context", func(t *testing.T) {
		t.Parallel()
		client := new(MockS3Client)
		client.On("PutObject", mock.Anything, mock.Anything, mock.Anything).
			Return(nil, context.Canceled).Once()

		s := newS3(t, client, storage.S3Config{})
		_, err := s.Save(context.Background(), storage.Upload{Filename: "a.txt"}, "a.txt")
		require.ErrorIs(t, err, storage.ErrOperationCanceled)
	})
}

func TestS3Storage_DeleteAndExists(t *testing.T) {
	t.Parallel()

	t.Run("deletes existing object", func(t *testing.T) {
		t.Parallel()
		client := new(MockS3Client)
		client.On("HeadObject", mock.Anything, mock.MatchedBy(func(in *s3.HeadObjectInput) bool {
			return *in.Key == "a.txt"
		}), mock.Anything).Return(&s3.HeadObjectOutput{}, nil)
		client.On("DeleteObject", mock.Anything, mock.MatchedBy(func(in *s3.DeleteObjectInput) bool {
			return *in.Key == "a.txt"
		}), mock.Anything).Return(&s3.DeleteObjectOutput{}, nil).Once()

		s := newS3(t, client, storage.S3Config{})
		assert.True(t, s.Exists(context.Background(), "/a.txt"))
		require.NoError(t, s.Delete(context.Background(), "/a.txt"))
		client.AssertExpectations(t)
	})

	t.Run("missing object", func(t *testing.T) {
		t.Parallel()
		client := new(MockS3Client)
		client.On("HeadObject", mock.Anything, mock.Anything, mock.Anything).
			Return(nil, &types.NotFound{})

		s := newS3(t, client, storage.S3Config{})
		assert.False(t, s.Exists(context.Background(), "gone.txt"))
		require.ErrorIs(t, s.Delete(context.Background(), "gone.txt"), storage.ErrFileNotFound)
		client.AssertNotCalled(t, "DeleteObject", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unclassified error keeps cause", func(t *testing.T) {
		t.Parallel()
		cause := errors.New("socket closed")
		client := new(MockS3Client)
		client.On("HeadObject", mock.Anything, mock.Anything, mock.Anything).Return(nil, cause)

		s := newS3(t, client, storage.S3Config{})
		require.ErrorIs(t, s.Delete(context.Background(), "a"), cause)
	})
}
