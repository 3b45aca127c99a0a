// Package media stores lesson videos in a blob bucket behind the
// MediaStore interface. The bucket is addressed by a gocloud.dev URL, so
// the same code serves S3 in production and an on-disk or in-memory
// bucket elsewhere.
package media

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
	"gocloud.dev/blob"
	"gocloud.dev/gcerrors"

	// Bucket drivers selectable through the configured URL scheme.
	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/s3blob"

	"lessonboard/config"
	"lessonboard/internal/domain/entity"
	"lessonboard/internal/domain/lifecycle"
	"lessonboard/internal/domain/service"
)

const keyPrefix = "lessons"

// blobStore is a concrete implementation of the MediaStore interface on
// top of a gocloud.dev bucket.
type blobStore struct {
	bucket     *blob.Bucket
	providerID string
	logger     *slog.Logger
}

// Params defines the dependencies for the blob store, injected by Fx.
type Params struct {
	fx.In

	Config    *config.Config
	Logger    *slog.Logger
	Lifecycle fx.Lifecycle
}

// New opens the configured bucket and returns it as a service.MediaStore.
// The bucket is closed when the application stops.
func New(params Params) (service.MediaStore, error) {
	if params.Config.Media == nil || params.Config.Media.BucketURL == "" {
		return nil, errors.New("media bucket url must be provided")
	}

	ctx, cancel := context.WithTimeout(context.Background(), lifecycle.DefaultTimeout)
	defer cancel()

	bucket, err := blob.OpenBucket(ctx, params.Config.Media.BucketURL)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open media bucket")
	}

	params.Lifecycle.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return bucket.Close()
		},
	})

	return &blobStore{
		bucket:     bucket,
		providerID: params.Config.Media.ProviderID,
		logger:     params.Logger,
	}, nil
}

// Put streams a video into the bucket under a fresh key and returns the
// reference to persist. The key embeds a UUID, so concurrent uploads
// never collide and a retried upload never overwrites a committed object.
func (s *blobStore) Put(ctx context.Context, body io.Reader, contentType string) (entity.MediaRef, error) {
	key := path.Join(keyPrefix, fmt.Sprintf("%s%s", uuid.NewString(), extensionFor(contentType)))

	writer, err := s.bucket.NewWriter(ctx, key, &blob.WriterOptions{ContentType: contentType})
	if err != nil {
		return entity.MediaRef{}, errors.Wrap(err, "failed to open bucket writer")
	}

	if _, err := io.Copy(writer, body); err != nil {
		// Abandoning the writer via Close after a failed copy discards the
		// partial object on drivers that support it.
		_ = writer.Close()

		return entity.MediaRef{}, errors.Wrap(err, "failed to write video to bucket")
	}

	if err := writer.Close(); err != nil {
		return entity.MediaRef{}, errors.Wrap(err, "failed to finalize bucket write")
	}

	return entity.MediaRef{Key: key, ProviderID: s.providerID}, nil
}

// Delete removes an object from the bucket. Deleting an object that is
// already gone is a success: the desired end state holds either way.
func (s *blobStore) Delete(ctx context.Context, ref entity.MediaRef) error {
	if !ref.Attached() {
		return nil
	}

	if err := s.bucket.Delete(ctx, ref.Key); err != nil {
		if gcerrors.Code(err) == gcerrors.NotFound {
			s.logger.Debug("Media object already absent", slog.String("mediaKey", ref.Key))

			return nil
		}

		return errors.Wrap(err, "failed to delete video from bucket")
	}

	return nil
}

// extensionFor maps the common video content types onto file extensions,
// purely as a convenience for humans browsing the bucket.
func extensionFor(contentType string) string {
	switch contentType {
	case "video/mp4":
		return ".mp4"
	case "video/webm":
		return ".webm"
	case "video/quicktime":
		return ".mov"
	default:
		return ""
	}
}
