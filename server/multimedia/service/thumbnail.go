package service

import (
	"bytes"
	"context"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
	"github.com/minio/minio-go/v7"
)

// MinioThumbnailer keeps a small JPEG rendition of each gallery slot in
// object storage so listing UIs never pull full-size blobs. Payloads that
// do not decode as images are skipped.
type MinioThumbnailer struct {
	client *minio.Client
	bucket string
}

func NewMinioThumbnailer(client *minio.Client, bucket string) *MinioThumbnailer {
	return &MinioThumbnailer{client: client, bucket: bucket}
}

func (t *MinioThumbnailer) StoreThumbnail(ctx context.Context, accommodationID string, slot int, data []byte) (string, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("decode multimedia: %w", err)
	}

	thumb := imaging.Thumbnail(img, 320, 320, imaging.Lanczos)
	buf := bytes.NewBuffer(nil)
	if err := imaging.Encode(buf, thumb, imaging.JPEG); err != nil {
		return "", fmt.Errorf("encode thumbnail: %w", err)
	}

	key := fmt.Sprintf("accommodations/%s/%d_thumb.jpg", accommodationID, slot)
	reader := bytes.NewReader(buf.Bytes())
	_, err = t.client.PutObject(ctx, t.bucket, key, reader, int64(reader.Len()), minio.PutObjectOptions{ContentType: "image/jpeg"})
	if err != nil {
		return "", fmt.Errorf("upload thumbnail: %w", err)
	}
	return key, nil
}
