package storage

import (
	"context"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/Harishkumar132003/service-app-backend/internal/config"
	"github.com/Harishkumar132003/service-app-backend/pkg/apperr"
	"github.com/google/uuid"
	minioSDK "github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

var allowedExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

var mimeToExt = map[string]string{
	"image/jpeg": ".jpg",
	"image/jpg":  ".jpg",
	"image/png":  ".png",
}

var extToMime = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
}

// resolveExt picks the object extension from the filename, falling back to
// the declared MIME type when the extension is missing or unsupported.
func resolveExt(filename, contentType string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if allowedExts[ext] {
		return ext
	}
	if mt, ok := mimeToExt[strings.ToLower(contentType)]; ok {
		return mt
	}
	return ""
}

// MinioStore is the Blob/Image Store collaborator. Only JPEG and PNG
// uploads are accepted; anything else is a validation error.
type MinioStore struct {
	client *minioSDK.Client
	bucket string
}

func NewMinioStore() (*MinioStore, error) {
	client, err := minioSDK.New(config.MinioEndpoint, &minioSDK.Options{
		Creds:  credentials.NewStaticV4(config.MinioAccessKey, config.MinioSecretKey, ""),
		Secure: config.MinioUseSSL,
	})
	if err != nil {
		return nil, err
	}

	ctx := context.Background()
	exists, err := client.BucketExists(ctx, config.MinioBucket)
	if err != nil {
		return nil, err
	}
	if !exists {
		if err := client.MakeBucket(ctx, config.MinioBucket, minioSDK.MakeBucketOptions{}); err != nil {
			return nil, err
		}
		log.Printf("Created bucket %s", config.MinioBucket)
	}

	return &MinioStore{client: client, bucket: config.MinioBucket}, nil
}

// Save stores an image and returns its reference. The ref embeds a prefix,
// a timestamp and a random component so resubmissions never collide.
func (s *MinioStore) Save(ctx context.Context, r io.Reader, size int64, filename, contentType, prefix string) (string, error) {
	ext := resolveExt(filename, contentType)
	if ext == "" {
		return "", apperr.Validation("Unsupported file type")
	}

	ref := fmt.Sprintf("%s_%d_%s%s", prefix, time.Now().Unix(), uuid.NewString()[:8], ext)
	_, err := s.client.PutObject(ctx, s.bucket, ref, r, size, minioSDK.PutObjectOptions{
		ContentType: extToMime[ext],
	})
	if err != nil {
		return "", err
	}
	return ref, nil
}

// Load fetches an image by ref, returning its bytes and content type.
func (s *MinioStore) Load(ctx context.Context, ref string) ([]byte, string, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, ref, minioSDK.GetObjectOptions{})
	if err != nil {
		return nil, "", err
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		if minioSDK.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil, "", apperr.NotFound("Image not found")
		}
		return nil, "", err
	}

	ct := extToMime[strings.ToLower(filepath.Ext(ref))]
	if ct == "" {
		ct = "application/octet-stream"
	}
	return data, ct, nil
}
