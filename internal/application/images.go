package application

import (
	"context"
	"io"
)

// Upload is an incoming image payload, decoupled from multipart handling.
type Upload struct {
	Reader      io.Reader
	Size        int64
	Filename    string
	ContentType string
}

// ImageStore is the Blob/Image Store capability consumed by the engines.
type ImageStore interface {
	Save(ctx context.Context, r io.Reader, size int64, filename, contentType, prefix string) (string, error)
	Load(ctx context.Context, ref string) ([]byte, string, error)
}
