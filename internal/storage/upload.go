package storage

import (
	"context"
	"encoding/base64"
	"io"
	"log"
)

// InlineUploader keeps images inside the returned url as a base64 data URL.
// It is the fallback when no bucket is configured.
type InlineUploader struct {
	MaxBytes int64
}

const defaultInlineMaxBytes = 4 << 20

func (u InlineUploader) Upload(_ context.Context, key string, body io.Reader, contentType string) (string, error) {
	limit := u.MaxBytes
	if limit <= 0 {
		limit = defaultInlineMaxBytes
	}

	data, err := io.ReadAll(io.LimitReader(body, limit+1))
	if err != nil {
		return "", err
	}
	if int64(len(data)) > limit {
		return "", ErrTooLarge
	}

	log.Printf("[STORAGE] inline image key=%s bytes=%d", key, len(data))
	return "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}
