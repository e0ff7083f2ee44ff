// Package storage persists menu item images either on local disk or in S3.
package storage

import (
	"context"
	"encoding/base64"
	"fmt"
	"mime"
	"strings"
	"time"
)

// ImageStore saves an image under key and returns its public URL.
type ImageStore interface {
	Put(ctx context.Context, key string, data []byte, contentType string) (string, error)
}

// Image is a decoded "data:<mime>;base64,<payload>" upload.
type Image struct {
	Data        []byte
	ContentType string
	Ext         string
}

const MaxImageBytes = 5 << 20

// DecodeDataURL parses a base64 data URL carrying an image.
func DecodeDataURL(s string) (*Image, error) {
	meta, payload, ok := strings.Cut(s, ",")
	if !ok || !strings.HasPrefix(meta, "data:") || !strings.HasSuffix(meta, ";base64") {
		return nil, fmt.Errorf("invalid base64 image")
	}
	contentType := strings.TrimSuffix(strings.TrimPrefix(meta, "data:"), ";base64")
	if !strings.HasPrefix(contentType, "image/") {
		return nil, fmt.Errorf("unsupported content type %q", contentType)
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	if len(data) == 0 || len(data) > MaxImageBytes {
		return nil, fmt.Errorf("image must be between 1 byte and %d bytes", MaxImageBytes)
	}

	return &Image{Data: data, ContentType: contentType, Ext: extensionFor(contentType)}, nil
}

func extensionFor(contentType string) string {
	switch contentType {
	case "image/jpeg", "image/jpg":
		return ".jpg"
	case "image/png":
		return ".png"
	}
	if exts, _ := mime.ExtensionsByType(contentType); len(exts) > 0 {
		return exts[0]
	}
	if _, sub, ok := strings.Cut(contentType, "/"); ok {
		return "." + sub
	}
	return ""
}

// MenuImageKey builds a unique object key for a menu image.
func MenuImageKey(name, ext string) string {
	slug := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		}
		return '-'
	}, name)
	return fmt.Sprintf("menu_images/%s-%d%s", strings.Trim(slug, "-"), time.Now().UnixNano(), ext)
}
