package media

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// supportedExtensions maps accepted image extensions to their MIME types.
var supportedExtensions = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
	".webp": "image/webp",
	".heic": "image/heic",
	".heif": "image/heif",
}

// mimeExtensions is the reverse lookup for files whose name carries no
// usable extension.
var mimeExtensions = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/gif":  ".gif",
	"image/webp": ".webp",
	"image/heic": ".heic",
	"image/heif": ".heif",
}

// ImageExtension determines the extension for an image, preferring the
// filename and falling back to the MIME type. It returns an error for
// formats the media library does not accept.
func ImageExtension(filename, mimeType string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if _, ok := supportedExtensions[ext]; ok {
		return ext, nil
	}
	mimeType = strings.ToLower(strings.TrimSpace(strings.Split(mimeType, ";")[0]))
	if ext, ok := mimeExtensions[mimeType]; ok {
		return ext, nil
	}
	return "", fmt.Errorf("unsupported image format (name %q, type %q)", filename, mimeType)
}

// MIMEForExtension returns the MIME type for a supported extension.
func MIMEForExtension(ext string) string {
	return supportedExtensions[strings.ToLower(ext)]
}

// UniqueFilename builds a collision-proof upload name from the current time
// and a random suffix.
func UniqueFilename(ext string) string {
	return fmt.Sprintf("featured-%s-%s%s", time.Now().Format("20060102-150405"), uuid.NewString()[:8], ext)
}
