package domain

import (
	"path/filepath"
	"time"
)

// Media is one photograph owned by a post, and through it by exactly one app.
// Filename is a path relative to the media storage root.
type Media struct {
	Id        MediaId
	PostId    PostId
	AppId     AppId
	Filename  string
	CreatedAt time.Time
}

// SizeVariant is one of the pre-derived sizes of an image.
type SizeVariant string

const (
	SizeThumbnail SizeVariant = "thumbnail"
	SizeMedium    SizeVariant = "medium"
	// SizeLarge is the canonical, originally uploaded file.
	SizeLarge SizeVariant = "large"
)

// ParseSizeVariant maps a query value to a variant. Anything unrecognized,
// including the empty string, means the canonical file.
func ParseSizeVariant(s string) SizeVariant {
	switch SizeVariant(s) {
	case SizeThumbnail:
		return SizeThumbnail
	case SizeMedium:
		return SizeMedium
	default:
		return SizeLarge
	}
}

// suffix inserted before the file extension for derived variants.
func (v SizeVariant) suffix() string {
	switch v {
	case SizeThumbnail:
		return "-thumb"
	case SizeMedium:
		return "-medium"
	default:
		return ""
	}
}

// VariantFilename derives the variant's filename: "a/photo.jpg" with
// SizeThumbnail becomes "a/photo-thumb.jpg". The canonical variant is the
// filename unchanged.
func (v SizeVariant) VariantFilename(filename string) string {
	suffix := v.suffix()
	if suffix == "" {
		return filename
	}
	ext := filepath.Ext(filename)
	return filename[:len(filename)-len(ext)] + suffix + ext
}
