package service

import (
	"errors"

	"github.com/pictonet/pictonet/internal/domain"
	internal_errors "github.com/pictonet/pictonet/internal/errors"
	"github.com/pictonet/pictonet/internal/storage/fs"
)

// MediaStorage is the read side of the media store. Lookups are always
// scoped to an app id: a media id owned by another app must come back as the
// same 404-coded error as a nonexistent one.
type MediaStorage interface {
	GetMedia(appId domain.AppId, mediaId domain.MediaId) (*domain.Media, error)
}

// FileStore is the filesystem side the resolver probes against.
type FileStore interface {
	Normalize(name string) (string, error)
	Exists(rel string) bool
	Abs(rel string) string
}

// ResolveStatus tags how the final path was chosen.
type ResolveStatus int

const (
	// StatusResolved means the requested variant file itself is served.
	StatusResolved ResolveStatus = iota
	// StatusFallback means the variant was absent and the canonical file is
	// served instead. Not an error.
	StatusFallback
)

// ResolvedFile is the only form a physical path travels in. It is consumed by
// the delivery layer and never echoed to a client.
type ResolvedFile struct {
	AbsPath string
	RelPath string
	Status  ResolveStatus
}

// Media resolves a logical media reference to a servable file.
type Media struct {
	storage MediaStorage
	files   FileStore
}

func NewMedia(storage MediaStorage, files FileStore) *Media {
	return &Media{storage: storage, files: files}
}

// Resolve runs the full chain: ownership check, filename normalization,
// variant selection, existence fallback. Callers must have passed the access
// resolver for appId already.
func (m *Media) Resolve(appId domain.AppId, mediaId domain.MediaId, size domain.SizeVariant) (ResolvedFile, error) {
	media, err := m.storage.GetMedia(appId, mediaId)
	if err != nil {
		return ResolvedFile{}, err
	}

	canonical, err := m.files.Normalize(media.Filename)
	if err != nil {
		if errors.Is(err, fs.ErrUnsafeFilename) {
			return ResolvedFile{}, internal_errors.InvalidInput("Invalid media filename")
		}
		return ResolvedFile{}, err
	}

	variant := size.VariantFilename(canonical)
	if variant != canonical && m.files.Exists(variant) {
		return ResolvedFile{AbsPath: m.files.Abs(variant), RelPath: variant, Status: StatusResolved}, nil
	}

	// A missing derived variant is never an error; serve the canonical file.
	status := StatusResolved
	if variant != canonical {
		status = StatusFallback
	}
	if !m.files.Exists(canonical) {
		return ResolvedFile{}, internal_errors.NotFound()
	}
	return ResolvedFile{AbsPath: m.files.Abs(canonical), RelPath: canonical, Status: status}, nil
}
