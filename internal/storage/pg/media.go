package pg

import (
	"database/sql"
	"errors"

	"github.com/pictonet/pictonet/internal/domain"
	internal_errors "github.com/pictonet/pictonet/internal/errors"
)

// GetMedia looks a media record up scoped to its owning app. Ownership runs
// through the post record, so a media id that exists under another app is
// indistinguishable from one that does not exist at all.
func (s *Storage) GetMedia(appId domain.AppId, mediaId domain.MediaId) (*domain.Media, error) {
	var media domain.Media

	err := s.db.QueryRow(`
	SELECT m.id, m.post_id, p.app_id, m.filename, m.created
	FROM media AS m
	JOIN posts AS p ON m.post_id = p.id
	WHERE m.id = $1 AND p.app_id = $2`, mediaId, appId).
		Scan(&media.Id, &media.PostId, &media.AppId, &media.Filename, &media.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, internal_errors.NotFound()
		}
		return nil, err
	}

	return &media, nil
}
