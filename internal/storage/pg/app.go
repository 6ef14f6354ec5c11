package pg

import (
	"database/sql"
	"errors"

	"github.com/pictonet/pictonet/internal/domain"
	internal_errors "github.com/pictonet/pictonet/internal/errors"
)

// GetAppBySlug fetches one tenant record. Missing slugs come back as a
// 404-coded error; the access resolver decides what the caller may learn.
func (s *Storage) GetAppBySlug(slug domain.AppSlug) (*domain.AppInstance, error) {
	var app domain.AppInstance
	var configBlob []byte

	err := s.db.QueryRow(`
	SELECT id, slug, name, kind, active, config, created
	FROM app_instances
	WHERE slug = $1`, slug).Scan(&app.Id, &app.Slug, &app.Name, &app.Kind, &app.Active, &configBlob, &app.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, internal_errors.NotFound()
		}
		return nil, err
	}

	app.Policy, err = domain.ParsePolicyConfig(configBlob)
	if err != nil {
		return nil, err
	}
	return &app, nil
}
