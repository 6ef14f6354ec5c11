package setup

import (
	"github.com/pictonet/pictonet/internal/config"
	"github.com/pictonet/pictonet/internal/delivery"
	"github.com/pictonet/pictonet/internal/domain"
	"github.com/pictonet/pictonet/internal/handler"
	"github.com/pictonet/pictonet/internal/jwt"
	"github.com/pictonet/pictonet/internal/middleware"
	"github.com/pictonet/pictonet/internal/service"
	"github.com/pictonet/pictonet/internal/storage/fs"
	"github.com/pictonet/pictonet/internal/storage/pg"
)

// Dependencies holds the initialized object graph.
type Dependencies struct {
	Storage        *pg.Storage
	Handler        *handler.Handler
	AuthMiddleware *middleware.Auth
	Config         *config.Config
}

// SetupDependencies initializes everything the server needs.
func SetupDependencies(cfg *config.Config) (*Dependencies, error) {
	storage, err := pg.New(cfg)
	if err != nil {
		return nil, err
	}

	files, err := fs.New(cfg.Public.Media.StorageRoot)
	if err != nil {
		return nil, err
	}

	sender, err := delivery.NewFromConfig(cfg.Public.Media)
	if err != nil {
		return nil, err
	}

	jwtService := jwt.New(cfg.JwtKey(), cfg.JwtTTL())

	access := service.NewAccess(storage, storage, service.ElevatedRoles(cfg.Public.ElevatedRoles), domain.KindGallery)
	media := service.NewMedia(storage, files)

	h := handler.New(access, media, sender, storage)

	return &Dependencies{
		Storage:        storage,
		Handler:        h,
		AuthMiddleware: middleware.NewAuth(jwtService),
		Config:         cfg,
	}, nil
}
