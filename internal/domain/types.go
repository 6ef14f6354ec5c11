package domain

import (
	"github.com/google/uuid"
	"github.com/lib/pq"
)

type (
	AppId   = int64
	AppSlug = string
	AppKind = string

	UserId  = int64
	Role    = string
	GroupId = string
	// GroupIds scans directly from a postgres text[] column.
	GroupIds = pq.StringArray

	PostId  = int64
	MediaId = uuid.UUID
)

const (
	// KindGallery is the only app kind served by this service. Records of
	// other kinds share the app_instances table but are invisible here.
	KindGallery AppKind = "gallery"

	RoleAdmin  Role = "admin"
	RoleEditor Role = "editor"
	RoleMember Role = "member"
)
