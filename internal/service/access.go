package service

import (
	"slices"

	"github.com/pictonet/pictonet/internal/domain"
	internal_errors "github.com/pictonet/pictonet/internal/errors"
	"github.com/pictonet/pictonet/internal/logger"
)

// AppStorage is the read side of the tenant store.
type AppStorage interface {
	// GetAppBySlug returns a 404-coded error when no record matches.
	GetAppBySlug(slug domain.AppSlug) (*domain.AppInstance, error)
}

// MembershipStorage answers which groups a user belongs to.
type MembershipStorage interface {
	UserGroups(userId domain.UserId) (domain.GroupIds, error)
}

// Resolution is the outcome of an access decision. App is nil when the slug
// does not resolve to a servable tenant; Allowed is authoritative either way.
type Resolution struct {
	App           *domain.AppInstance
	Allowed       bool
	AllowedGroups domain.GroupIds
}

// Access is the single authorization choke point. Every tenant-scoped read
// goes through Resolve before any content is touched; nothing else in the
// service re-derives an allow decision.
type Access struct {
	apps        AppStorage
	memberships MembershipStorage
	isElevated  func(*domain.User) bool
	kind        domain.AppKind
}

// NewAccess wires the resolver. isElevated is the one place privilege
// semantics live; passing nil means no role is ever elevated.
func NewAccess(apps AppStorage, memberships MembershipStorage, isElevated func(*domain.User) bool, kind domain.AppKind) *Access {
	if isElevated == nil {
		isElevated = func(*domain.User) bool { return false }
	}
	return &Access{apps: apps, memberships: memberships, isElevated: isElevated, kind: kind}
}

// ElevatedRoles builds the standard elevation predicate from a configured
// role list.
func ElevatedRoles(roles []string) func(*domain.User) bool {
	return func(u *domain.User) bool {
		return u != nil && slices.Contains(roles, u.Role)
	}
}

// Resolve decides whether caller may enter the app named by slug.
// caller may be nil (anonymous request). An unknown slug, a record of another
// kind and an inactive app hidden from the caller all produce the same
// App == nil result, so existence is never confirmed to outsiders.
func (a *Access) Resolve(slug domain.AppSlug, caller *domain.User) (Resolution, error) {
	app, err := a.apps.GetAppBySlug(slug)
	if err != nil {
		if e, ok := err.(*internal_errors.ErrorWithStatusCode); ok && e.StatusCode == 404 {
			return Resolution{}, nil
		}
		return Resolution{}, err
	}

	if app.Kind != a.kind {
		return Resolution{}, nil
	}

	elevated := caller != nil && a.isElevated(caller)

	if !app.Active && !elevated {
		return Resolution{}, nil
	}

	allowedGroups := app.Policy.AllowedGroups

	// Open app, or privilege override.
	if len(allowedGroups) == 0 || elevated {
		return Resolution{App: app, Allowed: true, AllowedGroups: allowedGroups}, nil
	}

	if caller == nil {
		return Resolution{App: app, Allowed: false, AllowedGroups: allowedGroups}, nil
	}

	groups := caller.Groups
	if groups == nil {
		groups, err = a.memberships.UserGroups(caller.Id)
		if err != nil {
			return Resolution{}, err
		}
	}

	for _, g := range groups {
		if slices.Contains(allowedGroups, g) {
			return Resolution{App: app, Allowed: true, AllowedGroups: allowedGroups}, nil
		}
	}

	logger.Log.Warn("app access restricted",
		"user_id", caller.Id,
		"app", slug)
	return Resolution{App: app, Allowed: false, AllowedGroups: allowedGroups}, nil
}
