package domain

// User is the already-authenticated caller identity. It is supplied by the
// auth middleware from token claims; Groups stays nil until the access
// resolver materializes it from the membership store.
type User struct {
	Id     UserId
	Role   Role
	Groups GroupIds
}
