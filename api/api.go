// Package api holds the wire types shared between the service and its Go
// client.
package api

import "time"

// AppResponse is the tenant metadata an authorized caller may see.
type AppResponse struct {
	Slug      string    `json:"slug"`
	Name      string    `json:"name"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}
