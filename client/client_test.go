package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pictonet/pictonet/api"
)

func TestImageURL(t *testing.T) {
	c := New("http://backend:8080")

	assert.Equal(t, "http://backend:8080/v1/apps/wildlife/image/0c9d1e6a-1111-4222-8333-444455556666",
		c.ImageURL("wildlife", "0c9d1e6a-1111-4222-8333-444455556666", ""))
	assert.Equal(t, "http://backend:8080/v1/apps/wildlife/image/abc?size=thumb",
		c.ImageURL("wildlife", "abc", "thumb"))
}

func TestGetApp(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		assert.Equal(t, "/v1/apps/wildlife", r.URL.Path)
		json.NewEncoder(w).Encode(api.AppResponse{Slug: "wildlife", Name: "Wildlife Shots", Active: true})
	}))
	defer server.Close()

	c := New(server.URL)
	app, err := c.GetApp(context.Background(), "wildlife", "tok")

	require.NoError(t, err)
	assert.Equal(t, "Bearer tok", gotAuth)
	assert.Equal(t, "wildlife", app.Slug)
	assert.Equal(t, "Wildlife Shots", app.Name)
}

func TestGetApp_NonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": "Not found"}`, http.StatusNotFound)
	}))
	defer server.Close()

	_, err := New(server.URL).GetApp(context.Background(), "nope", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestFetchImage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "image/png")
		w.Write([]byte("png-bytes"))
	}))
	defer server.Close()

	c := New(server.URL)
	data, contentType, err := c.FetchImage(context.Background(), c.ImageURL("wildlife", "abc", ""), "tok")

	require.NoError(t, err)
	assert.Equal(t, []byte("png-bytes"), data)
	assert.Equal(t, "image/png", contentType)
}

func TestFetchImage_Denied(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": "Access restricted"}`, http.StatusForbidden)
	}))
	defer server.Close()

	c := New(server.URL)
	_, _, err := c.FetchImage(context.Background(), server.URL+"/v1/apps/private/image/abc", "tok")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")
}
