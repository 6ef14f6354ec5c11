// Package client is the Go client for the pictonet API. Gallery frontends
// use it together with client/imagecache to display permission-gated images.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/pictonet/pictonet/api"
)

// APIClient handles all communication with the pictonet service.
type APIClient struct {
	BaseURL    string
	HttpClient *http.Client
}

func New(baseURL string) *APIClient {
	return &APIClient{
		BaseURL:    baseURL,
		HttpClient: &http.Client{},
	}
}

// do is the single helper for making API requests. A non-empty token is sent
// as a bearer credential.
func (c *APIClient) do(ctx context.Context, method, rawURL, token string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create API request: %w", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.HttpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("backend unavailable: %w", err)
	}
	return resp, nil
}

// ImageURL builds the locator for one image at the requested size.
func (c *APIClient) ImageURL(app string, mediaId string, size string) string {
	u := fmt.Sprintf("%s/v1/apps/%s/image/%s", c.BaseURL, url.PathEscape(app), url.PathEscape(mediaId))
	if size != "" {
		u += "?size=" + url.QueryEscape(size)
	}
	return u
}

// GetApp fetches tenant metadata visible to the credential's owner.
func (c *APIClient) GetApp(ctx context.Context, app string, token string) (api.AppResponse, error) {
	var response api.AppResponse

	resp, err := c.do(ctx, "GET", fmt.Sprintf("%s/v1/apps/%s", c.BaseURL, url.PathEscape(app)), token)
	if err != nil {
		return response, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return response, fmt.Errorf("backend returned status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return response, fmt.Errorf("cannot decode app response: %w", err)
	}
	return response, nil
}

// FetchImage performs the out-of-band authorized fetch the image cache
// builds on. It returns the raw bytes and the reported content type.
func (c *APIClient) FetchImage(ctx context.Context, locator string, token string) ([]byte, string, error) {
	resp, err := c.do(ctx, "GET", locator, token)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("backend returned status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("cannot read image body: %w", err)
	}
	return data, resp.Header.Get("Content-Type"), nil
}
