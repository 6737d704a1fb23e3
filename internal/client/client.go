// Package client talks to the backend: step catalog, structure save, and
// per-app environment variables. Authentication is a bearer access token
// with a single refresh attempt on 401; there is no retry beyond that.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/featlab/featlab/internal/catalog"
)

type Client struct {
	baseURL      string
	http         *http.Client
	accessToken  string
	refreshToken string
}

func New(baseURL, accessToken, refreshToken string) *Client {
	return &Client{
		baseURL:      strings.TrimRight(baseURL, "/"),
		http:         &http.Client{},
		accessToken:  accessToken,
		refreshToken: refreshToken,
	}
}

// FetchSteps retrieves and decodes the grouped step catalog for an app.
// The caller is responsible for normalizing and for resetting its store
// when an error comes back.
func (c *Client) FetchSteps(ctx context.Context, appID string) ([]catalog.Bucket, error) {
	body, err := c.do(ctx, http.MethodGet, "/steps/apps/"+appID, nil)
	if err != nil {
		return nil, fmt.Errorf("fetching steps: %w", err)
	}
	return catalog.DecodeSteps(bytes.NewReader(body)), nil
}

// SaveStructure posts the serialized tree as a single blob. Fire and
// forget: failure is surfaced to the user, never retried.
func (c *Client) SaveStructure(ctx context.Context, structure string) error {
	payload, err := json.Marshal(map[string]string{"structure": structure})
	if err != nil {
		return fmt.Errorf("encoding structure: %w", err)
	}
	if _, err := c.do(ctx, http.MethodPost, "/save-feature", payload); err != nil {
		return fmt.Errorf("saving structure: %w", err)
	}
	return nil
}

// FetchEnvironments loads the app's environment variables. Malformed
// payloads degrade to an empty map.
func (c *Client) FetchEnvironments(ctx context.Context, appID string) (map[string]string, error) {
	body, err := c.do(ctx, http.MethodGet, "/environments/apps/"+appID, nil)
	if err != nil {
		return nil, fmt.Errorf("fetching environments: %w", err)
	}
	var payload struct {
		Data struct {
			Environments map[string]string `json:"environments"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return map[string]string{}, nil
	}
	if payload.Data.Environments == nil {
		return map[string]string{}, nil
	}
	return payload.Data.Environments, nil
}

// SaveEnvironments replaces the app's environment variables.
func (c *Client) SaveEnvironments(ctx context.Context, appID string, vars map[string]string) error {
	payload, err := json.Marshal(map[string]any{"environments": vars})
	if err != nil {
		return fmt.Errorf("encoding environments: %w", err)
	}
	if _, err := c.do(ctx, http.MethodPost, "/environments/apps/"+appID, payload); err != nil {
		return fmt.Errorf("saving environments: %w", err)
	}
	return nil
}

// do performs one request, refreshing the access token and retrying once
// on 401 when a refresh token is available.
func (c *Client) do(ctx context.Context, method, path string, body []byte) ([]byte, error) {
	resp, err := c.send(ctx, method, path, body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode == http.StatusUnauthorized && c.refreshToken != "" {
		resp.Body.Close()
		if err := c.refresh(ctx); err != nil {
			return nil, err
		}
		resp, err = c.send(ctx, method, path, body)
		if err != nil {
			return nil, err
		}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return data, nil
}

func (c *Client) send(ctx context.Context, method, path string, body []byte) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.accessToken)
	}
	return c.http.Do(req)
}

func (c *Client) refresh(ctx context.Context) error {
	payload, err := json.Marshal(map[string]string{"refreshToken": c.refreshToken})
	if err != nil {
		return fmt.Errorf("encoding refresh request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/auth/refresh", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("building refresh request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("refreshing token: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("refreshing token: unexpected status %d", resp.StatusCode)
	}

	var body struct {
		Data struct {
			AccessToken  string `json:"accessToken"`
			RefreshToken string `json:"refreshToken"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return fmt.Errorf("decoding refresh response: %w", err)
	}
	if body.Data.AccessToken == "" {
		return fmt.Errorf("refresh response missing access token")
	}
	c.accessToken = body.Data.AccessToken
	if body.Data.RefreshToken != "" {
		c.refreshToken = body.Data.RefreshToken
	}
	return nil
}
