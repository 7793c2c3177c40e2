// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The zerovault Authors

package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"github.com/go-resty/resty/v2"

	"github.com/zerovault/zerovault/internal/config"
	"github.com/zerovault/zerovault/internal/logger"
	"github.com/zerovault/zerovault/models"
)

// Client is the HTTP/REST transport for the zerovault API. It holds the
// bearer token issued by Verify and attaches it to every authenticated
// request. Safe for concurrent use.
type Client struct {
	client *resty.Client
	logger *logger.Logger

	mu    sync.RWMutex
	token string
}

// NewClient constructs a transport from the client configuration. It
// normalises and validates the base URL from cfg.Server.Address and applies
// the configured request timeout. Returns an error if the address is empty
// or cannot be parsed as a valid URL.
func NewClient(cfg config.ClientConfig, logger *logger.Logger) (*Client, error) {
	baseURL, err := normalizeBaseURL(cfg.Server.Address)
	if err != nil {
		return nil, fmt.Errorf("invalid server address: %w", err)
	}

	cli := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(cfg.Server.RequestTimeout)

	return &Client{client: cli, logger: logger}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// SetToken stores token (whitespace-trimmed) for use in the Authorization
// header of all subsequent authenticated requests.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = strings.TrimSpace(token)
}

// Token returns the bearer token currently held by the client, or an empty
// string if none has been set.
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// Params fetches the KDF descriptor stored for identifier via
// POST /api/auth/params. The descriptor is needed to re-derive the verifier
// before Verify. Returns [ErrUnauthorized] (wrapped) when the identifier is
// unknown.
func (c *Client) Params(ctx context.Context, identifier string) (models.KDFParams, error) {
	var params models.KDFParams

	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(models.ParamsRequest{Identifier: identifier}).
		SetResult(&params).
		Post("/api/auth/params")
	if err != nil {
		return models.KDFParams{}, fmt.Errorf("params request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.KDFParams{}, err
	}

	return params, nil
}

// Register creates an account via POST /api/auth/register. The request must
// carry a pre-derived verifier and the wrapped account key; the raw password
// never appears here. Returns [ErrConflict] (wrapped) when the identifier is
// already taken.
func (c *Client) Register(ctx context.Context, req models.RegisterRequest) (models.RegisterResponse, error) {
	var created models.RegisterResponse

	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		SetResult(&created).
		Post("/api/auth/register")
	if err != nil {
		return models.RegisterResponse{}, fmt.Errorf("register request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.RegisterResponse{}, err
	}

	return created, nil
}

// Verify authenticates with a freshly re-derived verifier via
// POST /api/auth/verify. On success the bearer token from the response is
// stored via SetToken and the wrapped account key is returned for local
// unwrapping. Returns [ErrUnauthorized] (wrapped) on a failed verification.
func (c *Client) Verify(ctx context.Context, req models.VerifyRequest) (models.VerifyResponse, error) {
	var verified models.VerifyResponse

	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		SetResult(&verified).
		Post("/api/auth/verify")
	if err != nil {
		return models.VerifyResponse{}, fmt.Errorf("verify request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.VerifyResponse{}, err
	}

	c.SetToken(verified.Token)
	return verified, nil
}

// Rotate swaps the account credentials via POST /api/auth/rotate. Requires a
// valid bearer token.
func (c *Client) Rotate(ctx context.Context, req models.RotateRequest) error {
	resp, err := c.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		Post("/api/auth/rotate")
	if err != nil {
		return fmt.Errorf("rotate request: %w", err)
	}

	return mapHTTPError(resp)
}

// UpsertBlob stores an envelope under name via PUT /api/blobs/{name}.
// Requires a valid bearer token.
func (c *Client) UpsertBlob(ctx context.Context, name string, env models.Envelope, version int64) (models.UpsertBlobResponse, error) {
	var saved models.UpsertBlobResponse

	resp, err := c.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(models.UpsertBlobRequest{Envelope: env, Version: version}).
		SetResult(&saved).
		SetPathParam("name", name).
		Put("/api/blobs/{name}")
	if err != nil {
		return models.UpsertBlobResponse{}, fmt.Errorf("upsert blob request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.UpsertBlobResponse{}, err
	}

	return saved, nil
}

// GetBlob fetches the stored envelope for name via GET /api/blobs/{name}.
// Returns [ErrNotFound] (wrapped) when no blob with that name exists.
// Requires a valid bearer token.
func (c *Client) GetBlob(ctx context.Context, name string) (models.Blob, error) {
	resp, err := c.authedRequest(ctx).
		SetPathParam("name", name).
		Get("/api/blobs/{name}")
	if err != nil {
		return models.Blob{}, fmt.Errorf("get blob request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Blob{}, err
	}

	var blob models.Blob
	if err = json.Unmarshal(resp.Body(), &blob); err != nil {
		return models.Blob{}, fmt.Errorf("decode blob response: %w", err)
	}

	return blob, nil
}

// ListBlobs fetches one metadata page via GET /api/blobs. limit==0 leaves the
// page size to the server default. Requires a valid bearer token.
func (c *Client) ListBlobs(ctx context.Context, limit, offset int64) (models.BlobPage, error) {
	req := c.authedRequest(ctx)
	if limit > 0 {
		req.SetQueryParam("limit", strconv.FormatInt(limit, 10))
	}
	if offset > 0 {
		req.SetQueryParam("offset", strconv.FormatInt(offset, 10))
	}

	resp, err := req.Get("/api/blobs")
	if err != nil {
		return models.BlobPage{}, fmt.Errorf("list blobs request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.BlobPage{}, err
	}

	var page models.BlobPage
	if err = json.Unmarshal(resp.Body(), &page); err != nil {
		return models.BlobPage{}, fmt.Errorf("decode blob page: %w", err)
	}

	return page, nil
}

// DeleteBlob removes the blob stored under name via DELETE /api/blobs/{name}.
// Returns [ErrNotFound] (wrapped) when no blob with that name exists.
// Requires a valid bearer token.
func (c *Client) DeleteBlob(ctx context.Context, name string) error {
	resp, err := c.authedRequest(ctx).
		SetPathParam("name", name).
		Delete("/api/blobs/{name}")
	if err != nil {
		return fmt.Errorf("delete blob request: %w", err)
	}

	return mapHTTPError(resp)
}

func (c *Client) authedRequest(ctx context.Context) *resty.Request {
	req := c.client.R().SetContext(ctx)
	if token := c.Token(); token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}
	return req
}
