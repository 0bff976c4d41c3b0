// Package client is the typed REST client for the auction backend. Every
// error it returns falls into the taxonomy of internal/auctionerrors:
// validation failures never leave the process, transport failures come back
// as NetworkError, and structured 4xx/5xx rejections as ServerError. Nothing
// is retried automatically; a retry is always a new caller action.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"auction-client/internal/auctionerrors"
	model "auction-client/internal/models"
	"auction-client/services/auction/helpers"
	"auction-client/utils"

	"github.com/shopspring/decimal"
)

// MaxRequestBytes is the request-body ceiling enforced before send (10 MiB).
// Image payloads travel base64-embedded in JSON, so an oversized body is
// almost always an image the pipeline should have compressed harder.
const MaxRequestBytes = 10 << 20

type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

type Option func(*Client)

// WithToken sets the bearer credential attached to authenticated calls
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// New creates a client for the backend at baseURL
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Authenticated reports whether the client carries a bearer credential
func (c *Client) Authenticated() bool {
	return c.token != ""
}

// GetAuction fetches a single auction by ID
func (c *Client) GetAuction(ctx context.Context, auctionID string) (model.Auction, error) {
	var auction model.Auction
	err := c.do(ctx, http.MethodGet, "/api/auctions/"+url.PathEscape(auctionID), nil, &auction)
	return auction, err
}

// ListAuctions fetches the full browse listing
func (c *Client) ListAuctions(ctx context.Context) ([]model.Auction, error) {
	var auctions []model.Auction
	err := c.do(ctx, http.MethodGet, "/api/auctions", nil, &auctions)
	return auctions, err
}

// GetUserAuctions fetches every auction authored by the given user
func (c *Client) GetUserAuctions(ctx context.Context, userID string) ([]model.Auction, error) {
	var auctions []model.Auction
	err := c.do(ctx, http.MethodGet, "/api/users/"+url.PathEscape(userID)+"/auctions", nil, &auctions)
	return auctions, err
}

// CreateAuction submits a new listing
func (c *Client) CreateAuction(ctx context.Context, req helpers.CreateAuctionRequest) (model.Auction, error) {
	if err := req.Validate(time.Now().UTC()); err != nil {
		return model.Auction{}, fmt.Errorf("client: %w: %v", auctionerrors.ErrInvalidAuction, err)
	}
	var auction model.Auction
	err := c.do(ctx, http.MethodPost, "/api/auctions", req, &auction)
	return auction, err
}

// UpdateAuction applies owner edits to an open auction
func (c *Client) UpdateAuction(ctx context.Context, auctionID string, req helpers.UpdateAuctionRequest) (model.Auction, error) {
	if err := req.Validate(); err != nil {
		return model.Auction{}, fmt.Errorf("client: %w: %v", auctionerrors.ErrInvalidAuction, err)
	}
	var auction model.Auction
	err := c.do(ctx, http.MethodPut, "/api/auctions/"+url.PathEscape(auctionID), req, &auction)
	return auction, err
}

// DeleteAuction removes an auction the caller owns
func (c *Client) DeleteAuction(ctx context.Context, auctionID string) error {
	return c.do(ctx, http.MethodDelete, "/api/auctions/"+url.PathEscape(auctionID), nil, nil)
}

// PlaceBid submits a bid and returns the refreshed auction. Callers should
// pre-check with bidding.ValidateBid for fast feedback, but the response here
// is authoritative either way.
func (c *Client) PlaceBid(ctx context.Context, auctionID string, amount decimal.Decimal) (model.Auction, error) {
	var auction model.Auction
	err := c.do(ctx, http.MethodPost, "/api/auctions/"+url.PathEscape(auctionID)+"/bid", helpers.PlaceBidRequest{Amount: amount}, &auction)
	return auction, err
}

// do executes one round trip and maps every failure into the error taxonomy
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("client: marshal request: %w", err)
		}
		if len(payload) > MaxRequestBytes {
			return fmt.Errorf("client: %d byte body: %w", len(payload), auctionerrors.ErrPayloadTooLarge)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("client: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", utils.GenerateID())
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &auctionerrors.NetworkError{Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, MaxRequestBytes+1))
	if err != nil {
		return &auctionerrors.NetworkError{Err: err}
	}

	if resp.StatusCode >= 400 {
		serverErr := helpers.ParseServerError(resp.StatusCode, raw)
		utils.Debug("client: request rejected", map[string]any{
			"method": method,
			"path":   path,
			"status": resp.StatusCode,
		})
		return serverErr
	}

	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("client: decode response: %w", err)
		}
	}
	return nil
}
