// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// Package mailchimp implements the MailChimp Marketing API v3 adapter.
package mailchimp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/mailsync-io/mailchimp-proxy-service/internal/domain/model"
	"github.com/mailsync-io/mailchimp-proxy-service/pkg/httpclient"
	"github.com/mailsync-io/mailchimp-proxy-service/pkg/redaction"
)

// basicAuthRoundTripper injects the API key on every request. MailChimp
// accepts any username with the API key as the BasicAuth password.
type basicAuthRoundTripper struct {
	apiKey string
}

func (rt *basicAuthRoundTripper) RoundTrip(req *http.Request, next func(*http.Request) (*http.Response, error)) (*http.Response, error) {
	req.SetBasicAuth("anystring", rt.apiKey)
	return next(req)
}

// ClientInterface defines the contract for MailChimp API operations
type ClientInterface interface {
	CreateList(ctx context.Context, list *model.ListWire) (*ListObject, error)
	UpdateList(ctx context.Context, mailChimpID string, list *model.ListWire) (*ListObject, error)
	DeleteList(ctx context.Context, mailChimpID string) error
	CreateMember(ctx context.Context, mailChimpListID string, member *model.MemberWire) (*MemberObject, error)
	UpdateMember(ctx context.Context, mailChimpListID, mailChimpMemberID string, member *model.MemberWire) (*MemberObject, error)
	DeleteMember(ctx context.Context, mailChimpListID, mailChimpMemberID string) error
	IsReady(ctx context.Context) error
}

// Client handles all MailChimp API operations
type Client struct {
	config     Config
	baseURL    string
	httpClient *httpclient.Client
}

// NewClient creates a new MailChimp client with the given configuration
func NewClient(cfg Config) (*Client, error) {
	if cfg.MockMode {
		return nil, nil // Return nil for mock mode - orchestrator will handle this
	}

	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API key is required for MailChimp client")
	}

	baseURL, err := cfg.ResolveBaseURL()
	if err != nil {
		return nil, err
	}

	// Use reusable httpclient from pkg
	httpConfig := httpclient.Config{
		Timeout:      cfg.Timeout,
		MaxRetries:   cfg.MaxRetries,
		RetryDelay:   cfg.RetryDelay,
		RetryBackoff: true,
	}

	client := &Client{
		config:     cfg,
		baseURL:    baseURL,
		httpClient: httpclient.NewClient(httpConfig),
	}

	client.httpClient.AddRoundTripper(&basicAuthRoundTripper{apiKey: cfg.APIKey})

	slog.InfoContext(context.Background(), "MailChimp client initialized",
		"datacenter", cfg.Datacenter())

	return client, nil
}

// CreateList creates a list in MailChimp
func (c *Client) CreateList(ctx context.Context, list *model.ListWire) (*ListObject, error) {
	slog.InfoContext(ctx, "creating list in MailChimp", "name", deref(list.Name))

	var response ListObject
	err := c.makeRequest(ctx, http.MethodPost, "/lists", list, &response)
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "list created successfully in MailChimp",
		"mailchimp_id", response.ID)

	return &response, nil
}

// UpdateList updates a list in MailChimp
func (c *Client) UpdateList(ctx context.Context, mailChimpID string, list *model.ListWire) (*ListObject, error) {
	slog.InfoContext(ctx, "updating list in MailChimp", "mailchimp_id", mailChimpID)

	var response ListObject
	path := fmt.Sprintf("/lists/%s", mailChimpID)
	err := c.makeRequest(ctx, http.MethodPatch, path, list, &response)
	if err != nil {
		return nil, err
	}

	return &response, nil
}

// DeleteList removes a list from MailChimp
func (c *Client) DeleteList(ctx context.Context, mailChimpID string) error {
	slog.InfoContext(ctx, "deleting list from MailChimp", "mailchimp_id", mailChimpID)

	path := fmt.Sprintf("/lists/%s", mailChimpID)
	return c.makeRequest(ctx, http.MethodDelete, path, nil, nil)
}

// CreateMember adds a member to a MailChimp list
func (c *Client) CreateMember(ctx context.Context, mailChimpListID string, member *model.MemberWire) (*MemberObject, error) {
	slog.InfoContext(ctx, "creating member in MailChimp",
		"mailchimp_list_id", mailChimpListID,
		"email", redaction.RedactEmail(deref(member.EmailAddress)),
	)

	var response MemberObject
	path := fmt.Sprintf("/lists/%s/members", mailChimpListID)
	err := c.makeRequest(ctx, http.MethodPost, path, member, &response)
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "member created successfully in MailChimp",
		"mailchimp_list_id", mailChimpListID,
		"mailchimp_member_id", response.ID,
	)

	return &response, nil
}

// UpdateMember updates a member of a MailChimp list
func (c *Client) UpdateMember(ctx context.Context, mailChimpListID, mailChimpMemberID string, member *model.MemberWire) (*MemberObject, error) {
	slog.InfoContext(ctx, "updating member in MailChimp",
		"mailchimp_list_id", mailChimpListID,
		"mailchimp_member_id", mailChimpMemberID,
	)

	var response MemberObject
	path := fmt.Sprintf("/lists/%s/members/%s", mailChimpListID, mailChimpMemberID)
	err := c.makeRequest(ctx, http.MethodPut, path, member, &response)
	if err != nil {
		return nil, err
	}

	return &response, nil
}

// DeleteMember removes a member from a MailChimp list
func (c *Client) DeleteMember(ctx context.Context, mailChimpListID, mailChimpMemberID string) error {
	slog.InfoContext(ctx, "deleting member from MailChimp",
		"mailchimp_list_id", mailChimpListID,
		"mailchimp_member_id", mailChimpMemberID,
	)

	path := fmt.Sprintf("/lists/%s/members/%s", mailChimpListID, mailChimpMemberID)
	return c.makeRequest(ctx, http.MethodDelete, path, nil, nil)
}

// makeRequest centralizes all API calls with authentication and error handling
func (c *Client) makeRequest(ctx context.Context, method string, path string, payload any, result any) error {
	reqURL := c.baseURL + path

	var body io.Reader
	headers := map[string]string{}

	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		body = bytes.NewReader(encoded)
		headers["Content-Type"] = "application/json"
	}

	// Make request using httpclient (with retry logic + RoundTripper auth)
	resp, err := c.httpClient.Request(ctx, method, reqURL, body, headers)
	if err != nil {
		return MapHTTPError(ctx, err)
	}

	// Parse response
	if result != nil && len(resp.Body) > 0 {
		if err := json.Unmarshal(resp.Body, result); err != nil {
			return fmt.Errorf("failed to parse response: %w", err)
		}
	}

	return nil
}

// IsReady checks if the MailChimp API is accessible
func (c *Client) IsReady(ctx context.Context) error {
	resp, err := c.httpClient.Request(ctx, http.MethodGet, c.baseURL+"/ping", nil, nil)
	if err != nil {
		return fmt.Errorf("MailChimp API unreachable: %w", MapHTTPError(ctx, err))
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("MailChimp API unhealthy (status: %d)", resp.StatusCode)
	}
	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
