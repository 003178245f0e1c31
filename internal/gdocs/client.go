// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package gdocs wraps the Google Docs v1 API for tab-level reads and
// batched edits.
package gdocs

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	docs "google.golang.org/api/docs/v1"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/pdiddy/docsync/internal/httputil"
	"github.com/pdiddy/docsync/internal/secrets"
)

// TokenURL is the OAuth token endpoint used for the refresh-token exchange.
const TokenURL = "https://oauth2.googleapis.com/token"

// Service is the subset of the Docs API the sync stages need.
type Service interface {
	GetDocument(ctx context.Context, docID string) (*docs.Document, error)
	BatchUpdate(ctx context.Context, docID string, reqs []*docs.Request) (*docs.BatchUpdateDocumentResponse, error)
}

// Client implements Service on top of docs.Service.
type Client struct {
	svc *docs.Service
}

// NewClient constructs a Client. Callers supply authentication through
// opts, typically TokenSourceOption.
func NewClient(ctx context.Context, opts ...option.ClientOption) (*Client, error) {
	svc, err := docs.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating docs service: %w", err)
	}
	return &Client{svc: svc}, nil
}

// TokenSourceOption builds a client option that exchanges the long-lived
// refresh token for access tokens.
func TokenSourceOption(ctx context.Context, creds secrets.GoogleCredentials) option.ClientOption {
	endpoint := google.Endpoint
	endpoint.TokenURL = TokenURL
	cfg := &oauth2.Config{
		ClientID:     creds.ClientID,
		ClientSecret: creds.ClientSecret,
		Endpoint:     endpoint,
		Scopes:       []string{docs.DocumentsScope},
	}
	ts := cfg.TokenSource(ctx, &oauth2.Token{RefreshToken: creds.RefreshToken})
	return option.WithTokenSource(ts)
}

// GetDocument fetches a document with every tab's content.
func (c *Client) GetDocument(ctx context.Context, docID string) (*docs.Document, error) {
	doc, err := c.svc.Documents.Get(docID).IncludeTabsContent(true).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("fetching document %s: %w", docID, convertError(err))
	}
	return doc, nil
}

// BatchUpdate submits reqs as one atomic batch.
func (c *Client) BatchUpdate(ctx context.Context, docID string, reqs []*docs.Request) (*docs.BatchUpdateDocumentResponse, error) {
	resp, err := c.svc.Documents.BatchUpdate(docID, &docs.BatchUpdateDocumentRequest{
		Requests: reqs,
	}).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("updating document %s: %w", docID, convertError(err))
	}
	return resp, nil
}

func convertError(err error) error {
	var gerr *googleapi.Error
	if !errors.As(err, &gerr) {
		return err
	}
	body := gerr.Body
	if body == "" {
		body = gerr.Message
	}
	return &httputil.StatusError{
		Service: "google docs",
		Code:    gerr.Code,
		Body:    httputil.Truncate(body, httputil.MaxErrorBody),
	}
}
