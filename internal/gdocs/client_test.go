// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package gdocs

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	docs "google.golang.org/api/docs/v1"
	"google.golang.org/api/option"

	"github.com/pdiddy/docsync/internal/httputil"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)
	c, err := NewClient(context.Background(),
		option.WithEndpoint(ts.URL+"/"),
		option.WithHTTPClient(ts.Client()),
	)
	require.NoError(t, err)
	return c
}

func TestGetDocument(t *testing.T) {
	var gotPath, gotTabs string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotTabs = r.URL.Query().Get("includeTabsContent")
		json.NewEncoder(w).Encode(map[string]any{
			"documentId": "doc1",
			"tabs": []any{
				map[string]any{"tabProperties": map[string]any{"tabId": "t.0"}},
			},
		})
	})

	doc, err := c.GetDocument(context.Background(), "doc1")
	require.NoError(t, err)
	assert.Equal(t, "/v1/documents/doc1", gotPath)
	assert.Equal(t, "true", gotTabs)
	require.Len(t, doc.Tabs, 1)
	assert.Equal(t, "t.0", doc.Tabs[0].TabProperties.TabId)
}

func TestBatchUpdate(t *testing.T) {
	var got docs.BatchUpdateDocumentRequest
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.True(t, strings.HasSuffix(r.URL.Path, "/v1/documents/doc1:batchUpdate"), r.URL.Path)
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &got))
		json.NewEncoder(w).Encode(map[string]any{
			"documentId":   "doc1",
			"writeControl": map[string]any{"requiredRevisionId": "rev-abc"},
		})
	})

	reqs := []*docs.Request{{
		InsertText: &docs.InsertTextRequest{
			Location: &docs.Location{Index: 1, TabId: "t.0"},
			Text:     "hello\n",
		},
	}}
	resp, err := c.BatchUpdate(context.Background(), "doc1", reqs)
	require.NoError(t, err)
	assert.Equal(t, "rev-abc", resp.WriteControl.RequiredRevisionId)
	require.Len(t, got.Requests, 1)
	assert.Equal(t, "hello\n", got.Requests[0].InsertText.Text)
}

func TestGetDocument_StatusError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"error":{"code":403,"message":"The caller does not have permission"}}`))
	})

	_, err := c.GetDocument(context.Background(), "doc1")
	require.Error(t, err)
	var se *httputil.StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, 403, se.Code)
	assert.Contains(t, se.Body, "permission")
	assert.LessOrEqual(t, len(se.Body), httputil.MaxErrorBody)
}
