package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/researchhub/researchhub-service/internal/domain"
	"github.com/researchhub/researchhub-service/internal/record"
)

func TestGetCandidatesSendsBearerToken(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode([]record.RawCandidate{{ID: "c-1", Name: "Rahul Mehta"}})
	}))
	defer server.Close()

	c := New(server.URL, "secret")

	candidates, err := c.GetCandidates(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "Bearer secret", gotAuth)
	require.Len(t, candidates, 1)
	assert.Equal(t, "Rahul Mehta", candidates[0].Name)
}

func TestCreateCandidatePostsPatch(t *testing.T) {
	var gotBody map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/candidates", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(record.RawCandidate{ID: "c-1", Name: "Rahul Mehta"})
	}))
	defer server.Close()

	c := New(server.URL, "secret")

	created, err := c.CreateCandidate(context.Background(), record.RawCandidatePatch{
		Name:        domain.Ptr("Rahul Mehta"),
		CurrentUser: "Maya",
	})
	require.NoError(t, err)

	assert.Equal(t, "c-1", created.ID)
	assert.Equal(t, "Rahul Mehta", gotBody["name"])
	assert.Equal(t, "Maya", gotBody["current_user"])
	// Unset patch fields must not reach the wire.
	_, hasNotes := gotBody["notes"]
	assert.False(t, hasNotes)
}

func TestErrorBodyNormalized(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"error": "candidate not found"})
	}))
	defer server.Close()

	c := New(server.URL, "secret")

	_, err := c.GetCandidate(context.Background(), "missing")

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "candidate not found", apiErr.Message)
}

func TestErrorMessageFieldFallback(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"message": "name is required"})
	}))
	defer server.Close()

	c := New(server.URL, "secret")

	_, err := c.CreateCandidate(context.Background(), record.RawCandidatePatch{})

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "name is required", apiErr.Message)
}

func TestErrorWithoutBodyUsesStatusText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	c := New(server.URL, "secret")

	_, err := c.GetCandidates(context.Background())

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Bad Gateway", apiErr.Message)
}

func TestDefaultClientHasNoTimeout(t *testing.T) {
	c := New("http://localhost", "secret")

	assert.Zero(t, c.httpc.Timeout)
}

func TestWithHTTPClientOverride(t *testing.T) {
	custom := &http.Client{Timeout: time.Second}
	c := New("http://localhost", "secret", WithHTTPClient(custom))

	assert.Same(t, custom, c.httpc)
}

func TestDeleteCandidate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		require.Equal(t, "/candidates/c-1", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]bool{"success": true})
	}))
	defer server.Close()

	c := New(server.URL, "secret")

	require.NoError(t, c.DeleteCandidate(context.Background(), "c-1"))
}

func TestGetDashboardStats(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/dashboard/stats", r.URL.Path)
		json.NewEncoder(w).Encode(record.RawStats{
			TotalCandidates:    4,
			CandidatesByStatus: map[string]int{"Scheduled": 2},
		})
	}))
	defer server.Close()

	c := New(server.URL, "secret")

	stats, err := c.GetDashboardStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, stats.TotalCandidates)
	assert.Equal(t, 2, stats.CandidatesByStatus["Scheduled"])
}
