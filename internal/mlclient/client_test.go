package mlclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDisabledClientFallsBack(t *testing.T) {
	c := New("http://localhost:0", time.Second, false)

	res := c.Recommendations(context.Background(), 1, 10, nil)
	assert.Equal(t, "fallback", res.ModelUsed)
	assert.Empty(t, res.Recommendations)
	assert.NotNil(t, res.Recommendations)

	users := c.SimilarUsers(context.Background(), 1, 5)
	assert.Equal(t, "fallback", users.ModelUsed)
	assert.Empty(t, users.SimilarUsers)
}

func TestUnreachableBackendFallsBack(t *testing.T) {
	c := New("http://127.0.0.1:1", 200*time.Millisecond, true)

	res := c.Recommendations(context.Background(), 1, 10, nil)
	assert.Equal(t, "fallback", res.ModelUsed)
	assert.Empty(t, res.Recommendations)
}

func TestServerErrorFallsBack(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second, true)
	res := c.Recommendations(context.Background(), 1, 10, nil)
	assert.Equal(t, "fallback", res.ModelUsed)
}

func TestMalformedBodyFallsBack(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("not json"))
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second, true)
	res := c.SimilarUsers(context.Background(), 1, 5)
	assert.Equal(t, "fallback", res.ModelUsed)
	assert.NotNil(t, res.SimilarUsers)
}

func TestRecommendationsPassThrough(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/recommendations/recipes", r.URL.Path)

		var req map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.EqualValues(t, 42, req["user_id"])
		assert.EqualValues(t, 5, req["top_k"])

		_ = json.NewEncoder(w).Encode(RecommendationResponse{
			UserID: 42,
			Recommendations: []RecipeRecommendation{
				{RecipeID: 7, Score: 0.93},
			},
			ModelUsed: "two-tower-v3",
		})
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second, true)
	res := c.Recommendations(context.Background(), 42, 5, nil)
	assert.Equal(t, "two-tower-v3", res.ModelUsed)
	require.Len(t, res.Recommendations, 1)
	assert.EqualValues(t, 7, res.Recommendations[0].RecipeID)
}

func TestSimilarUsersPassThrough(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/recommendations/users", r.URL.Path)
		_ = json.NewEncoder(w).Encode(SimilarUsersResponse{
			UserID:       42,
			SimilarUsers: []SimilarUser{{UserID: 9, Score: 0.8}},
			ModelUsed:    "embedding-knn",
		})
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second, true)
	res := c.SimilarUsers(context.Background(), 42, 3)
	assert.Equal(t, "embedding-knn", res.ModelUsed)
	require.Len(t, res.SimilarUsers, 1)
	assert.EqualValues(t, 9, res.SimilarUsers[0].UserID)
}
