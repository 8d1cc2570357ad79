// Package mlclient proxies the external ML recommendation service.
//
// The fallback contract: any failure (service disabled, connection refused,
// non-2xx status, undecodable body) degrades to an empty response tagged
// "fallback". Errors never propagate to callers.
package mlclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/d60-Lab/tastegraph/pkg/logger"
)

const fallbackModel = "fallback"

type Client struct {
	http    *http.Client
	baseURL string
	enabled bool
}

func New(baseURL string, timeout time.Duration, enabled bool) *Client {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &Client{
		http:    &http.Client{Timeout: timeout},
		baseURL: baseURL,
		enabled: enabled,
	}
}

type RecipeRecommendation struct {
	RecipeID int64   `json:"recipe_id"`
	Score    float64 `json:"score"`
}

type RecommendationResponse struct {
	UserID          int64                  `json:"user_id"`
	Recommendations []RecipeRecommendation `json:"recommendations"`
	ModelUsed       string                 `json:"model_used"`
}

type SimilarUser struct {
	UserID int64   `json:"user_id"`
	Score  float64 `json:"score"`
}

type SimilarUsersResponse struct {
	UserID       int64         `json:"user_id"`
	SimilarUsers []SimilarUser `json:"similar_users"`
	ModelUsed    string        `json:"model_used"`
}

type recommendationRequest struct {
	UserID           int64   `json:"user_id"`
	TopK             int     `json:"top_k"`
	ExcludeRecipeIDs []int64 `json:"exclude_recipe_ids,omitempty"`
	ApplyDiversity   bool    `json:"apply_diversity"`
}

type similarUsersRequest struct {
	UserID int64 `json:"user_id"`
	TopK   int   `json:"top_k"`
}

// Recommendations returns personalized recipe recommendations.
// Never fails: degraded responses carry ModelUsed == "fallback".
func (c *Client) Recommendations(ctx context.Context, userID int64, topK int, exclude []int64) *RecommendationResponse {
	fallback := &RecommendationResponse{
		UserID:          userID,
		Recommendations: []RecipeRecommendation{},
		ModelUsed:       fallbackModel,
	}
	if !c.enabled {
		return fallback
	}
	if topK <= 0 {
		topK = 20
	}

	var out RecommendationResponse
	err := c.post(ctx, "/api/v1/recommendations/recipes",
		recommendationRequest{UserID: userID, TopK: topK, ExcludeRecipeIDs: exclude, ApplyDiversity: true}, &out)
	if err != nil {
		logger.Warn("ml backend recommendations failed, using fallback",
			zap.Int64("user_id", userID), zap.Error(err))
		return fallback
	}
	if out.Recommendations == nil {
		out.Recommendations = []RecipeRecommendation{}
	}
	return &out
}

// SimilarUsers returns preference-similar users, with the same fallback contract.
func (c *Client) SimilarUsers(ctx context.Context, userID int64, topK int) *SimilarUsersResponse {
	fallback := &SimilarUsersResponse{
		UserID:       userID,
		SimilarUsers: []SimilarUser{},
		ModelUsed:    fallbackModel,
	}
	if !c.enabled {
		return fallback
	}
	if topK <= 0 {
		topK = 10
	}

	var out SimilarUsersResponse
	err := c.post(ctx, "/api/v1/recommendations/users", similarUsersRequest{UserID: userID, TopK: topK}, &out)
	if err != nil {
		logger.Warn("ml backend similar-users failed, using fallback",
			zap.Int64("user_id", userID), zap.Error(err))
		return fallback
	}
	if out.SimilarUsers == nil {
		out.SimilarUsers = []SimilarUser{}
	}
	return &out
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("ml backend returned status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
