// Package places wraps the Foursquare Places search API, used to pre-fill
// restaurant creation forms. It is a thin proxy with no bearing on the core
// data model.
package places

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const defaultBaseURL = "https://places-api.foursquare.com"

// restaurantCategory is Foursquare's top-level "Dining and Drinking" category.
const restaurantCategory = "13000"

// Category is one Foursquare place category.
type Category struct {
	Name string `json:"name"`
}

// Place is one search candidate.
type Place struct {
	Name       string `json:"name"`
	Location   Location `json:"location"`
	Categories []Category `json:"categories"`
}

// Location carries the candidate's formatted address.
type Location struct {
	FormattedAddress string `json:"formatted_address"`
}

type searchResponse struct {
	Results []Place `json:"results"`
}

// Client calls the Foursquare Places API.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a places client with the given API key.
func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// NewClientWithBaseURL is NewClient pointed at a different endpoint, for tests.
func NewClientWithBaseURL(apiKey, baseURL string) *Client {
	c := NewClient(apiKey)
	c.baseURL = baseURL
	return c
}

// Search queries restaurant candidates near the given location. A blank
// location falls back to a country-wide search.
func (c *Client) Search(ctx context.Context, query, near string) ([]Place, error) {
	if near == "" {
		near = "United States"
	}

	params := url.Values{}
	params.Set("query", query)
	params.Set("near", near)
	params.Set("categories", restaurantCategory)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/places/search?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Places-Api-Version", "2025-06-17")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("foursquare search failed: status %d: %s", resp.StatusCode, body)
	}

	var parsed searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	return parsed.Results, nil
}
