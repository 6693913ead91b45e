// Package perenual wraps the Perenual plant-data API with time-boxed
// memoization. Transport failures degrade to empty results; callers treat
// "no data" as a normal outcome.
package perenual

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/lemiae/PlantShelf/apperr"
)

const (
	searchTTL  = time.Hour
	detailsTTL = 24 * time.Hour
	careTTL    = 24 * time.Hour
)

// Client talks to the Perenual API. Construct one per process and pass it by
// handle to whichever flow needs remote data.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	cache   Cache
}

// NewClient builds a client. A nil cache gets an in-process MemoryCache.
func NewClient(baseURL, apiKey string, timeout time.Duration, cache Cache) *Client {
	if cache == nil {
		cache = NewMemoryCache()
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: timeout},
		cache:   cache,
	}
}

// Search looks up candidate species by free-text query. Results are memoized
// for an hour per (query, limit). Any failure yields an empty slice.
func (c *Client) Search(ctx context.Context, query string, limit int) []PlantData {
	cacheKey := fmt.Sprintf("perenual_search_%s_%d", query, limit)
	if cached, ok := c.cache.Get(cacheKey); ok {
		return cached.([]PlantData)
	}

	params := url.Values{}
	params.Set("key", c.apiKey)
	params.Set("q", query)
	params.Set("page", "1")
	params.Set("per_page", strconv.Itoa(limit))
	params.Set("indoor", "1")

	var envelope searchEnvelope
	if err := c.getJSON(ctx, c.baseURL+"/species-list", params, &envelope); err != nil {
		log.Println("perenual search:", err)
		return nil
	}

	c.cache.Set(cacheKey, envelope.Data, searchTTL)
	return envelope.Data
}

// Details fetches the full record for one species. Memoized for 24 hours;
// details change rarely. Returns nil on any failure.
func (c *Client) Details(ctx context.Context, plantID int) *PlantData {
	cacheKey := fmt.Sprintf("perenual_plant_%d", plantID)
	if cached, ok := c.cache.Get(cacheKey); ok {
		return cached.(*PlantData)
	}

	params := url.Values{}
	params.Set("key", c.apiKey)

	var data PlantData
	u := fmt.Sprintf("%s/species/details/%d", c.baseURL, plantID)
	if err := c.getJSON(ctx, u, params, &data); err != nil {
		log.Println("perenual details:", err)
		return nil
	}

	c.cache.Set(cacheKey, &data, detailsTTL)
	return &data
}

// CareGuides fetches the care guide sections for one species. Memoized for
// 24 hours. Returns nil on any failure.
func (c *Client) CareGuides(ctx context.Context, plantID int) []CareGuide {
	cacheKey := fmt.Sprintf("perenual_care_%d", plantID)
	if cached, ok := c.cache.Get(cacheKey); ok {
		return cached.([]CareGuide)
	}

	params := url.Values{}
	params.Set("key", c.apiKey)
	params.Set("species_id", strconv.Itoa(plantID))

	var envelope careEnvelope
	if err := c.getJSON(ctx, c.baseURL+"/species-care-guide-list", params, &envelope); err != nil {
		log.Println("perenual care guides:", err)
		return nil
	}

	c.cache.Set(cacheKey, envelope.Data, careTTL)
	return envelope.Data
}

func (c *Client) getJSON(ctx context.Context, rawURL string, params url.Values, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL+"?"+params.Encode(), nil)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %v: %w", rawURL, err, apperr.ErrRemoteUnavailable)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%s: status %d: %w", rawURL, resp.StatusCode, apperr.ErrRemoteUnavailable)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
