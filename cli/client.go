package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

// ApiClient handles API requests to the Garderobe API
type ApiClient struct {
	httpClient *http.Client
	BaseURL    string
	Token      string
	UseMock    bool
}

// NewApiClient creates a new API client
func NewApiClient() *ApiClient {
	baseURL := os.Getenv("GARDEROBE_API_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	client := &ApiClient{
		httpClient: &http.Client{
			Timeout: time.Second * 10,
		},
		BaseURL: baseURL,
		Token:   os.Getenv("GARDEROBE_TOKEN"),
		UseMock: false, // Default to trying the real server first
	}

	// Verify connectivity - if server is not available, use mock data
	if !client.ping() {
		fmt.Printf("Warning: API server at %s is not available. Using mock data.\n", baseURL)
		client.UseMock = true
	}

	return client
}

// ping checks if the API server is available
func (c *ApiClient) ping() bool {
	resp, err := c.httpClient.Get(c.BaseURL + "/health")
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

// CheckHealth checks if the API is up and running
func (c *ApiClient) CheckHealth() (bool, error) {
	resp, err := c.httpClient.Get(c.BaseURL + "/health")
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("API health check failed with status code: %d", resp.StatusCode)
	}

	return true, nil
}

// WardrobeItem represents a garment in the wardrobe
type WardrobeItem struct {
	ID     string   `json:"id"`
	Colors []string `json:"colors"`
}

// OutfitSlot references one garment of an outfit
type OutfitSlot struct {
	ID    string `json:"id"`
	Color string `json:"color"`
}

// Outfit represents the plan for one date
type Outfit struct {
	Date     string      `json:"date"`
	ImageURI string      `json:"imageUri,omitempty"`
	Top      *OutfitSlot `json:"top,omitempty"`
	Bottom   *OutfitSlot `json:"bottom,omitempty"`
	Footwear *OutfitSlot `json:"footwear,omitempty"`
}

// PlanResult is the response to a week planning request
type PlanResult struct {
	Mode    string            `json:"mode"`
	Outfits map[string]Outfit `json:"outfits"`
}

func (c *ApiClient) do(method, path string, payload interface{}) (*http.Response, error) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		body = bytes.NewBuffer(data)
	}

	req, err := http.NewRequest(method, c.BaseURL+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	return c.httpClient.Do(req)
}

// GetWardrobe retrieves the current wardrobe inventory
func (c *ApiClient) GetWardrobe() ([]WardrobeItem, error) {
	if c.UseMock {
		return c.getMockWardrobe(), nil
	}

	resp, err := c.do("GET", "/api/v1/wardrobe", nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to get wardrobe with status code: %d", resp.StatusCode)
	}

	var result struct {
		Items []WardrobeItem `json:"items"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}

	return result.Items, nil
}

// AddColor adds a color variant to a garment
func (c *ApiClient) AddColor(itemID, color string) ([]WardrobeItem, error) {
	if c.UseMock {
		return c.getMockWardrobe(), nil
	}

	resp, err := c.do("POST", "/api/v1/wardrobe/"+itemID+"/colors", map[string]string{"color": color})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("failed to add color: %s", string(body))
	}

	var result struct {
		Items     []WardrobeItem `json:"items"`
		SyncError string         `json:"syncError"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}

	return result.Items, nil
}

// RemoveColor removes the color at the given position from a garment
func (c *ApiClient) RemoveColor(itemID string, index int) ([]WardrobeItem, error) {
	if c.UseMock {
		return c.getMockWardrobe(), nil
	}

	resp, err := c.do("DELETE", fmt.Sprintf("/api/v1/wardrobe/%s/colors/%d", itemID, index), nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("failed to remove color: %s", string(body))
	}

	var result struct {
		Items []WardrobeItem `json:"items"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}

	return result.Items, nil
}

// GetOutfits retrieves the outfit calendar
func (c *ApiClient) GetOutfits() (map[string]Outfit, error) {
	if c.UseMock {
		return c.getMockOutfits(), nil
	}

	resp, err := c.do("GET", "/api/v1/outfits", nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to get outfits with status code: %d", resp.StatusCode)
	}

	var result struct {
		Outfits map[string]Outfit `json:"outfits"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}

	return result.Outfits, nil
}

// PlanWeek asks the server to plan outfits for the week starting at the
// given date
func (c *ApiClient) PlanWeek(start string, useAI bool) (*PlanResult, error) {
	if c.UseMock {
		return &PlanResult{Mode: "random", Outfits: c.getMockOutfits()}, nil
	}

	payload := map[string]interface{}{"start": start, "useAI": useAI}
	resp, err := c.do("POST", "/api/v1/planner/week", payload)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("failed to plan week: %s", string(body))
	}

	var result PlanResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}

	return &result, nil
}

// Mock data generators
// getMockWardrobe generates mock wardrobe data
func (c *ApiClient) getMockWardrobe() []WardrobeItem {
	return []WardrobeItem{
		{ID: "shirt", Colors: []string{"#E74C3C", "#3498DB"}},
		{ID: "trousers", Colors: []string{"#34495E"}},
		{ID: "sneakers", Colors: []string{"#9B59B6"}},
	}
}

// getMockOutfits generates mock outfit data
func (c *ApiClient) getMockOutfits() map[string]Outfit {
	today := time.Now().Format("2006-01-02")
	return map[string]Outfit{
		today: {
			Date:     today,
			Top:      &OutfitSlot{ID: "shirt", Color: "#E74C3C"},
			Bottom:   &OutfitSlot{ID: "trousers", Color: "#34495E"},
			Footwear: &OutfitSlot{ID: "sneakers", Color: "#9B59B6"},
		},
	}
}
