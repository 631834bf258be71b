package advice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/avilik92/weather-dashboard/internal/weather"
)

const (
	defaultAPIURL = "https://generativelanguage.googleapis.com/v1beta/models/gemini-2.0-flash:generateContent"

	defaultRole = "You are a friendly weather assistant. Give one short, practical piece of advice for the day."

	// FallbackMessage is returned whenever the generator cannot be reached or
	// returns nothing usable.
	FallbackMessage = "Weather advice is unavailable right now. Dress for the conditions outside and check back later."
)

// Client asks a text-generation service for a short piece of weather advice
// derived from the current snapshot. It is strictly best-effort: any failure
// yields the fixed fallback message, never an error.
type Client struct {
	client *http.Client
	apiURL string
	apiKey string
	role   string
}

// New creates a Client. An empty apiURL uses the default endpoint.
func New(client *http.Client, apiKey, apiURL string) *Client {
	if apiURL == "" {
		apiURL = defaultAPIURL
	}
	return &Client{
		client: client,
		apiURL: apiURL,
		apiKey: apiKey,
		role:   defaultRole,
	}
}

// BuildPrompt turns the snapshot's headline figures into a natural-language
// prompt.
func BuildPrompt(snap *weather.Snapshot) string {
	condition := "unknown conditions"
	if len(snap.Current.Conditions) > 0 {
		condition = snap.Current.Conditions[0].Description
	}

	unit := "°C"
	switch snap.Units {
	case weather.UnitsImperial:
		unit = "°F"
	case weather.UnitsStandard:
		unit = "K"
	}

	return fmt.Sprintf(
		"The weather in %s is currently %.1f%s with %s. What should I keep in mind today?",
		snap.Current.LocationLabel, snap.Current.Temps.Temp, unit, condition,
	)
}

type generateRequest struct {
	SystemInstruction promptParts   `json:"system_instruction"`
	Contents          []promptParts `json:"contents"`
}

type promptParts struct {
	Parts []promptText `json:"parts"`
}

type promptText struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []promptText `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// Generate returns advice text for the snapshot, or the fallback message.
func (c *Client) Generate(ctx context.Context, snap *weather.Snapshot) string {
	if c.apiKey == "" || snap == nil {
		return FallbackMessage
	}

	body := generateRequest{
		SystemInstruction: promptParts{Parts: []promptText{{Text: c.role}}},
		Contents:          []promptParts{{Parts: []promptText{{Text: BuildPrompt(snap)}}}},
	}

	payload, err := json.Marshal(body)
	if err != nil {
		log.Printf("advice: marshal request: %v", err)
		return FallbackMessage
	}

	url := fmt.Sprintf("%s?key=%s", c.apiURL, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		log.Printf("advice: build request: %v", err)
		return FallbackMessage
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		log.Printf("advice: request failed: %v", err)
		return FallbackMessage
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.Printf("advice: unexpected status %d", resp.StatusCode)
		return FallbackMessage
	}

	var decoded generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		log.Printf("advice: decode response: %v", err)
		return FallbackMessage
	}

	if len(decoded.Candidates) == 0 || len(decoded.Candidates[0].Content.Parts) == 0 {
		return FallbackMessage
	}

	text := decoded.Candidates[0].Content.Parts[0].Text
	if text == "" {
		return FallbackMessage
	}
	return text
}
