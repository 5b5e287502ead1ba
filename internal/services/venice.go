package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"fablestream/pkg/scene"
)

const (
	DefaultImageModel = "venice-sd35"
	DefaultMusicModel = "venice-audio"

	imageWidth  = 1024
	imageHeight = 576
)

// VeniceMediaService implements MediaService against the Venice AI
// generation endpoints.
type VeniceMediaService struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

type veniceImageRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
	Format string `json:"format,omitempty"`
}

type veniceImageResponse struct {
	ID     string   `json:"id"`
	Images []string `json:"images"`
	Error  *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

type veniceAudioRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Mood   string `json:"mood,omitempty"`
}

type veniceAudioResponse struct {
	ID    string `json:"id"`
	URL   string `json:"url"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// NewVeniceMediaService creates a Venice AI media client.
func NewVeniceMediaService(apiKey, baseURL string) *VeniceMediaService {
	return &VeniceMediaService{
		apiKey:  apiKey,
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

func (v *VeniceMediaService) post(ctx context.Context, path string, reqBody any, respBody any) error {
	data, err := json.Marshal(reqBody)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", v.baseURL+path, bytes.NewBuffer(data))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+v.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := v.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(body))
	}
	if err := json.Unmarshal(body, respBody); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

// GenerateImage renders scene art and returns the generated image URL.
func (v *VeniceMediaService) GenerateImage(ctx context.Context, description string) (string, error) {
	var resp veniceImageResponse
	err := v.post(ctx, "/image/generate", veniceImageRequest{
		Model:  DefaultImageModel,
		Prompt: description,
		Width:  imageWidth,
		Height: imageHeight,
		Format: "webp",
	}, &resp)
	if err != nil {
		return "", err
	}
	if resp.Error != nil {
		return "", fmt.Errorf("API error: %s", resp.Error.Message)
	}
	if len(resp.Images) == 0 {
		return "", fmt.Errorf("no image in response")
	}
	return resp.Images[0], nil
}

// GenerateMusic produces ambient audio and returns its URL.
func (v *VeniceMediaService) GenerateMusic(ctx context.Context, description string, mood scene.MusicMood) (string, error) {
	var resp veniceAudioResponse
	err := v.post(ctx, "/audio/generate", veniceAudioRequest{
		Model:  DefaultMusicModel,
		Prompt: description,
		Mood:   string(mood),
	}, &resp)
	if err != nil {
		return "", err
	}
	if resp.Error != nil {
		return "", fmt.Errorf("API error: %s", resp.Error.Message)
	}
	if resp.URL == "" {
		return "", fmt.Errorf("no audio in response")
	}
	return resp.URL, nil
}
