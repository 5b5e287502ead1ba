package services

import (
	"context"

	"fablestream/pkg/scene"
)

// MediaService generates auxiliary media from the scene's descriptions.
// Implementations return a URL or asset id; rendering bytes is the
// client's concern.
type MediaService interface {
	// GenerateImage renders scene art from its image description.
	GenerateImage(ctx context.Context, description string) (string, error)

	// GenerateMusic produces ambient audio from the scene's music
	// description and mood.
	GenerateMusic(ctx context.Context, description string, mood scene.MusicMood) (string, error)
}
