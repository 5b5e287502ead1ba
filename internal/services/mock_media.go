package services

import (
	"context"
	"sync"

	"fablestream/pkg/scene"
)

// MockMediaService is a mock implementation of MediaService for testing.
type MockMediaService struct {
	GenerateImageFunc func(ctx context.Context, description string) (string, error)
	GenerateMusicFunc func(ctx context.Context, description string, mood scene.MusicMood) (string, error)

	ImageCalls []string
	MusicCalls []string

	mu sync.Mutex
}

func NewMockMediaService() *MockMediaService {
	return &MockMediaService{}
}

func (m *MockMediaService) GenerateImage(ctx context.Context, description string) (string, error) {
	m.mu.Lock()
	m.ImageCalls = append(m.ImageCalls, description)
	fn := m.GenerateImageFunc
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, description)
	}
	return "https://example.com/mock-image.webp", nil
}

func (m *MockMediaService) GenerateMusic(ctx context.Context, description string, mood scene.MusicMood) (string, error) {
	m.mu.Lock()
	m.MusicCalls = append(m.MusicCalls, description)
	fn := m.GenerateMusicFunc
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, description, mood)
	}
	return "https://example.com/mock-music.mp3", nil
}
