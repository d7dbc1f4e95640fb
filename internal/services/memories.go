package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/sradha-notes/backend/internal/media"
	"github.com/sradha-notes/backend/internal/model"
	"github.com/sradha-notes/backend/internal/store"
)

// MemoryInput is the create payload for a photo memory.
type MemoryInput struct {
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Images      []model.ImageInput `json:"images"`
	Date        *time.Time         `json:"date"`
}

// Memories wraps the memory store with media upload handling.
type Memories struct {
	store store.Store
	media media.Uploader
	log   zerolog.Logger
}

func NewMemories(s store.Store, up media.Uploader, log zerolog.Logger) *Memories {
	return &Memories{store: s, media: up, log: log}
}

func (m *Memories) Create(ctx context.Context, in MemoryInput) (*model.Memory, error) {
	images, err := resolveImages(ctx, m.media, in.Images)
	if err != nil {
		return nil, err
	}
	return m.store.Memories().Create(ctx, &model.Memory{
		Title:       in.Title,
		Description: in.Description,
		Images:      images,
		Date:        in.Date,
	})
}

// Delete releases the memory's hosted images and then removes the record.
func (m *Memories) Delete(ctx context.Context, id string) error {
	mem, err := m.store.Memories().GetByID(ctx, id)
	if err != nil {
		return err
	}
	releaseImages(ctx, m.media, m.log, mem.Images)
	return m.store.Memories().Delete(ctx, id)
}
