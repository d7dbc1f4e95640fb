package services

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/sradha-notes/backend/internal/media"
	"github.com/sradha-notes/backend/internal/model"
	"github.com/sradha-notes/backend/internal/store"
)

// NoteInput is the create/update payload. Images accepts data URIs, hosted
// URLs, or image objects.
type NoteInput struct {
	Title      *string            `json:"title"`
	Content    *string            `json:"content"`
	Color      *string            `json:"color"`
	Emoji      *string            `json:"emoji"`
	Category   *string            `json:"category"`
	Images     []model.ImageInput `json:"images"`
	IsLoved    *bool              `json:"isLoved"`
	IsPinned   *bool              `json:"isPinned"`
	IsArchived *bool              `json:"isArchived"`
}

// Notes wraps the note store with media upload handling.
type Notes struct {
	store store.Store
	media media.Uploader
	log   zerolog.Logger
}

func NewNotes(s store.Store, up media.Uploader, log zerolog.Logger) *Notes {
	return &Notes{store: s, media: up, log: log}
}

func strOr(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func boolOr(p *bool) bool {
	if p == nil {
		return false
	}
	return *p
}

func (n *Notes) Create(ctx context.Context, in NoteInput) (*model.Note, error) {
	images, err := resolveImages(ctx, n.media, in.Images)
	if err != nil {
		return nil, err
	}
	return n.store.Notes().Create(ctx, &model.Note{
		Title:      strOr(in.Title),
		Content:    strOr(in.Content),
		Color:      strOr(in.Color),
		Emoji:      strOr(in.Emoji),
		Category:   strOr(in.Category),
		Images:     images,
		IsLoved:    boolOr(in.IsLoved),
		IsPinned:   boolOr(in.IsPinned),
		IsArchived: boolOr(in.IsArchived),
	})
}

func (n *Notes) Update(ctx context.Context, id string, in NoteInput) (*model.Note, error) {
	u := model.NoteUpdate{
		Title:      in.Title,
		Content:    in.Content,
		Color:      in.Color,
		Emoji:      in.Emoji,
		Category:   in.Category,
		IsLoved:    in.IsLoved,
		IsPinned:   in.IsPinned,
		IsArchived: in.IsArchived,
	}
	// New data-URI images are uploaded and appended to the existing set;
	// already-hosted entries in the payload are ignored.
	if len(in.Images) > 0 {
		current, err := n.store.Notes().GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		merged := current.Images
		for _, img := range in.Images {
			if !strings.HasPrefix(img.Raw, "data:") {
				continue
			}
			asset, err := n.media.UploadDataURI(ctx, img.Raw)
			if err != nil {
				return nil, err
			}
			merged = append(merged, model.Image{URL: asset.URL, ExternalID: asset.ExternalID})
		}
		u.Images = merged
	}
	return n.store.Notes().Update(ctx, id, u)
}

// Delete releases the note's hosted images and then removes the record.
// Release failures are logged, never fatal.
func (n *Notes) Delete(ctx context.Context, id string) error {
	note, err := n.store.Notes().GetByID(ctx, id)
	if err != nil {
		return err
	}
	releaseImages(ctx, n.media, n.log, note.Images)
	return n.store.Notes().Delete(ctx, id)
}

// Duplicate copies a note with all flags cleared. The content always gets a
// " (Copy)" suffix; the title only when one exists. Images are shared, not
// re-uploaded.
func (n *Notes) Duplicate(ctx context.Context, id string) (*model.Note, error) {
	src, err := n.store.Notes().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	title := src.Title
	if title != "" {
		title += " (Copy)"
	}
	return n.store.Notes().Create(ctx, &model.Note{
		Title:    title,
		Content:  src.Content + " (Copy)",
		Color:    src.Color,
		Emoji:    src.Emoji,
		Category: src.Category,
		Images:   src.Images,
	})
}
