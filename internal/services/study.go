package services

import (
	"context"

	"github.com/sradha-notes/backend/internal/model"
	"github.com/sradha-notes/backend/internal/store"
)

// Study coordinates sections and their PDFs.
type Study struct {
	store store.Store
}

func NewStudy(s store.Store) *Study {
	return &Study{store: s}
}

// CreatePdf verifies the target section exists before storing the document,
// so a PDF can never be filed under a section id that was already deleted.
func (s *Study) CreatePdf(ctx context.Context, p *model.StudyPdf) (*model.StudyPdf, error) {
	if p.SectionID != "" {
		if _, err := s.store.Sections().GetByID(ctx, p.SectionID); err != nil {
			return nil, err
		}
	}
	return s.store.Pdfs().Create(ctx, p)
}

// DeleteSection removes the section and every PDF filed under it, returning
// the number of PDFs removed.
func (s *Study) DeleteSection(ctx context.Context, id string) (int64, error) {
	return s.store.Sections().DeleteCascade(ctx, id)
}
