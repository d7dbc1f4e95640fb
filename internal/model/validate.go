package model

import (
	"fmt"
	"time"
)

// Enum values shared by validation and the stores. Defaults are applied by
// Normalize before Validate runs, so stores can call both on every insert.
var (
	NoteColors     = []string{"rose", "purple", "blue", "yellow", "green", "orange"}
	NoteCategories = []string{"personal", "study", "dreams", "memories", "ideas"}
	MoodNames      = []string{"Happy", "Loved", "Peaceful", "Excited", "Tired", "Sad", "Frustrated", "Hopeful"}
	TodoPriorities = []string{"low", "normal", "high", "urgent"}
	SectionColors  = []string{"rose", "purple", "blue", "green", "yellow", "orange", "cyan", "pink"}
)

const (
	DefaultNoteEmoji    = "💕"
	DefaultEventEmoji   = "💕"
	DefaultSectionEmoji = "📚"
	DefaultLetterTo     = "My Beautiful Self"
)

func oneOf(field, v string, allowed []string) error {
	for _, a := range allowed {
		if v == a {
			return nil
		}
	}
	return fmt.Errorf("%w: %s must be one of %v", ErrValidation, field, allowed)
}

func required(field, v string) error {
	if v == "" {
		return fmt.Errorf("%w: %s is required", ErrValidation, field)
	}
	return nil
}

func maxLen(field, v string, limit int) error {
	if len(v) > limit {
		return fmt.Errorf("%w: %s exceeds %d characters", ErrValidation, field, limit)
	}
	return nil
}

// Normalize fills schema defaults on a new note.
func (n *Note) Normalize() {
	if n.Color == "" {
		n.Color = "rose"
	}
	if n.Emoji == "" {
		n.Emoji = DefaultNoteEmoji
	}
	if n.Category == "" {
		n.Category = "personal"
	}
	if n.Images == nil {
		n.Images = []Image{}
	}
}

// Validate checks required fields and enum membership.
func (n *Note) Validate() error {
	if err := required("content", n.Content); err != nil {
		return err
	}
	if err := maxLen("title", n.Title, 200); err != nil {
		return err
	}
	if err := oneOf("color", n.Color, NoteColors); err != nil {
		return err
	}
	return oneOf("category", n.Category, NoteCategories)
}

// Validate rejects enum violations on the provided fields only.
func (u *NoteUpdate) Validate() error {
	if u.Content != nil && *u.Content == "" {
		return fmt.Errorf("%w: content is required", ErrValidation)
	}
	if u.Title != nil {
		if err := maxLen("title", *u.Title, 200); err != nil {
			return err
		}
	}
	if u.Color != nil {
		if err := oneOf("color", *u.Color, NoteColors); err != nil {
			return err
		}
	}
	if u.Category != nil {
		return oneOf("category", *u.Category, NoteCategories)
	}
	return nil
}

func (m *Mood) Normalize() {
	if m.Date.IsZero() {
		m.Date = time.Now().UTC()
	}
}

func (m *Mood) Validate() error {
	if err := required("mood.emoji", m.Mood.Emoji); err != nil {
		return err
	}
	if err := required("mood.color", m.Mood.Color); err != nil {
		return err
	}
	if err := maxLen("note", m.Note, 500); err != nil {
		return err
	}
	return oneOf("mood.name", m.Mood.Name, MoodNames)
}

func (l *Letter) Normalize() {
	if l.To == "" {
		l.To = DefaultLetterTo
	}
}

func (l *Letter) Validate() error {
	if err := maxLen("subject", l.Subject, 200); err != nil {
		return err
	}
	return required("content", l.Content)
}

func (m *Memory) Normalize() {
	if m.Images == nil {
		m.Images = []Image{}
	}
}

func (m *Memory) Validate() error {
	return maxLen("title", m.Title, 200)
}

func (t *Todo) Normalize() {
	if t.Priority == "" {
		t.Priority = "normal"
	}
}

func (t *Todo) Validate() error {
	if err := required("text", t.Text); err != nil {
		return err
	}
	return oneOf("priority", t.Priority, TodoPriorities)
}

func (e *Event) Normalize() {
	if e.Emoji == "" {
		e.Emoji = DefaultEventEmoji
	}
}

func (e *Event) Validate() error {
	if err := required("title", e.Title); err != nil {
		return err
	}
	if err := maxLen("title", e.Title, 200); err != nil {
		return err
	}
	if err := required("date", e.Date); err != nil {
		return err
	}
	return ValidDate(e.Date)
}

func (u *EventUpdate) Validate() error {
	if u.Title != nil {
		if err := required("title", *u.Title); err != nil {
			return err
		}
		if err := maxLen("title", *u.Title, 200); err != nil {
			return err
		}
	}
	if u.Date != nil {
		if err := required("date", *u.Date); err != nil {
			return err
		}
		return ValidDate(*u.Date)
	}
	return nil
}

func (s *StudySection) Normalize() {
	if s.Emoji == "" {
		s.Emoji = DefaultSectionEmoji
	}
	if s.Color == "" {
		s.Color = "rose"
	}
}

func (s *StudySection) Validate() error {
	if err := required("name", s.Name); err != nil {
		return err
	}
	return oneOf("color", s.Color, SectionColors)
}

func (u *SectionUpdate) Validate() error {
	if u.Name != nil {
		if err := required("name", *u.Name); err != nil {
			return err
		}
	}
	if u.Color != nil {
		return oneOf("color", *u.Color, SectionColors)
	}
	return nil
}

func (p *StudyPdf) Normalize() {
	if p.LastPage == 0 {
		p.LastPage = 1
	}
	if p.TotalPages == 0 {
		p.TotalPages = 1
	}
}

func (p *StudyPdf) Validate() error {
	if err := required("name", p.Name); err != nil {
		return err
	}
	if err := required("sectionId", p.SectionID); err != nil {
		return err
	}
	return required("fileData", p.FileData)
}

func (u *PdfUpdate) Validate() error {
	if u.Name != nil {
		return required("name", *u.Name)
	}
	return nil
}

// ValidDate checks the calendar's "YYYY-MM-DD" wire format.
func ValidDate(v string) error {
	if _, err := time.Parse("2006-01-02", v); err != nil {
		return fmt.Errorf("%w: date must be YYYY-MM-DD", ErrValidation)
	}
	return nil
}
