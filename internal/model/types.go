package model

import "time"

// Image is the normalized representation of an attached image. ExternalID is
// the media host's identifier and is empty for images that were supplied as
// plain URLs (nothing to release on delete).
type Image struct {
	URL        string `json:"url"`
	ExternalID string `json:"externalId,omitempty"`
}

// Note is a sticky note on the board.
type Note struct {
	ID         string    `json:"id"`
	Title      string    `json:"title,omitempty"`
	Content    string    `json:"content"`
	Color      string    `json:"color"`
	Emoji      string    `json:"emoji"`
	Category   string    `json:"category"`
	Images     []Image   `json:"images"`
	IsLoved    bool      `json:"isLoved"`
	IsPinned   bool      `json:"isPinned"`
	IsArchived bool      `json:"isArchived"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// NoteFilter narrows a note listing. Archived notes are excluded unless
// Archived is true, matching the board's default view.
type NoteFilter struct {
	Category string
	Archived bool
	Search   string
}

// NoteUpdate merges the provided fields into an existing note. Nil fields are
// left untouched. Images, when non-nil, replaces the stored set.
type NoteUpdate struct {
	Title      *string
	Content    *string
	Color      *string
	Emoji      *string
	Category   *string
	Images     []Image
	IsLoved    *bool
	IsPinned   *bool
	IsArchived *bool
}

// MoodInfo is the embedded mood descriptor of a tracker entry.
type MoodInfo struct {
	Emoji   string `json:"emoji"`
	Name    string `json:"name"`
	Color   string `json:"color"`
	Message string `json:"message,omitempty"`
}

// Mood is one mood-tracker entry.
type Mood struct {
	ID        string    `json:"id"`
	Mood      MoodInfo  `json:"mood"`
	Note      string    `json:"note,omitempty"`
	Date      time.Time `json:"date"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// MoodStat is one group of the mood aggregation: all entries sharing a name,
// with the emoji and color of the earliest entry for that name.
type MoodStat struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
	Emoji string `json:"emoji"`
	Color string `json:"color"`
}

// Letter is a self-addressed love letter.
type Letter struct {
	ID        string    `json:"id"`
	To        string    `json:"to"`
	Subject   string    `json:"subject,omitempty"`
	Content   string    `json:"content"`
	IsRead    bool      `json:"isRead"`
	Hearts    int       `json:"hearts"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Memory is a photo memory with an optional date of its own.
type Memory struct {
	ID          string     `json:"id"`
	Title       string     `json:"title,omitempty"`
	Description string     `json:"description,omitempty"`
	Images      []Image    `json:"images"`
	Date        *time.Time `json:"date,omitempty"`
	Hearts      int        `json:"hearts"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// Todo is a checklist item.
type Todo struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Priority  string    `json:"priority"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Event is a calendar entry. Date is a plain "YYYY-MM-DD" string so the
// calendar can query by day without timezone drift.
type Event struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Emoji     string    `json:"emoji"`
	Date      string    `json:"date"`
	Time      string    `json:"time,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// EventFilter narrows an event listing.
type EventFilter struct {
	Date     string
	Upcoming bool
}

// EventUpdate merges the provided fields into an existing event.
type EventUpdate struct {
	Title *string
	Emoji *string
	Date  *string
	Time  *string
}

// StudySection groups study PDFs.
type StudySection struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Emoji     string    `json:"emoji"`
	Color     string    `json:"color"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// SectionUpdate merges the provided fields into an existing section.
type SectionUpdate struct {
	Name  *string
	Emoji *string
	Color *string
}

// StudyPdf is an uploaded study document. FileData holds the base64 payload
// and is stripped from list responses; only the detail fetch carries it.
type StudyPdf struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	SectionID  string    `json:"sectionId"`
	FileData   string    `json:"fileData,omitempty"`
	Size       string    `json:"size,omitempty"`
	LastPage   int       `json:"lastPage"`
	TotalPages int       `json:"totalPages"`
	IsFavorite bool      `json:"isFavorite"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// PdfFilter narrows a PDF listing.
type PdfFilter struct {
	SectionID string
	Favorite  bool
}

// PdfUpdate merges the provided fields into an existing PDF.
type PdfUpdate struct {
	Name       *string
	LastPage   *int
	TotalPages *int
	IsFavorite *bool
}
