package domain

import (
	"encoding/json"
	"time"
)

type Category struct {
	ID          int    `json:"category_id"`
	Name        string `json:"category"`
	Description string `json:"description,omitempty"`
	IsPublic    bool   `json:"is_public"`
	Color       string `json:"color"`
	SectorID    int    `json:"sector_id,omitempty"`
}

type Document struct {
	ID         int             `json:"document_id"`
	Title      string          `json:"title"`
	Content    json.RawMessage `json:"content,omitempty"`
	SectorID   int             `json:"sector_id"`
	IsActive   bool            `json:"is_active"`
	Categories []Category      `json:"categories"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// DocumentSummary is one row of a document listing or search.
type DocumentSummary struct {
	ID                   int       `json:"document_id"`
	Title                string    `json:"title"`
	Enterprise           string    `json:"enterprise"`
	Sector               string    `json:"sector"`
	IsActive             bool      `json:"is_active"`
	IsReviewed           bool      `json:"is_reviewed"`
	ClassificationStatus string    `json:"classification_status"`
	Privacity            string    `json:"privacity"`
	Reviewer             string    `json:"reviewer"`
	Categories           []string  `json:"categories"`
	CreatedAt            time.Time `json:"created_at"`
}

// NewDocument is the payload of a draft document creation.
type NewDocument struct {
	Title          string     `json:"title"`
	SectorID       int        `json:"sector_id"`
	Privacity      *Privacity `json:"privacity,omitempty"`
	ExclusiveUsers []int      `json:"exclusive_users,omitempty"`
	CategoryIDs    []int      `json:"categories_id,omitempty"`
}

type DocumentUpdate struct {
	Title   string          `json:"title"`
	Content json.RawMessage `json:"content,omitempty"`
}

type NewCategory struct {
	SectorID    int    `json:"sector_id"`
	Name        string `json:"category"`
	Description string `json:"description,omitempty"`
	IsPublic    bool   `json:"is_public"`
	Color       string `json:"color"`
}
