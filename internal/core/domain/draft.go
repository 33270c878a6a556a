package domain

import "time"

// Draft is the persisted form of an in-progress classification edit:
// the as-loaded snapshots next to the edited ones.
type Draft struct {
	DocumentID             int            `json:"document_id"`
	OriginalClassification Classification `json:"original_classification"`
	CurrentClassification  Classification `json:"current_classification"`
	OriginalCategories     []int          `json:"original_categories"`
	CurrentCategories      []int          `json:"current_categories"`
	StashedReviewer        *UserRef       `json:"stashed_reviewer,omitempty"`
	ReviewerPending        bool           `json:"reviewer_pending"`
	UpdatedAt              time.Time      `json:"updated_at"`
}

// ClassificationSaved is published after a save committed at least one domain.
type ClassificationSaved struct {
	DocumentID          int            `json:"document_id"`
	ClassificationSaved bool           `json:"classification_saved"`
	CategoriesSaved     bool           `json:"categories_saved"`
	Classification      Classification `json:"classification"`
	Categories          []int          `json:"categories"`
	ActingUser          UserRef        `json:"acting_user"`
	SavedAt             time.Time      `json:"saved_at"`
}

// EditorSnapshot is a read-only view of the editor for rendering.
type EditorSnapshot struct {
	DocumentID             int            `json:"document_id"`
	OriginalClassification Classification `json:"original_classification"`
	CurrentClassification  Classification `json:"current_classification"`
	OriginalCategories     []int          `json:"original_categories"`
	CurrentCategories      []int          `json:"current_categories"`
	ReviewerName           string         `json:"reviewer_name"`
	ReviewerPending        bool           `json:"reviewer_pending"`
	ClassificationDirty    bool           `json:"classification_dirty"`
	CategoriesDirty        bool           `json:"categories_dirty"`
}

func (s EditorSnapshot) Dirty() bool {
	return s.ClassificationDirty || s.CategoriesDirty
}
