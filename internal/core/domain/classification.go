package domain

import (
	"slices"
	"strconv"
	"strings"
)

type ClassificationStatus int

const (
	StatusConcluded      ClassificationStatus = 1
	StatusInProgress     ClassificationStatus = 2
	StatusReviewRequired ClassificationStatus = 3
	StatusArchived       ClassificationStatus = 4
)

var statusLabels = map[ClassificationStatus]string{
	StatusConcluded:      "Concluído",
	StatusInProgress:     "Em andamento",
	StatusReviewRequired: "Revisão necessária",
	StatusArchived:       "Arquivado",
}

func (s ClassificationStatus) String() string {
	if label, ok := statusLabels[s]; ok {
		return label
	}
	return "Desconhecido"
}

func (s ClassificationStatus) Valid() bool {
	_, ok := statusLabels[s]
	return ok
}

type Privacity int

const (
	PrivacityPrivate   Privacity = 1
	PrivacityPublic    Privacity = 2
	PrivacityExclusive Privacity = 3
)

var privacityLabels = map[Privacity]string{
	PrivacityPrivate:   "Privado",
	PrivacityPublic:    "Público",
	PrivacityExclusive: "Exclusivo",
}

func (p Privacity) String() string {
	if label, ok := privacityLabels[p]; ok {
		return label
	}
	return "Desconhecido"
}

func (p Privacity) Valid() bool {
	_, ok := privacityLabels[p]
	return ok
}

// ParseStatus converts a raw form value into an optional status.
// Empty input, the "null" sentinel and anything that is not a known id map to nil.
func ParseStatus(raw string) *ClassificationStatus {
	id, ok := parseOptionalID(raw)
	if !ok {
		return nil
	}
	status := ClassificationStatus(id)
	if !status.Valid() {
		return nil
	}
	return &status
}

// ParsePrivacity converts a raw form value into an optional privacy mode.
func ParsePrivacity(raw string) *Privacity {
	id, ok := parseOptionalID(raw)
	if !ok {
		return nil
	}
	privacity := Privacity(id)
	if !privacity.Valid() {
		return nil
	}
	return &privacity
}

func parseOptionalID(raw string) (int, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.EqualFold(raw, "null") {
		return 0, false
	}
	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return id, true
}

// UserRef identifies a user by id; Name is display-only.
type UserRef struct {
	ID   int    `json:"id"`
	Name string `json:"name,omitempty"`
}

// Classification is the review/status/privacy metadata of one document.
type Classification struct {
	IsReviewed     bool                  `json:"is_reviewed"`
	Status         *ClassificationStatus `json:"classification_status"`
	Privacity      *Privacity            `json:"privacity"`
	Reviewer       *UserRef              `json:"reviewer"`
	ExclusiveUsers []int                 `json:"exclusive_users,omitempty"`
}

func (c Classification) Clone() Classification {
	out := c
	if c.Status != nil {
		status := *c.Status
		out.Status = &status
	}
	if c.Privacity != nil {
		privacity := *c.Privacity
		out.Privacity = &privacity
	}
	if c.Reviewer != nil {
		reviewer := *c.Reviewer
		out.Reviewer = &reviewer
	}
	out.ExclusiveUsers = slices.Clone(c.ExclusiveUsers)
	return out
}

// IsExclusive reports whether the document is restricted to an allow-list of users.
func (c Classification) IsExclusive() bool {
	return c.Privacity != nil && *c.Privacity == PrivacityExclusive
}

// Equal compares the persisted fields. Reviewers compare by id and exclusive
// users compare as sets; display names never make a classification dirty.
func (c Classification) Equal(other Classification) bool {
	if c.IsReviewed != other.IsReviewed {
		return false
	}
	if !equalPtr(c.Status, other.Status) || !equalPtr(c.Privacity, other.Privacity) {
		return false
	}
	switch {
	case c.Reviewer == nil && other.Reviewer == nil:
	case c.Reviewer == nil || other.Reviewer == nil:
		return false
	case c.Reviewer.ID != other.Reviewer.ID:
		return false
	}
	return SameIDSet(c.ExclusiveUsers, other.ExclusiveUsers)
}

// Validate checks the invariants a persisted classification must hold.
func (c Classification) Validate() error {
	if c.Reviewer != nil && !c.IsReviewed {
		return &ValidationError{Field: "reviewer", Message: "Um revisor só pode ser definido em documentos revisados."}
	}
	if c.IsExclusive() && len(c.ExclusiveUsers) == 0 {
		return &ValidationError{Field: "exclusive_users", Message: ExclusiveWithoutUsersMessage}
	}
	return nil
}

// ExclusiveWithoutUsersMessage is reported when Exclusive privacy has an empty allow-list.
const ExclusiveWithoutUsersMessage = "Selecione ao menos um usuário para a privacidade Exclusivo."

// NormalizeIDs returns a sorted, de-duplicated copy of ids.
func NormalizeIDs(ids []int) []int {
	out := slices.Clone(ids)
	slices.Sort(out)
	return slices.Compact(out)
}

// SameIDSet reports whether a and b hold the same members, ignoring order and duplicates.
func SameIDSet(a, b []int) bool {
	return slices.Equal(NormalizeIDs(a), NormalizeIDs(b))
}

func equalPtr[T comparable](a, b *T) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
