package arquivia

import (
	"bytes"
	"encoding/json"
	"sort"
	"strconv"
	"strings"

	"github.com/BraceroInSabot/ArquiVia-sub000/internal/core/domain"
)

// flexRef decodes a reference the backend serializes either as a bare id
// (number or numeric string) or as a nested object.
type flexRef struct {
	ID   int
	Name string
	Set  bool
}

func (r *flexRef) UnmarshalJSON(raw []byte) error {
	raw = bytes.TrimSpace(raw)
	*r = flexRef{}
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil
	}

	switch raw[0] {
	case '{':
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(raw, &obj); err != nil {
			return err
		}
		keys := make([]string, 0, len(obj))
		for key := range obj {
			if strings.HasSuffix(strings.ToLower(key), "_id") {
				keys = append(keys, key)
			}
		}
		sort.Strings(keys)
		if _, ok := obj["id"]; ok {
			keys = append([]string{"id"}, keys...)
		}
		for _, key := range keys {
			var id flexRef
			if err := id.UnmarshalJSON(obj[key]); err == nil && id.Set {
				r.ID, r.Set = id.ID, true
				break
			}
		}
		for _, key := range []string{"name", "username", "status", "privacity", "label"} {
			var name string
			if value, ok := obj[key]; ok && json.Unmarshal(value, &name) == nil && name != "" {
				r.Name = name
				break
			}
		}
		return nil
	case '"':
		var text string
		if err := json.Unmarshal(raw, &text); err != nil {
			return err
		}
		text = strings.TrimSpace(text)
		if text == "" || strings.EqualFold(text, "null") {
			return nil
		}
		id, err := strconv.Atoi(text)
		if err != nil {
			r.Name = text
			return nil
		}
		r.ID, r.Set = id, true
		return nil
	default:
		var id int
		if err := json.Unmarshal(raw, &id); err != nil {
			return err
		}
		r.ID, r.Set = id, true
		return nil
	}
}

type classificationDTO struct {
	IsReviewed           bool      `json:"is_reviewed"`
	ClassificationStatus flexRef   `json:"classification_status"`
	Privacity            flexRef   `json:"privacity"`
	Reviewer             flexRef   `json:"reviewer"`
	ReviewerName         string    `json:"reviewer_name"`
	ExclusiveUsers       []flexRef `json:"exclusive_users"`
}

func (d classificationDTO) toDomain() domain.Classification {
	cls := domain.Classification{IsReviewed: d.IsReviewed}
	if d.ClassificationStatus.Set {
		status := domain.ClassificationStatus(d.ClassificationStatus.ID)
		if status.Valid() {
			cls.Status = &status
		}
	}
	if d.Privacity.Set {
		privacity := domain.Privacity(d.Privacity.ID)
		if privacity.Valid() {
			cls.Privacity = &privacity
		}
	}
	if d.Reviewer.Set {
		name := d.Reviewer.Name
		if name == "" {
			name = d.ReviewerName
		}
		cls.Reviewer = &domain.UserRef{ID: d.Reviewer.ID, Name: name}
	}
	for _, user := range d.ExclusiveUsers {
		if user.Set {
			cls.ExclusiveUsers = append(cls.ExclusiveUsers, user.ID)
		}
	}
	return cls
}

// classificationPayload is the full-replacement body of the classification update.
type classificationPayload struct {
	IsReviewed           bool  `json:"is_reviewed"`
	ClassificationStatus *int  `json:"classification_status"`
	Privacity            *int  `json:"privacity"`
	Reviewer             *int  `json:"reviewer"`
	ExclusiveUsers       []int `json:"exclusive_users,omitempty"`
}

func newClassificationPayload(cls domain.Classification) classificationPayload {
	payload := classificationPayload{IsReviewed: cls.IsReviewed}
	if cls.Status != nil {
		id := int(*cls.Status)
		payload.ClassificationStatus = &id
	}
	if cls.Privacity != nil {
		id := int(*cls.Privacity)
		payload.Privacity = &id
	}
	if cls.Reviewer != nil {
		id := cls.Reviewer.ID
		payload.Reviewer = &id
	}
	if cls.IsExclusive() {
		payload.ExclusiveUsers = domain.NormalizeIDs(cls.ExclusiveUsers)
	}
	return payload
}

type linkCategoriesPayload struct {
	CategoriesID []int `json:"categories_id"`
}
