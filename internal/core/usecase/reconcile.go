package usecase

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/BraceroInSabot/ArquiVia-sub000/internal/core/domain"
	"github.com/BraceroInSabot/ArquiVia-sub000/internal/core/ports"
)

// NoReviewerLabel is shown while a classification has no reviewer.
const NoReviewerLabel = "Nenhum"

// Editable field names accepted by ApplyFieldChange and Apply.
const (
	FieldIsReviewed     = "is_reviewed"
	FieldStatus         = "classification_status"
	FieldPrivacity      = "privacity"
	FieldReviewer       = "reviewer"
	FieldExclusiveUsers = "exclusive_users"
	FieldCategories     = "categories"
	FieldAddCategory    = "add_category"
	FieldRemoveCategory = "remove_category"
	FieldTakeReview     = "take_review"
)

// Save domains, also used as metric labels.
const (
	SaveDomainClassification = "classification"
	SaveDomainCategories     = "categories"
)

// editorState is one immutable step of an edit session.
type editorState struct {
	classification  domain.Classification
	categories      []int
	stashedReviewer *domain.UserRef
	reviewerPending bool
}

func (s editorState) clone() editorState {
	out := s
	out.classification = s.classification.Clone()
	out.categories = slices.Clone(s.categories)
	if s.stashedReviewer != nil {
		stashed := *s.stashedReviewer
		out.stashedReviewer = &stashed
	}
	return out
}

// ClassificationEditor reconciles edits of one document's classification and
// linked categories against the snapshots last confirmed by the server.
// It is not safe for concurrent use.
type ClassificationEditor struct {
	documentID      int
	session         domain.Session
	classifications ports.ClassificationAPI
	links           ports.CategoryLinkAPI
	recorder        ports.SaveRecorder

	originalClassification domain.Classification
	originalCategories     []int
	state                  editorState
	history                []editorState
}

func NewClassificationEditor(
	documentID int,
	session domain.Session,
	classifications ports.ClassificationAPI,
	links ports.CategoryLinkAPI,
	recorder ports.SaveRecorder,
) *ClassificationEditor {
	return &ClassificationEditor{
		documentID:      documentID,
		session:         session,
		classifications: classifications,
		links:           links,
		recorder:        recorder,
	}
}

// Load fetches the classification and the linked categories concurrently and
// resets both snapshots to the server state.
func (e *ClassificationEditor) Load(ctx context.Context) error {
	var (
		cls      domain.Classification
		category []domain.Category
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		cls, err = e.classifications.GetClassification(gctx, e.documentID)
		return err
	})
	g.Go(func() error {
		var err error
		category, err = e.links.ListLinkedCategories(gctx, e.documentID)
		return err
	})
	if err := g.Wait(); err != nil {
		return fmt.Errorf("load classification editor for document %d: %w", e.documentID, err)
	}

	ids := make([]int, 0, len(category))
	for _, c := range category {
		ids = append(ids, c.ID)
	}
	e.reset(cls, ids)
	return nil
}

// Restore resumes an edit session from a persisted draft.
func (e *ClassificationEditor) Restore(draft domain.Draft) {
	e.documentID = draft.DocumentID
	e.originalClassification = draft.OriginalClassification.Clone()
	e.originalCategories = domain.NormalizeIDs(draft.OriginalCategories)
	e.state = editorState{
		classification:  draft.CurrentClassification.Clone(),
		categories:      domain.NormalizeIDs(draft.CurrentCategories),
		reviewerPending: draft.ReviewerPending,
	}
	if draft.StashedReviewer != nil {
		stashed := *draft.StashedReviewer
		e.state.stashedReviewer = &stashed
	}
	e.history = nil
}

// Draft exports the persisted form of the edit session.
func (e *ClassificationEditor) Draft() domain.Draft {
	draft := domain.Draft{
		DocumentID:             e.documentID,
		OriginalClassification: e.originalClassification.Clone(),
		CurrentClassification:  e.state.classification.Clone(),
		OriginalCategories:     slices.Clone(e.originalCategories),
		CurrentCategories:      slices.Clone(e.state.categories),
		ReviewerPending:        e.state.reviewerPending,
	}
	if e.state.stashedReviewer != nil {
		stashed := *e.state.stashedReviewer
		draft.StashedReviewer = &stashed
	}
	return draft
}

func (e *ClassificationEditor) reset(cls domain.Classification, categories []int) {
	e.originalClassification = cls.Clone()
	e.originalCategories = domain.NormalizeIDs(categories)
	e.state = editorState{
		classification: cls.Clone(),
		categories:     domain.NormalizeIDs(categories),
	}
	e.history = nil
}

func (e *ClassificationEditor) DocumentID() int { return e.documentID }

func (e *ClassificationEditor) ClassificationDirty() bool {
	return !e.originalClassification.Equal(e.state.classification)
}

func (e *ClassificationEditor) CategoriesDirty() bool {
	return !domain.SameIDSet(e.originalCategories, e.state.categories)
}

// IsDirty reports whether any edit differs from the last confirmed snapshots.
func (e *ClassificationEditor) IsDirty() bool {
	return e.ClassificationDirty() || e.CategoriesDirty()
}

func (e *ClassificationEditor) Snapshot() domain.EditorSnapshot {
	return domain.EditorSnapshot{
		DocumentID:             e.documentID,
		OriginalClassification: e.originalClassification.Clone(),
		CurrentClassification:  e.state.classification.Clone(),
		OriginalCategories:     slices.Clone(e.originalCategories),
		CurrentCategories:      slices.Clone(e.state.categories),
		ReviewerName:           reviewerLabel(e.state.classification.Reviewer),
		ReviewerPending:        e.state.reviewerPending,
		ClassificationDirty:    e.ClassificationDirty(),
		CategoriesDirty:        e.CategoriesDirty(),
	}
}

func reviewerLabel(reviewer *domain.UserRef) string {
	if reviewer == nil {
		return NoReviewerLabel
	}
	if strings.TrimSpace(reviewer.Name) != "" {
		return reviewer.Name
	}
	return "#" + strconv.Itoa(reviewer.ID)
}

// mutate records the current step in history and applies fn to a copy of it.
func (e *ClassificationEditor) mutate(fn func(next *editorState)) {
	prev := e.state
	next := prev.clone()
	fn(&next)
	e.history = append(e.history, prev)
	e.state = next
}

// Undo reverts the latest change. It reports false when there is nothing to undo.
func (e *ClassificationEditor) Undo() bool {
	if len(e.history) == 0 {
		return false
	}
	e.state = e.history[len(e.history)-1]
	e.history = e.history[:len(e.history)-1]
	return true
}

// Discard drops every unsaved edit.
func (e *ClassificationEditor) Discard() {
	e.reset(e.originalClassification, e.originalCategories)
}

// ApplyFieldChange applies a raw form value to one classification field.
// Enum values that are empty, "null" or not numeric clear the field.
func (e *ClassificationEditor) ApplyFieldChange(field, raw string) error {
	switch field {
	case FieldIsReviewed:
		reviewed, err := parseFormBool(raw)
		if err != nil {
			return &domain.ValidationError{Field: field, Message: "valor inválido: " + raw}
		}
		e.SetReviewed(reviewed)
	case FieldStatus:
		status := domain.ParseStatus(raw)
		e.mutate(func(next *editorState) { next.classification.Status = status })
	case FieldPrivacity:
		privacity := domain.ParsePrivacity(raw)
		e.mutate(func(next *editorState) { next.classification.Privacity = privacity })
	case FieldReviewer:
		e.setReviewer(raw)
	default:
		return &domain.ValidationError{Field: field, Message: "campo desconhecido: " + field}
	}
	return nil
}

// Apply routes one edit to the matching editor operation.
func (e *ClassificationEditor) Apply(edit ports.Edit) error {
	switch edit.Field {
	case FieldTakeReview:
		e.TakeReview()
	case FieldCategories:
		ids, err := parseIDList(edit.Field, edit.Value)
		if err != nil {
			return err
		}
		e.SetCategories(ids)
	case FieldAddCategory, FieldRemoveCategory:
		id, err := strconv.Atoi(strings.TrimSpace(edit.Value))
		if err != nil {
			return &domain.ValidationError{Field: edit.Field, Message: "categoria inválida: " + edit.Value}
		}
		if edit.Field == FieldAddCategory {
			e.AddCategory(id)
		} else {
			e.RemoveCategory(id)
		}
	case FieldExclusiveUsers:
		ids, err := parseIDList(edit.Field, edit.Value)
		if err != nil {
			return err
		}
		e.SetExclusiveUsers(ids)
	default:
		return e.ApplyFieldChange(edit.Field, edit.Value)
	}
	return nil
}

// SetReviewed toggles the review flag. Turning it off stashes the reviewer so
// that turning it back on restores it; with nothing to restore the acting user
// becomes the speculative reviewer.
func (e *ClassificationEditor) SetReviewed(reviewed bool) {
	if reviewed == e.state.classification.IsReviewed {
		return
	}
	e.mutate(func(next *editorState) {
		cls := &next.classification
		if !reviewed {
			cls.IsReviewed = false
			if cls.Reviewer != nil {
				next.stashedReviewer = cls.Reviewer
			}
			cls.Reviewer = nil
			next.reviewerPending = false
			return
		}

		cls.IsReviewed = true
		switch {
		case cls.Reviewer != nil:
		case next.stashedReviewer != nil:
			cls.Reviewer = next.stashedReviewer
			next.stashedReviewer = nil
			next.reviewerPending = !sameReviewer(cls.Reviewer, e.originalClassification.Reviewer)
		default:
			acting := e.session.User
			cls.Reviewer = &acting
			next.reviewerPending = !sameReviewer(cls.Reviewer, e.originalClassification.Reviewer)
		}
	})
}

// TakeReview claims review responsibility for the acting user. The server
// decides whether the claim is allowed.
func (e *ClassificationEditor) TakeReview() {
	e.mutate(func(next *editorState) {
		acting := e.session.User
		next.classification.IsReviewed = true
		next.classification.Reviewer = &acting
		next.stashedReviewer = nil
		next.reviewerPending = !sameReviewer(&acting, e.originalClassification.Reviewer)
	})
}

func (e *ClassificationEditor) setReviewer(raw string) {
	var reviewer *domain.UserRef
	if id, err := strconv.Atoi(strings.TrimSpace(raw)); err == nil && id > 0 {
		reviewer = &domain.UserRef{ID: id}
		if id == e.session.User.ID {
			reviewer.Name = e.session.User.Name
		}
	}
	e.mutate(func(next *editorState) {
		next.classification.Reviewer = reviewer
		if reviewer != nil {
			next.classification.IsReviewed = true
		}
		next.reviewerPending = reviewer != nil && !sameReviewer(reviewer, e.originalClassification.Reviewer)
	})
}

// SetCategories replaces the linked category set wholesale.
func (e *ClassificationEditor) SetCategories(ids []int) {
	normalized := domain.NormalizeIDs(ids)
	e.mutate(func(next *editorState) { next.categories = normalized })
}

func (e *ClassificationEditor) AddCategory(id int) {
	e.SetCategories(append(slices.Clone(e.state.categories), id))
}

func (e *ClassificationEditor) RemoveCategory(id int) {
	e.SetCategories(slices.DeleteFunc(slices.Clone(e.state.categories), func(v int) bool { return v == id }))
}

// SetExclusiveUsers replaces the allow-list used by Exclusive privacy.
func (e *ClassificationEditor) SetExclusiveUsers(ids []int) {
	normalized := domain.NormalizeIDs(ids)
	e.mutate(func(next *editorState) { next.classification.ExclusiveUsers = normalized })
}

// Save sends the minimal set of full-replacement requests concurrently.
// Each confirmed request promotes only its own domain to the new original,
// so a failure in one domain leaves that domain dirty while the other is clean.
// Local edits are never discarded on failure.
func (e *ClassificationEditor) Save(ctx context.Context) (ports.SaveOutcome, error) {
	var result ports.SaveOutcome
	if !e.IsDirty() {
		return result, nil
	}
	if !e.session.Authenticated() {
		return result, domain.WrapError(domain.ErrUnauthorized, "save classification", fmt.Errorf("no authenticated session"))
	}
	if err := e.state.classification.Validate(); err != nil {
		return result, err
	}

	cls := e.state.classification.Clone()
	categories := slices.Clone(e.state.categories)
	result.ClassificationAttempted = e.ClassificationDirty()
	result.CategoriesAttempted = e.CategoriesDirty()

	var (
		g           errgroup.Group
		clsErr      error
		categoryErr error
	)
	if result.ClassificationAttempted {
		g.Go(func() error {
			clsErr = e.classifications.UpdateClassification(ctx, e.documentID, cls)
			return clsErr
		})
	}
	if result.CategoriesAttempted {
		g.Go(func() error {
			categoryErr = e.links.LinkCategories(ctx, e.documentID, categories)
			return categoryErr
		})
	}
	err := g.Wait()

	if result.ClassificationAttempted {
		e.record(SaveDomainClassification, clsErr)
		if clsErr == nil {
			result.ClassificationSaved = true
			e.originalClassification = cls
			e.state.reviewerPending = false
			e.state.stashedReviewer = nil
		}
	}
	if result.CategoriesAttempted {
		e.record(SaveDomainCategories, categoryErr)
		if categoryErr == nil {
			result.CategoriesSaved = true
			e.originalCategories = categories
		}
	}
	if !e.IsDirty() {
		e.history = nil
	}
	if err != nil {
		return result, fmt.Errorf("save document %d: %w", e.documentID, err)
	}
	return result, nil
}

func (e *ClassificationEditor) record(saveDomain string, err error) {
	if e.recorder != nil {
		e.recorder.RecordSave(saveDomain, err)
	}
}

func sameReviewer(a, b *domain.UserRef) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.ID == b.ID
}

func parseFormBool(raw string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "null", "false", "0", "off", "no", "nao", "não":
		return false, nil
	case "true", "1", "on", "yes", "sim":
		return true, nil
	default:
		return false, fmt.Errorf("invalid boolean %q", raw)
	}
}

// parseIDList reads a comma separated id list; an empty value means no ids.
func parseIDList(field, raw string) ([]int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.EqualFold(raw, "null") {
		return []int{}, nil
	}
	parts := strings.Split(raw, ",")
	ids := make([]int, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.Atoi(part)
		if err != nil {
			return nil, &domain.ValidationError{Field: field, Message: "identificador inválido: " + part}
		}
		ids = append(ids, id)
	}
	return ids, nil
}
