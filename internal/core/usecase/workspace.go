package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/BraceroInSabot/ArquiVia-sub000/internal/core/domain"
	"github.com/BraceroInSabot/ArquiVia-sub000/internal/core/ports"
)

// ClassificationWorkspace keeps classification edits alive between
// short-lived invocations by persisting each editor as a draft.
type ClassificationWorkspace struct {
	session         domain.Session
	classifications ports.ClassificationAPI
	links           ports.CategoryLinkAPI
	drafts          ports.DraftStore
	events          ports.EventPublisher
	recorder        ports.SaveRecorder
	now             ports.Clock
}

func NewClassificationWorkspace(
	session domain.Session,
	classifications ports.ClassificationAPI,
	links ports.CategoryLinkAPI,
	drafts ports.DraftStore,
	events ports.EventPublisher,
	recorder ports.SaveRecorder,
	now ports.Clock,
) *ClassificationWorkspace {
	if now == nil {
		now = time.Now
	}
	return &ClassificationWorkspace{
		session:         session,
		classifications: classifications,
		links:           links,
		drafts:          drafts,
		events:          events,
		recorder:        recorder,
		now:             now,
	}
}

// open resumes the stored draft of a document, or loads a fresh editor.
func (w *ClassificationWorkspace) open(ctx context.Context, documentID int) (*ClassificationEditor, error) {
	editor := NewClassificationEditor(documentID, w.session, w.classifications, w.links, w.recorder)

	draft, err := w.drafts.Get(ctx, documentID)
	switch {
	case err == nil:
		editor.Restore(*draft)
		return editor, nil
	case !errors.Is(err, domain.ErrDraftNotFound):
		return nil, fmt.Errorf("open draft of document %d: %w", documentID, err)
	}

	if err := editor.Load(ctx); err != nil {
		return nil, err
	}
	return editor, nil
}

// persist stores a dirty editor and forgets a clean one.
func (w *ClassificationWorkspace) persist(ctx context.Context, editor *ClassificationEditor) error {
	if !editor.IsDirty() {
		if err := w.drafts.Delete(ctx, editor.DocumentID()); err != nil && !errors.Is(err, domain.ErrDraftNotFound) {
			return fmt.Errorf("delete draft of document %d: %w", editor.DocumentID(), err)
		}
		return nil
	}
	draft := editor.Draft()
	draft.UpdatedAt = w.now().UTC()
	if err := w.drafts.Put(ctx, draft); err != nil {
		return fmt.Errorf("store draft of document %d: %w", editor.DocumentID(), err)
	}
	slog.Debug("draft_saved", "document_id", draft.DocumentID)
	return nil
}

// Show returns the draft of a document, or its server state when no draft exists.
func (w *ClassificationWorkspace) Show(ctx context.Context, documentID int) (domain.EditorSnapshot, error) {
	editor, err := w.open(ctx, documentID)
	if err != nil {
		return domain.EditorSnapshot{}, err
	}
	return editor.Snapshot(), nil
}

// Stage applies edits in order. Nothing is stored when one of them is rejected.
func (w *ClassificationWorkspace) Stage(ctx context.Context, documentID int, edits []ports.Edit) (domain.EditorSnapshot, error) {
	editor, err := w.open(ctx, documentID)
	if err != nil {
		return domain.EditorSnapshot{}, err
	}
	for _, edit := range edits {
		if err := editor.Apply(edit); err != nil {
			return domain.EditorSnapshot{}, err
		}
	}
	if err := w.persist(ctx, editor); err != nil {
		return domain.EditorSnapshot{}, err
	}
	return editor.Snapshot(), nil
}

// Save reconciles the draft of a document with the server. Whatever is still
// dirty afterwards stays in the draft for the next attempt.
func (w *ClassificationWorkspace) Save(ctx context.Context, documentID int) (ports.SaveOutcome, error) {
	editor, err := w.open(ctx, documentID)
	if err != nil {
		return ports.SaveOutcome{}, err
	}

	outcome, saveErr := editor.Save(ctx)
	if err := w.persist(ctx, editor); err != nil {
		return outcome, errors.Join(saveErr, err)
	}
	if outcome.Committed() {
		w.publish(ctx, editor, outcome)
	}
	return outcome, saveErr
}

func (w *ClassificationWorkspace) publish(ctx context.Context, editor *ClassificationEditor, outcome ports.SaveOutcome) {
	if w.events == nil {
		return
	}
	snap := editor.Snapshot()
	event := domain.ClassificationSaved{
		DocumentID:          editor.DocumentID(),
		ClassificationSaved: outcome.ClassificationSaved,
		CategoriesSaved:     outcome.CategoriesSaved,
		Classification:      snap.OriginalClassification,
		Categories:          snap.OriginalCategories,
		ActingUser:          w.session.User,
		SavedAt:             w.now().UTC(),
	}
	if err := w.events.PublishClassificationSaved(ctx, event); err != nil {
		slog.Warn("classification_event_publish_failed", "document_id", event.DocumentID, "error", err)
	}
}

func (w *ClassificationWorkspace) Discard(ctx context.Context, documentID int) error {
	if err := w.drafts.Delete(ctx, documentID); err != nil {
		return fmt.Errorf("discard draft of document %d: %w", documentID, err)
	}
	return nil
}

func (w *ClassificationWorkspace) Drafts(ctx context.Context) ([]domain.Draft, error) {
	drafts, err := w.drafts.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list drafts: %w", err)
	}
	return drafts, nil
}
