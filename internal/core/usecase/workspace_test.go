package usecase

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/BraceroInSabot/ArquiVia-sub000/internal/core/domain"
	"github.com/BraceroInSabot/ArquiVia-sub000/internal/core/ports"
)

type draftStoreFake struct {
	drafts  map[int]domain.Draft
	puts    int
	deletes int
}

func newDraftStoreFake() *draftStoreFake {
	return &draftStoreFake{drafts: map[int]domain.Draft{}}
}

func (f *draftStoreFake) Get(_ context.Context, documentID int) (*domain.Draft, error) {
	draft, ok := f.drafts[documentID]
	if !ok {
		return nil, domain.WrapError(domain.ErrDraftNotFound, "get draft", errors.New("no rows"))
	}
	return &draft, nil
}

func (f *draftStoreFake) Put(_ context.Context, draft domain.Draft) error {
	f.puts++
	f.drafts[draft.DocumentID] = draft
	return nil
}

func (f *draftStoreFake) Delete(_ context.Context, documentID int) error {
	if _, ok := f.drafts[documentID]; !ok {
		return domain.ErrDraftNotFound
	}
	f.deletes++
	delete(f.drafts, documentID)
	return nil
}

func (f *draftStoreFake) List(context.Context) ([]domain.Draft, error) {
	out := make([]domain.Draft, 0, len(f.drafts))
	for _, draft := range f.drafts {
		out = append(out, draft)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DocumentID < out[j].DocumentID })
	return out, nil
}

type eventPublisherFake struct {
	events []domain.ClassificationSaved
	err    error
}

func (f *eventPublisherFake) PublishClassificationSaved(_ context.Context, event domain.ClassificationSaved) error {
	f.events = append(f.events, event)
	return f.err
}

func fixedClock() time.Time {
	return time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
}

type workspaceFixture struct {
	workspace *ClassificationWorkspace
	clsAPI    *classificationAPIFake
	linkAPI   *categoryLinkAPIFake
	drafts    *draftStoreFake
	events    *eventPublisherFake
}

func newWorkspaceFixture() workspaceFixture {
	f := workspaceFixture{
		clsAPI:  &classificationAPIFake{current: domain.Classification{Status: statusPtr(domain.StatusInProgress)}},
		linkAPI: &categoryLinkAPIFake{linked: []int{1, 2}},
		drafts:  newDraftStoreFake(),
		events:  &eventPublisherFake{},
	}
	f.workspace = NewClassificationWorkspace(actingSession, f.clsAPI, f.linkAPI, f.drafts, f.events, nil, fixedClock)
	return f
}

func TestWorkspaceShowWithoutDraftLoadsServerState(t *testing.T) {
	f := newWorkspaceFixture()

	snap, err := f.workspace.Show(context.Background(), 4)
	if err != nil {
		t.Fatalf("Show() error = %v", err)
	}
	if snap.Dirty() || len(snap.CurrentCategories) != 2 {
		t.Fatalf("unexpected snapshot %+v", snap)
	}
	if f.drafts.puts != 0 {
		t.Fatalf("show must not store drafts")
	}
}

func TestWorkspaceStagePersistsAcrossCalls(t *testing.T) {
	f := newWorkspaceFixture()
	ctx := context.Background()

	if _, err := f.workspace.Stage(ctx, 4, []ports.Edit{{Field: FieldStatus, Value: "1"}}); err != nil {
		t.Fatalf("Stage() error = %v", err)
	}
	snap, err := f.workspace.Stage(ctx, 4, []ports.Edit{{Field: FieldAddCategory, Value: "3"}})
	if err != nil {
		t.Fatalf("Stage() error = %v", err)
	}
	if !snap.ClassificationDirty || !snap.CategoriesDirty {
		t.Fatalf("expected both domains dirty across invocations, got %+v", snap)
	}
	stored := f.drafts.drafts[4]
	if !stored.UpdatedAt.Equal(fixedClock()) {
		t.Fatalf("expected draft timestamp from clock, got %s", stored.UpdatedAt)
	}

	snap, err = f.workspace.Stage(ctx, 4, []ports.Edit{{Field: FieldStatus, Value: "2"}, {Field: FieldRemoveCategory, Value: "3"}})
	if err != nil {
		t.Fatalf("Stage() error = %v", err)
	}
	if snap.Dirty() {
		t.Fatalf("expected edits back to original to be clean")
	}
	if _, ok := f.drafts.drafts[4]; ok {
		t.Fatalf("expected clean draft to be removed")
	}
}

func TestWorkspaceStageRejectsBadEditWithoutStoring(t *testing.T) {
	f := newWorkspaceFixture()

	_, err := f.workspace.Stage(context.Background(), 4, []ports.Edit{
		{Field: FieldStatus, Value: "1"},
		{Field: "owner", Value: "x"},
	})
	if !domain.IsKind(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if f.drafts.puts != 0 {
		t.Fatalf("expected nothing stored")
	}
}

func TestWorkspaceSavePublishesAndClearsDraft(t *testing.T) {
	f := newWorkspaceFixture()
	ctx := context.Background()
	if _, err := f.workspace.Stage(ctx, 4, []ports.Edit{{Field: FieldTakeReview}}); err != nil {
		t.Fatalf("Stage() error = %v", err)
	}

	outcome, err := f.workspace.Save(ctx, 4)
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if !outcome.ClassificationSaved || outcome.CategoriesAttempted {
		t.Fatalf("unexpected outcome %+v", outcome)
	}
	if len(f.drafts.drafts) != 0 {
		t.Fatalf("expected draft removed after full save")
	}
	if len(f.events.events) != 1 {
		t.Fatalf("expected one event, got %d", len(f.events.events))
	}
	event := f.events.events[0]
	if event.DocumentID != 4 || !event.ClassificationSaved || event.ActingUser.ID != 9 || event.Classification.Reviewer == nil {
		t.Fatalf("unexpected event %+v", event)
	}
}

func TestWorkspacePartialSaveKeepsFailedDomainInDraft(t *testing.T) {
	f := newWorkspaceFixture()
	ctx := context.Background()
	f.clsAPI.updateErr = errors.New("status inválido")
	if _, err := f.workspace.Stage(ctx, 4, []ports.Edit{
		{Field: FieldStatus, Value: "4"},
		{Field: FieldCategories, Value: "2"},
	}); err != nil {
		t.Fatalf("Stage() error = %v", err)
	}

	outcome, err := f.workspace.Save(ctx, 4)
	if err == nil {
		t.Fatalf("expected save error")
	}
	if outcome.ClassificationSaved || !outcome.CategoriesSaved {
		t.Fatalf("unexpected outcome %+v", outcome)
	}
	draft, ok := f.drafts.drafts[4]
	if !ok {
		t.Fatalf("expected draft kept for the failed domain")
	}
	if !domain.SameIDSet(draft.OriginalCategories, []int{2}) {
		t.Fatalf("expected categories promoted in draft, got %v", draft.OriginalCategories)
	}
	if draft.CurrentClassification.Status == nil || *draft.CurrentClassification.Status != domain.StatusArchived {
		t.Fatalf("expected classification edit preserved, got %+v", draft.CurrentClassification)
	}
	if len(f.events.events) != 1 || f.events.events[0].ClassificationSaved {
		t.Fatalf("expected event for the committed categories only, got %+v", f.events.events)
	}
}

func TestWorkspaceSaveIgnoresPublishFailure(t *testing.T) {
	f := newWorkspaceFixture()
	f.events.err = errors.New("nats down")
	ctx := context.Background()
	if _, err := f.workspace.Stage(ctx, 4, []ports.Edit{{Field: FieldPrivacity, Value: "2"}}); err != nil {
		t.Fatalf("Stage() error = %v", err)
	}
	if _, err := f.workspace.Save(ctx, 4); err != nil {
		t.Fatalf("expected publish failure not to fail the save, got %v", err)
	}
}

func TestWorkspaceDiscardAndDrafts(t *testing.T) {
	f := newWorkspaceFixture()
	ctx := context.Background()
	for _, id := range []int{7, 4} {
		if _, err := f.workspace.Stage(ctx, id, []ports.Edit{{Field: FieldAddCategory, Value: "9"}}); err != nil {
			t.Fatalf("Stage(%d) error = %v", id, err)
		}
	}

	drafts, err := f.workspace.Drafts(ctx)
	if err != nil || len(drafts) != 2 || drafts[0].DocumentID != 4 {
		t.Fatalf("unexpected drafts %+v %v", drafts, err)
	}
	if err := f.workspace.Discard(ctx, 4); err != nil {
		t.Fatalf("Discard() error = %v", err)
	}
	if err := f.workspace.Discard(ctx, 4); !domain.IsKind(err, domain.ErrDraftNotFound) {
		t.Fatalf("expected missing draft error, got %v", err)
	}
}
