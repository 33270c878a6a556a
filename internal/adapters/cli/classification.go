package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/BraceroInSabot/ArquiVia-sub000/internal/core/domain"
	"github.com/BraceroInSabot/ArquiVia-sub000/internal/core/ports"
)

func (c *CLI) classificationShow(ctx context.Context, args []string) error {
	id, _, err := leadingID("classification show", args)
	if err != nil {
		return err
	}
	snap, err := c.svc.Workspace.Show(ctx, id)
	if err != nil {
		return err
	}
	return c.render(snap)
}

// classificationEdit stages field=value edits; take_review needs no value.
func (c *CLI) classificationEdit(ctx context.Context, args []string) error {
	id, rest, err := leadingID("classification edit", args)
	if err != nil {
		return err
	}
	if len(rest) == 0 {
		return usageError("classification edit: informe ao menos uma alteração campo=valor")
	}
	edits := make([]ports.Edit, 0, len(rest))
	for _, arg := range rest {
		field, value, found := strings.Cut(arg, "=")
		field = strings.TrimSpace(field)
		if field == "" || (!found && field != "take_review") {
			return usageError("classification edit: alteração inválida %q, use campo=valor", arg)
		}
		edits = append(edits, ports.Edit{Field: field, Value: value})
	}
	snap, err := c.svc.Workspace.Stage(ctx, id, edits)
	if err != nil {
		return err
	}
	return c.render(snap)
}

func (c *CLI) classificationDiff(ctx context.Context, args []string) error {
	id, _, err := leadingID("classification diff", args)
	if err != nil {
		return err
	}
	snap, err := c.svc.Workspace.Show(ctx, id)
	if err != nil {
		return err
	}
	lines := diffLines(snap)
	if c.format != formatTable {
		return c.render(map[string]any{"document_id": id, "changes": lines})
	}
	if len(lines) == 0 {
		return c.render("Sem alterações pendentes.")
	}
	return c.render(strings.Join(lines, "\n"))
}

func (c *CLI) classificationSave(ctx context.Context, args []string) error {
	id, _, err := leadingID("classification save", args)
	if err != nil {
		return err
	}
	outcome, saveErr := c.svc.Workspace.Save(ctx, id)
	if outcome.ClassificationAttempted || outcome.CategoriesAttempted || saveErr == nil {
		if err := c.render(outcome); err != nil {
			return err
		}
	}
	return saveErr
}

func (c *CLI) classificationDiscard(ctx context.Context, args []string) error {
	id, _, err := leadingID("classification discard", args)
	if err != nil {
		return err
	}
	if err := c.svc.Workspace.Discard(ctx, id); err != nil {
		return err
	}
	return c.render(fmt.Sprintf("Alterações do documento %d descartadas.", id))
}

func (c *CLI) classificationDrafts(ctx context.Context, _ []string) error {
	drafts, err := c.svc.Workspace.Drafts(ctx)
	if err != nil {
		return err
	}
	if drafts == nil {
		drafts = []domain.Draft{}
	}
	return c.render(drafts)
}

func (c *CLI) eventsWatch(ctx context.Context, _ []string) error {
	if c.svc.Watcher == nil {
		return usageError("events watch: configure NATS_URL para acompanhar eventos")
	}
	return c.svc.Watcher.Subscribe(ctx, func(_ context.Context, event domain.ClassificationSaved) error {
		return c.render(event)
	})
}
