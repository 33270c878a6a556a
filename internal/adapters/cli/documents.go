package cli

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/BraceroInSabot/ArquiVia-sub000/internal/core/domain"
	"github.com/BraceroInSabot/ArquiVia-sub000/internal/core/ports"
)

// filterFlags mirrors the fields of the search form.
type filterFlags struct {
	term       *string
	reviewed   *string
	status     *string
	privacity  *string
	reviewer   *string
	categories *string
	groupBy    *string
	page       *int
}

func bindFilterFlags(fs *flag.FlagSet, withSearch bool) filterFlags {
	f := filterFlags{
		term:       new(string),
		reviewed:   new(string),
		status:     new(string),
		privacity:  new(string),
		reviewer:   new(string),
		categories: new(string),
		groupBy:    fs.String("group-by", "", "group the page by enterprise, sector or both"),
		page:       fs.Int("page", 1, "page number"),
	}
	if withSearch {
		f.term = fs.String("term", "", "free text search term")
		f.reviewed = fs.String("reviewed", "", "true or false")
		f.status = fs.String("status", "", "classification status id")
		f.privacity = fs.String("privacity", "", "privacity id")
		f.reviewer = fs.String("reviewer", "", "reviewer name")
		f.categories = fs.String("categories", "", "category names separated by ;")
	}
	return f
}

func (f filterFlags) filters() (domain.DocumentFilters, error) {
	return domain.ParseDocumentFilters(map[string]string{
		"searchTerm":  *f.term,
		"isReviewed":  *f.reviewed,
		"statusId":    *f.status,
		"privacityId": *f.privacity,
		"reviewer":    *f.reviewer,
		"categories":  *f.categories,
		"groupBy":     *f.groupBy,
	})
}

func (c *CLI) browse(ctx context.Context, name string, args []string, withSearch bool) (ports.BrowseResult, *string, error) {
	fs := newFlags(name)
	ff := bindFilterFlags(fs, withSearch)
	export := fs.String("file", "", "also write the page to this .xlsx file")
	if err := parseFlags(fs, args); err != nil {
		return ports.BrowseResult{}, nil, err
	}
	filters, err := ff.filters()
	if err != nil {
		return ports.BrowseResult{}, nil, err
	}
	result, err := c.svc.Browser.Browse(ctx, filters, *ff.page)
	if err != nil {
		return ports.BrowseResult{}, nil, err
	}
	return result, export, nil
}

func (c *CLI) documentsList(ctx context.Context, args []string) error {
	result, export, err := c.browse(ctx, "documents list", args, false)
	if err != nil {
		return err
	}
	if err := c.exportIfRequested(*export, result); err != nil {
		return err
	}
	return c.render(result)
}

func (c *CLI) documentsSearch(ctx context.Context, args []string) error {
	result, export, err := c.browse(ctx, "documents search", args, true)
	if err != nil {
		return err
	}
	if err := c.exportIfRequested(*export, result); err != nil {
		return err
	}
	return c.render(result)
}

// documentsExport writes one page of a listing or search to a spreadsheet.
func (c *CLI) documentsExport(ctx context.Context, args []string) error {
	result, export, err := c.browse(ctx, "documents export", args, true)
	if err != nil {
		return err
	}
	if strings.TrimSpace(*export) == "" {
		return usageError("documents export: informe -file")
	}
	if err := c.exportIfRequested(*export, result); err != nil {
		return err
	}
	return c.render(fmt.Sprintf("%d documentos exportados para %s", len(result.Documents), *export))
}

func (c *CLI) exportIfRequested(path string, result ports.BrowseResult) error {
	if strings.TrimSpace(path) == "" {
		return nil
	}
	if c.svc.Export == nil {
		return usageError("exportação indisponível")
	}
	if err := c.svc.Export(path, result.Documents, result.Groups); err != nil {
		return fmt.Errorf("export documents: %w", err)
	}
	return nil
}

func (c *CLI) documentsGet(ctx context.Context, args []string) error {
	id, _, err := leadingID("documents get", args)
	if err != nil {
		return err
	}
	doc, err := c.svc.Documents.GetDocument(ctx, id)
	if err != nil {
		return err
	}
	return c.render(doc)
}

func (c *CLI) documentsCreate(ctx context.Context, args []string) error {
	fs := newFlags("documents create")
	title := fs.String("title", "", "document title")
	sector := fs.Int("sector", 0, "sector id")
	privacity := fs.String("privacity", "", "privacity id (1 private, 2 public, 3 exclusive)")
	exclusive := fs.String("exclusive-users", "", "comma separated user ids for exclusive privacity")
	categories := fs.String("categories", "", "comma separated category ids")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	exclusiveIDs, err := parseIDs("exclusive_users", *exclusive)
	if err != nil {
		return err
	}
	categoryIDs, err := parseIDs("categories_id", *categories)
	if err != nil {
		return err
	}

	doc, err := c.svc.Creator.Create(ctx, domain.NewDocument{
		Title:          *title,
		SectorID:       *sector,
		Privacity:      domain.ParsePrivacity(*privacity),
		ExclusiveUsers: exclusiveIDs,
		CategoryIDs:    categoryIDs,
	})
	if err != nil {
		return err
	}
	return c.render(doc)
}

func (c *CLI) documentsRename(ctx context.Context, args []string) error {
	id, rest, err := leadingID("documents rename", args)
	if err != nil {
		return err
	}
	fs := newFlags("documents rename")
	title := fs.String("title", "", "new title")
	if err := parseFlags(fs, rest); err != nil {
		return err
	}
	if strings.TrimSpace(*title) == "" {
		return &domain.ValidationError{Field: "title", Message: "Informe o título do documento."}
	}
	doc, err := c.svc.Documents.UpdateDocument(ctx, id, domain.DocumentUpdate{Title: strings.TrimSpace(*title)})
	if err != nil {
		return err
	}
	return c.render(doc)
}

func (c *CLI) documentsToggle(ctx context.Context, args []string) error {
	id, _, err := leadingID("documents toggle", args)
	if err != nil {
		return err
	}
	doc, err := c.svc.Documents.ToggleDocumentActive(ctx, id)
	if err != nil {
		return err
	}
	return c.render(doc)
}

func (c *CLI) documentsDelete(ctx context.Context, args []string) error {
	id, _, err := leadingID("documents delete", args)
	if err != nil {
		return err
	}
	if err := c.svc.Documents.DeleteDocument(ctx, id); err != nil {
		return err
	}
	return c.render(fmt.Sprintf("Documento %d excluído.", id))
}
