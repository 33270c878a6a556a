package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strconv"
	"strings"

	"github.com/BraceroInSabot/ArquiVia-sub000/internal/core/domain"
	"github.com/BraceroInSabot/ArquiVia-sub000/internal/core/ports"
)

// DocumentCreating validates and creates draft documents.
type DocumentCreating interface {
	Create(ctx context.Context, in domain.NewDocument) (*domain.Document, error)
}

// EventWatcher streams classification saves published by other sessions.
type EventWatcher interface {
	Subscribe(ctx context.Context, handler func(context.Context, domain.ClassificationSaved) error) error
}

// Exporter writes a fetched page to a spreadsheet.
type Exporter func(path string, docs []domain.DocumentSummary, groups []domain.DocumentGroup) error

// Services is everything the commands talk to.
type Services struct {
	Documents   ports.DocumentAPI
	Browser     ports.DocumentBrowsing
	Creator     DocumentCreating
	Workspace   ports.ClassificationEditing
	Links       ports.CategoryLinkAPI
	Catalog     ports.CategoryCatalogAPI
	Enterprises ports.EnterpriseAPI
	Sectors     ports.SectorAPI
	Users       ports.UserAPI
	Dashboard   ports.DashboardAPI
	Export      Exporter
	Watcher     EventWatcher
}

type handler func(ctx context.Context, args []string) error

type CLI struct {
	svc    Services
	stdout io.Writer
	stderr io.Writer
	format string

	commands map[string]map[string]handler
}

func New(svc Services, stdout, stderr io.Writer, format string) *CLI {
	c := &CLI{
		svc:    svc,
		stdout: stdout,
		stderr: stderr,
		format: format,
	}
	c.commands = map[string]map[string]handler{
		"documents": {
			"list":   c.documentsList,
			"search": c.documentsSearch,
			"export": c.documentsExport,
			"get":    c.documentsGet,
			"create": c.documentsCreate,
			"rename": c.documentsRename,
			"toggle": c.documentsToggle,
			"delete": c.documentsDelete,
		},
		"classification": {
			"show":    c.classificationShow,
			"edit":    c.classificationEdit,
			"diff":    c.classificationDiff,
			"save":    c.classificationSave,
			"discard": c.classificationDiscard,
			"drafts":  c.classificationDrafts,
		},
		"categories": {
			"list":   c.categoriesList,
			"linked": c.categoriesLinked,
			"create": c.categoriesCreate,
			"update": c.categoriesUpdate,
			"delete": c.categoriesDelete,
		},
		"enterprises": {
			"list":   c.enterprisesList,
			"get":    c.enterprisesGet,
			"create": c.enterprisesCreate,
			"update": c.enterprisesUpdate,
			"toggle": c.enterprisesToggle,
			"delete": c.enterprisesDelete,
		},
		"sectors": {
			"list":        c.sectorsList,
			"get":         c.sectorsGet,
			"create":      c.sectorsCreate,
			"update":      c.sectorsUpdate,
			"delete":      c.sectorsDelete,
			"users":       c.sectorsUsers,
			"add-user":    c.sectorsAddUser,
			"remove-user": c.sectorsRemoveUser,
		},
		"users": {
			"me":   c.usersMe,
			"list": c.usersList,
		},
		"dashboard": {
			"show": c.dashboardShow,
		},
		"events": {
			"watch": c.eventsWatch,
		},
	}
	return c
}

// Run executes one command line and returns the process exit code.
func (c *CLI) Run(ctx context.Context, args []string) int {
	global := flag.NewFlagSet("arquivia", flag.ContinueOnError)
	global.SetOutput(c.stderr)
	global.StringVar(&c.format, "o", c.format, "output format: table, json or yaml")
	if err := global.Parse(args); err != nil {
		return ExitValidation
	}
	switch c.format {
	case formatTable, formatJSON, formatYAML:
	default:
		fmt.Fprintf(c.stderr, "erro: formato de saída desconhecido %q\n", c.format)
		return ExitValidation
	}

	rest := global.Args()
	if len(rest) == 0 || rest[0] == "help" {
		c.usage()
		return ExitValidation
	}
	group, ok := c.commands[rest[0]]
	if !ok {
		fmt.Fprintf(c.stderr, "erro: comando desconhecido %q\n", rest[0])
		c.usage()
		return ExitValidation
	}

	action := ""
	actionArgs := rest[1:]
	if len(actionArgs) > 0 {
		action = actionArgs[0]
		actionArgs = actionArgs[1:]
	}
	if action == "" && len(group) == 1 {
		for only := range group {
			action = only
		}
	}
	run, ok := group[action]
	if !ok {
		fmt.Fprintf(c.stderr, "erro: subcomando desconhecido %q para %s (disponíveis: %s)\n", action, rest[0], strings.Join(actionNames(group), ", "))
		return ExitValidation
	}

	if err := run(ctx, actionArgs); err != nil {
		slog.Debug("command_failed", "command", rest[0]+" "+action, "error", err)
		fmt.Fprintln(c.stderr, "erro:", domain.UserMessage(err, ""))
		return mapErrorToExitCode(err)
	}
	return ExitOK
}

func (c *CLI) usage() {
	fmt.Fprintln(c.stderr, "uso: arquivia [-o table|json|yaml] <comando> <subcomando> [argumentos]")
	names := make([]string, 0, len(c.commands))
	for name := range c.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(c.stderr, "  %-15s %s\n", name, strings.Join(actionNames(c.commands[name]), " | "))
	}
}

func actionNames(group map[string]handler) []string {
	names := make([]string, 0, len(group))
	for name := range group {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func usageError(format string, args ...any) error {
	return &domain.ValidationError{Message: fmt.Sprintf(format, args...)}
}

func newFlags(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func parseFlags(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		return usageError("%s: %v", fs.Name(), err)
	}
	return nil
}

// leadingID takes the numeric id that precedes the flags of a command.
func leadingID(name string, args []string) (int, []string, error) {
	if len(args) == 0 || strings.HasPrefix(args[0], "-") {
		return 0, nil, usageError("%s: informe o identificador", name)
	}
	id, err := strconv.Atoi(args[0])
	if err != nil || id <= 0 {
		return 0, nil, usageError("%s: identificador inválido %q", name, args[0])
	}
	return id, args[1:], nil
}

func parseIDs(field, raw string) ([]int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	var ids []int
	for _, part := range strings.Split(raw, ",") {
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
