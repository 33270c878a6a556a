package xlsx

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/BraceroInSabot/ArquiVia-sub000/internal/core/domain"
)

const (
	ungroupedSheet = "Documentos"
	summarySheet   = "Resumo"
	maxSheetName   = 31
	// PageLocalNote is written next to group counts.
	PageLocalNote = "Contagens referem-se apenas à página exportada."
)

var header = []any{
	"ID", "Título", "Empresa", "Setor", "Ativo", "Revisado", "Status", "Privacidade", "Revisor", "Categorias", "Criado em",
}

// WriteDocuments saves one fetched page as a workbook. Without groups all
// documents go to a single sheet; with groups each bucket gets its own sheet
// and a summary sheet lists the page-local counts.
func WriteDocuments(path string, docs []domain.DocumentSummary, groups []domain.DocumentGroup) (err error) {
	f := excelize.NewFile()
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close workbook: %w", cerr)
		}
	}()

	defaultSheet := f.GetSheetName(0)
	if len(groups) == 0 {
		if err := f.SetSheetName(defaultSheet, ungroupedSheet); err != nil {
			return fmt.Errorf("rename sheet: %w", err)
		}
		if err := writeSheet(f, ungroupedSheet, docs); err != nil {
			return err
		}
	} else {
		if err := f.SetSheetName(defaultSheet, summarySheet); err != nil {
			return fmt.Errorf("rename sheet: %w", err)
		}
		if err := writeSummary(f, groups); err != nil {
			return err
		}
		used := map[string]bool{strings.ToLower(summarySheet): true}
		for _, group := range groups {
			name := uniqueSheetName(group.Label, used)
			if _, err := f.NewSheet(name); err != nil {
				return fmt.Errorf("create sheet %q: %w", name, err)
			}
			if err := writeSheet(f, name, group.Documents); err != nil {
				return err
			}
		}
	}

	f.SetActiveSheet(0)
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

func writeSheet(f *excelize.File, sheet string, docs []domain.DocumentSummary) error {
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("write header of %q: %w", sheet, err)
	}
	for i, doc := range docs {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []any{
			doc.ID,
			doc.Title,
			doc.Enterprise,
			doc.Sector,
			yesNo(doc.IsActive),
			yesNo(doc.IsReviewed),
			doc.ClassificationStatus,
			doc.Privacity,
			doc.Reviewer,
			strings.Join(doc.Categories, "; "),
			formatDate(doc),
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write row %d of %q: %w", i+2, sheet, err)
		}
	}

	lastCell, err := excelize.CoordinatesToCellName(len(header), len(docs)+1)
	if err != nil {
		return err
	}
	if err := f.AutoFilter(sheet, "A1:"+lastCell, nil); err != nil {
		return fmt.Errorf("autofilter %q: %w", sheet, err)
	}
	return nil
}

func writeSummary(f *excelize.File, groups []domain.DocumentGroup) error {
	if err := f.SetSheetRow(summarySheet, "A1", &[]any{"Grupo", "Documentos na página"}); err != nil {
		return fmt.Errorf("write summary header: %w", err)
	}
	for i, group := range groups {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(summarySheet, cell, &[]any{group.Label, group.Count}); err != nil {
			return fmt.Errorf("write summary row: %w", err)
		}
	}
	noteCell, err := excelize.CoordinatesToCellName(1, len(groups)+3)
	if err != nil {
		return err
	}
	if err := f.SetCellValue(summarySheet, noteCell, PageLocalNote); err != nil {
		return fmt.Errorf("write summary note: %w", err)
	}
	return nil
}

// uniqueSheetName strips characters Excel rejects, truncates to the sheet name
// limit and suffixes case-insensitive duplicates.
func uniqueSheetName(label string, used map[string]bool) string {
	name := strings.Map(func(r rune) rune {
		switch r {
		case ':', '\\', '/', '?', '*', '[', ']':
			return '-'
		}
		return r
	}, strings.TrimSpace(label))
	name = strings.Trim(name, "'")
	if name == "" {
		name = "Grupo"
	}
	name = truncateRunes(name, maxSheetName)

	candidate := name
	for n := 2; used[strings.ToLower(candidate)]; n++ {
		suffix := " (" + strconv.Itoa(n) + ")"
		candidate = truncateRunes(name, maxSheetName-len(suffix)) + suffix
	}
	used[strings.ToLower(candidate)] = true
	return candidate
}

func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}

func yesNo(v bool) string {
	if v {
		return "Sim"
	}
	return "Não"
}

func formatDate(doc domain.DocumentSummary) string {
	if doc.CreatedAt.IsZero() {
		return ""
	}
	return doc.CreatedAt.Format("02/01/2006")
}
