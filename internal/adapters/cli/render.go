package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/BraceroInSabot/ArquiVia-sub000/internal/core/domain"
	"github.com/BraceroInSabot/ArquiVia-sub000/internal/core/ports"
)

const (
	formatTable = "table"
	formatJSON  = "json"
	formatYAML  = "yaml"
)

func (c *CLI) render(v any) error {
	switch c.format {
	case formatJSON:
		enc := json.NewEncoder(c.stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case formatYAML:
		return writeYAML(c.stdout, v)
	default:
		return writeTable(c.stdout, v)
	}
}

// writeYAML goes through JSON so that keys follow the wire names and order.
func writeYAML(w io.Writer, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	var node yaml.Node
	if err := yaml.Unmarshal(raw, &node); err != nil {
		return fmt.Errorf("convert output: %w", err)
	}
	resetStyle(&node)
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&node); err != nil {
		return fmt.Errorf("write yaml: %w", err)
	}
	return enc.Close()
}

func resetStyle(node *yaml.Node) {
	node.Style = 0
	for _, child := range node.Content {
		resetStyle(child)
	}
}

func writeTable(w io.Writer, v any) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	switch value := v.(type) {
	case ports.BrowseResult:
		writeBrowseResult(tw, value)
	case []domain.DocumentSummary:
		writeDocumentRows(tw, value)
	case *domain.Document:
		writeDocument(tw, value)
	case domain.EditorSnapshot:
		writeSnapshot(tw, value)
	case ports.SaveOutcome:
		writeSaveOutcome(tw, value)
	case []domain.Draft:
		writeDrafts(tw, value)
	case []domain.Category:
		fmt.Fprintln(tw, "ID\tCATEGORIA\tPÚBLICA\tCOR\tDESCRIÇÃO")
		for _, cat := range value {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", cat.ID, cat.Name, yesNo(cat.IsPublic), cat.Color, cat.Description)
		}
	case *domain.Category:
		fmt.Fprintf(tw, "ID\t%d\nCategoria\t%s\nPública\t%s\nCor\t%s\nDescrição\t%s\n", value.ID, value.Name, yesNo(value.IsPublic), value.Color, value.Description)
	case []domain.Enterprise:
		fmt.Fprintln(tw, "ID\tNOME\tCNPJ\tATIVA\tRESPONSÁVEL")
		for _, e := range value {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", e.ID, e.Name, e.CNPJ, yesNo(e.IsActive), e.Owner)
		}
	case *domain.Enterprise:
		fmt.Fprintf(tw, "ID\t%d\nNome\t%s\nCNPJ\t%s\nAtiva\t%s\nResponsável\t%s\n", value.ID, value.Name, value.CNPJ, yesNo(value.IsActive), value.Owner)
	case []domain.Sector:
		fmt.Fprintln(tw, "ID\tNOME\tEMPRESA\tGESTOR\tATIVO")
		for _, s := range value {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", s.ID, s.Name, s.Enterprise, s.Manager, yesNo(s.IsActive))
		}
	case *domain.Sector:
		fmt.Fprintf(tw, "ID\t%d\nNome\t%s\nEmpresa\t%s\nGestor\t%s\nAtivo\t%s\n", value.ID, value.Name, value.Enterprise, value.Manager, yesNo(value.IsActive))
	case []domain.SectorUser:
		fmt.Fprintln(tw, "ID\tNOME\tEMAIL\tGESTOR\tREVISOR")
		for _, u := range value {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", u.ID, u.Ref().Name, u.Email, yesNo(u.IsManager), yesNo(u.IsReviewer))
		}
	case []domain.User:
		fmt.Fprintln(tw, "ID\tUSUÁRIO\tNOME\tEMAIL\tATIVO")
		for _, u := range value {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", u.ID, u.Username, u.Name, u.Email, yesNo(u.IsActive))
		}
	case *domain.User:
		fmt.Fprintf(tw, "ID\t%d\nUsuário\t%s\nNome\t%s\nEmail\t%s\nAdministrador\t%s\n", value.ID, value.Username, value.Name, value.Email, yesNo(value.IsAdmin))
	case *domain.DashboardSummary:
		writeDashboard(tw, value)
	case string:
		fmt.Fprintln(tw, value)
	default:
		if err := tw.Flush(); err != nil {
			return err
		}
		return writeYAML(w, v)
	}
	return tw.Flush()
}

func writeBrowseResult(tw *tabwriter.Writer, result ports.BrowseResult) {
	if result.Annotation != "" {
		fmt.Fprintln(tw, result.Annotation)
	}
	if len(result.Groups) == 0 {
		writeDocumentRows(tw, result.Documents)
	} else {
		for i, group := range result.Groups {
			if i > 0 {
				fmt.Fprintln(tw)
			}
			fmt.Fprintf(tw, "== %s (%d nesta página) ==\n", group.Label, group.Count)
			writeDocumentRows(tw, group.Documents)
		}
	}
	fmt.Fprintf(tw, "\nPágina %d de %d (%d documentos)  %s\n", result.Page, result.PageCount, result.Total, formatWindow(result.Window))
}

func writeDocumentRows(tw *tabwriter.Writer, docs []domain.DocumentSummary) {
	fmt.Fprintln(tw, "ID\tTÍTULO\tEMPRESA\tSETOR\tSTATUS\tPRIVACIDADE\tREVISOR\tCATEGORIAS")
	for _, doc := range docs {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			doc.ID, doc.Title, doc.Enterprise, doc.Sector, doc.ClassificationStatus, doc.Privacity, doc.Reviewer, strings.Join(doc.Categories, ", "))
	}
}

func formatWindow(links []domain.PageLink) string {
	parts := make([]string, 0, len(links))
	for _, link := range links {
		switch {
		case link.Ellipsis:
			parts = append(parts, "…")
		case link.Current:
			parts = append(parts, "["+strconv.Itoa(link.Number)+"]")
		default:
			parts = append(parts, strconv.Itoa(link.Number))
		}
	}
	return strings.Join(parts, " ")
}

func writeDocument(tw *tabwriter.Writer, doc *domain.Document) {
	names := make([]string, 0, len(doc.Categories))
	for _, cat := range doc.Categories {
		names = append(names, cat.Name)
	}
	fmt.Fprintf(tw, "ID\t%d\nTítulo\t%s\nSetor\t%d\nAtivo\t%s\nCategorias\t%s\n",
		doc.ID, doc.Title, doc.SectorID, yesNo(doc.IsActive), strings.Join(names, ", "))
}

func writeSnapshot(tw *tabwriter.Writer, snap domain.EditorSnapshot) {
	cls := snap.CurrentClassification
	fmt.Fprintf(tw, "Documento\t%d\n", snap.DocumentID)
	fmt.Fprintf(tw, "Revisado\t%s\n", yesNo(cls.IsReviewed))
	reviewer := snap.ReviewerName
	if snap.ReviewerPending {
		reviewer += " (não confirmado)"
	}
	fmt.Fprintf(tw, "Revisor\t%s\n", reviewer)
	fmt.Fprintf(tw, "Status\t%s\n", statusLabel(cls.Status))
	fmt.Fprintf(tw, "Privacidade\t%s\n", privacityLabel(cls.Privacity))
	if cls.IsExclusive() {
		fmt.Fprintf(tw, "Usuários exclusivos\t%s\n", joinIDs(cls.ExclusiveUsers))
	}
	fmt.Fprintf(tw, "Categorias\t%s\n", joinIDs(snap.CurrentCategories))
	fmt.Fprintf(tw, "Alterações pendentes\t%s\n", yesNo(snap.Dirty()))
}

// diffLines lists the fields whose current value differs from the original.
func diffLines(snap domain.EditorSnapshot) []string {
	orig, cur := snap.OriginalClassification, snap.CurrentClassification
	var lines []string
	add := func(field, from, to string) {
		if from != to {
			lines = append(lines, fmt.Sprintf("%s: %s -> %s", field, from, to))
		}
	}
	add("is_reviewed", yesNo(orig.IsReviewed), yesNo(cur.IsReviewed))
	add("reviewer", reviewerID(orig.Reviewer), reviewerID(cur.Reviewer))
	add("classification_status", statusLabel(orig.Status), statusLabel(cur.Status))
	add("privacity", privacityLabel(orig.Privacity), privacityLabel(cur.Privacity))
	if !domain.SameIDSet(orig.ExclusiveUsers, cur.ExclusiveUsers) {
		add("exclusive_users", joinIDs(domain.NormalizeIDs(orig.ExclusiveUsers)), joinIDs(domain.NormalizeIDs(cur.ExclusiveUsers)))
	}
	if snap.CategoriesDirty {
		add("categories", joinIDs(snap.OriginalCategories), joinIDs(snap.CurrentCategories))
	}
	return lines
}

func writeSaveOutcome(tw *tabwriter.Writer, outcome ports.SaveOutcome) {
	if !outcome.ClassificationAttempted && !outcome.CategoriesAttempted {
		fmt.Fprintln(tw, "Nada a salvar.")
		return
	}
	if outcome.ClassificationAttempted {
		fmt.Fprintf(tw, "Classificação\t%s\n", savedLabel(outcome.ClassificationSaved))
	}
	if outcome.CategoriesAttempted {
		fmt.Fprintf(tw, "Categorias\t%s\n", savedLabel(outcome.CategoriesSaved))
	}
}

func writeDrafts(tw *tabwriter.Writer, drafts []domain.Draft) {
	fmt.Fprintln(tw, "DOCUMENTO\tCLASSIFICAÇÃO ALTERADA\tCATEGORIAS ALTERADAS\tATUALIZADO EM")
	for _, d := range drafts {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n",
			d.DocumentID,
			yesNo(!d.OriginalClassification.Equal(d.CurrentClassification)),
			yesNo(!domain.SameIDSet(d.OriginalCategories, d.CurrentCategories)),
			d.UpdatedAt.Local().Format("02/01/2006 15:04"))
	}
}

func writeDashboard(tw *tabwriter.Writer, d *domain.DashboardSummary) {
	fmt.Fprintf(tw, "Documentos\t%d\nRevisados\t%d\nAguardando revisão\t%d\nEmpresas\t%d\nSetores\t%d\nCategorias\t%d\n",
		d.TotalDocuments, d.ReviewedDocuments, d.PendingReview, d.TotalEnterprises, d.TotalSectors, d.TotalCategories)
	writeCounts(tw, "Por status", d.ByStatus)
	writeCounts(tw, "Por privacidade", d.ByPrivacity)
	if len(d.RecentDocuments) > 0 {
		fmt.Fprintln(tw, "\nRecentes")
		writeDocumentRows(tw, d.RecentDocuments)
	}
}

func writeCounts(tw *tabwriter.Writer, title string, counts map[string]int) {
	if len(counts) == 0 {
		return
	}
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	fmt.Fprintf(tw, "\n%s\n", title)
	for _, k := range keys {
		fmt.Fprintf(tw, "  %s\t%d\n", k, counts[k])
	}
}

func statusLabel(s *domain.ClassificationStatus) string {
	if s == nil {
		return "-"
	}
	return s.String()
}

func privacityLabel(p *domain.Privacity) string {
	if p == nil {
		return "-"
	}
	return p.String()
}

func reviewerID(r *domain.UserRef) string {
	if r == nil {
		return "-"
	}
	return "#" + strconv.Itoa(r.ID)
}

func joinIDs(ids []int) string {
	if len(ids) == 0 {
		return "-"
	}
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, ", ")
}

func savedLabel(saved bool) string {
	if saved {
		return "salva"
	}
	return "falhou"
}

func yesNo(v bool) string {
	if v {
		return "sim"
	}
	return "não"
}
