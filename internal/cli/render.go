package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"golang.org/x/term"

	"distrimed/internal/domain"
)

const (
	formatTable = "table"
	formatJSON  = "json"

	// narrower terminals get the table untruncated
	minTableWidth = 60
)

// detectTerminalWidth returns the width of w when it is a terminal, else -1
func detectTerminalWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return -1
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return -1
	}
	return width
}

func newTable(w io.Writer) table.Writer {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleRounded)
	tw.Style().Options.SeparateRows = false
	if width := detectTerminalWidth(w); width >= minTableWidth {
		tw.SetAllowedRowLength(width)
	}
	return tw
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "—"
	}
	return t.Format(time.DateOnly)
}

func yesNo(b bool) string {
	if b {
		return "Sí"
	}
	return "No"
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return nil
}

// JSON shapes keep the wire names stable independent of the domain structs

type distributionJSON struct {
	ID                 string `json:"id"`
	RepresentativeCode int    `json:"representativeCode"`
	RepresentativeName string `json:"representativeName"`
	MaterialID         string `json:"materialId"`
	MaterialName       string `json:"materialName"`
	Quantity           int    `json:"quantity"`
	Period             string `json:"period"`
	Status             string `json:"status"`
	DeliveredAt        string `json:"deliveredAt,omitempty"`
}

type materialJSON struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Category  string `json:"category,omitempty"`
	Unit      string `json:"unit,omitempty"`
	Lot       string `json:"lot,omitempty"`
	ExpiresOn string `json:"expiresOn,omitempty"`
	Active    bool   `json:"active"`
	Notes     string `json:"notes,omitempty"`
}

type representativeJSON struct {
	Code          int                `json:"code"`
	Name          string             `json:"name"`
	Zone          string             `json:"zone,omitempty"`
	Email         string             `json:"email,omitempty"`
	Active        bool               `json:"active"`
	TotalUnits    int                `json:"totalUnits"`
	ByMaterial    map[string]int     `json:"byMaterial"`
	ByStatus      map[string]int     `json:"byStatus"`
	Distributions []distributionJSON `json:"distributions"`
}

type materialDetailJSON struct {
	materialJSON
	TotalDistributed int                `json:"totalDistributed"`
	Distributions    []distributionJSON `json:"distributions"`
}

func jsonDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.DateOnly)
}

func toDistributionJSON(dists []domain.Distribution) []distributionJSON {
	out := make([]distributionJSON, 0, len(dists))
	for _, d := range dists {
		out = append(out, distributionJSON{
			ID:                 d.ID,
			RepresentativeCode: d.RepresentativeCode,
			RepresentativeName: d.RepresentativeName,
			MaterialID:         d.MaterialID,
			MaterialName:       d.MaterialName,
			Quantity:           d.Quantity,
			Period:             d.Period,
			Status:             string(d.Status),
			DeliveredAt:        jsonDate(d.DeliveredAt),
		})
	}
	return out
}

func toMaterialJSON(m domain.Material) materialJSON {
	return materialJSON{
		ID:        m.ID,
		Name:      m.Name,
		Category:  m.Category,
		Unit:      m.Unit,
		Lot:       m.Lot,
		ExpiresOn: jsonDate(m.ExpiresOn),
		Active:    m.Active,
		Notes:     m.Notes,
	}
}

func renderDistributions(w io.Writer, dists []domain.Distribution) {
	tw := newTable(w)
	tw.AppendHeader(table.Row{"Cód.", "Representante", "Material", "Cant.", "Periodo", "Estado"})
	total := 0
	for _, d := range dists {
		tw.AppendRow(table.Row{d.RepresentativeCode, d.RepresentativeName, d.MaterialName, d.Quantity, d.Period, d.Status.Label()})
		if countsTowardTotal(d.Status) {
			total += d.Quantity
		}
	}
	tw.AppendFooter(table.Row{"", fmt.Sprintf("%d registros", len(dists)), "Total", total})
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight, AlignFooter: text.AlignRight},
	})
	tw.Render()
}

func renderMaterials(w io.Writer, materials []domain.Material) {
	tw := newTable(w)
	tw.AppendHeader(table.Row{"ID", "Nombre", "Categoría", "Unidad", "Lote", "Vence", "Activo"})
	for _, m := range materials {
		tw.AppendRow(table.Row{m.ID, m.Name, m.Category, m.Unit, m.Lot, formatDate(m.ExpiresOn), yesNo(m.Active)})
	}
	tw.AppendFooter(table.Row{"", fmt.Sprintf("%d materiales", len(materials))})
	tw.Render()
}

func renderRepresentative(w io.Writer, s domain.RepresentativeSummary, materialName func(id string) string) {
	rep := s.Representative
	fmt.Fprintf(w, "Representante #%d · %s\n\n", rep.Code, rep.Name)

	info := newTable(w)
	info.AppendRows([]table.Row{
		{"Zona", rep.Zone},
		{"Email", rep.Email},
		{"Activo", yesNo(rep.Active)},
		{"Total unidades", s.TotalUnits},
	})
	info.Render()

	if len(s.ByMaterial) > 0 {
		fmt.Fprintln(w)
		byMaterial := newTable(w)
		byMaterial.AppendHeader(table.Row{"Material", "Unidades"})
		for _, id := range sortedKeys(s.ByMaterial) {
			byMaterial.AppendRow(table.Row{fmt.Sprintf("%s (%s)", materialName(id), id), s.ByMaterial[id]})
		}
		byMaterial.Render()
	}

	if len(s.ByStatus) > 0 {
		fmt.Fprintln(w)
		byStatus := newTable(w)
		byStatus.AppendHeader(table.Row{"Estado", "Unidades"})
		for _, st := range []domain.DistributionStatus{domain.StatusPending, domain.StatusDelivered, domain.StatusReturned, domain.StatusCancelled} {
			if units, ok := s.ByStatus[st]; ok {
				byStatus.AppendRow(table.Row{st.Label(), units})
			}
		}
		byStatus.Render()
	}
}

func renderMaterialDetail(w io.Writer, m domain.Material, dists []domain.Distribution) {
	fmt.Fprintf(w, "Material %s · %s\n\n", m.ID, m.Name)

	info := newTable(w)
	info.AppendRows([]table.Row{
		{"Categoría", m.Category},
		{"Unidad", m.Unit},
		{"Lote", m.Lot},
		{"Vence", formatDate(m.ExpiresOn)},
		{"Activo", yesNo(m.Active)},
		{"Total distribuido", distributedUnits(dists)},
	})
	if m.Notes != "" {
		info.AppendRow(table.Row{"Notas", m.Notes})
	}
	info.Render()

	if len(dists) > 0 {
		fmt.Fprintln(w)
		renderDistributions(w, dists)
	}
}

func countsTowardTotal(s domain.DistributionStatus) bool {
	return s != domain.StatusCancelled && s != domain.StatusReturned
}

func distributedUnits(dists []domain.Distribution) int {
	total := 0
	for _, d := range dists {
		if countsTowardTotal(d.Status) {
			total += d.Quantity
		}
	}
	return total
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func parseCode(s string) (int, error) {
	code, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid representative code %q: %w", s, err)
	}
	return code, nil
}
