// Package pdf implementa la exportación de reportes PharmaTrack con Maroto v2.
//
// Layout del reporte de analítica (A4):
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: PharmaTrack Analytics Report + fecha de generación │
//	│  Window: Last 30 Days                                        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  BEST SELLERS: tabla Product | Units Sold (máx 15 filas)     │
//	│  SLOW MOVERS: lista "producto - N sold"                      │
//	│  TOP CATEGORIES: top 3 con participación %                   │
//	│  INACTIVE PRODUCTS: lista (máx 30, luego "+N more...")       │
//	│  SUGGESTION: párrafo final                                   │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/pharmatrack/pharmatrack-api/internal/domain/report"
)

const (
	maxBestSellerRows = 15
	maxUnsoldRows     = 30
	maxCategorySlices = 3
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 74, Green: 144, Blue: 226}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoReportGenerator implementa reporting.PDFGenerator usando Maroto v2.
type MarotoReportGenerator struct {
	money *message.Printer
}

// NewMarotoReportGenerator construye el generador.
func NewMarotoReportGenerator() *MarotoReportGenerator {
	return &MarotoReportGenerator{money: message.NewPrinter(language.English)}
}

func newDocument(title string) core.Maroto {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(14).WithRightMargin(14).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(title, true).
		WithAuthor("PharmaTrack", true).
		Build()
	return maroto.New(cfg)
}

// GenerateAnalyticsPDF genera el reporte de insights y devuelve sus bytes.
// Lee el resultado en modo solo lectura; nunca lo modifica.
func (g *MarotoReportGenerator) GenerateAnalyticsPDF(
	_ context.Context,
	result report.AnalyticsResult,
	generatedAt time.Time,
) ([]byte, error) {
	m := newDocument("PharmaTrack Analytics Report")

	m.AddRows(titleRows("PharmaTrack Analytics Report", generatedAt)...)
	m.AddRows(text.NewRow(6, "Window: Last 30 Days", props.Text{Size: 9, Color: colorGray}))
	m.AddRows(line.NewRow(2, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(sectionTitle("Best Sellers"))
	if len(result.BestSellers) == 0 {
		m.AddRows(text.NewRow(5, "No sales recorded.", props.Text{Size: 9, Left: 4}))
	} else {
		m.AddRows(bestSellerHeader())
		limit := len(result.BestSellers)
		if limit > maxBestSellerRows {
			limit = maxBestSellerRows
		}
		for _, b := range result.BestSellers[:limit] {
			m.AddRows(row.New(6).Add(
				col.New(9).Add(text.New(b.Product, props.Text{Size: 8.5, Left: 2, Top: 1})),
				col.New(3).Add(text.New(fmt.Sprintf("%d", b.Qty), props.Text{Size: 8.5, Top: 1, Align: align.Right})),
			))
		}
	}

	m.AddRows(sectionTitle("Slow Movers"))
	if len(result.SlowMovers) == 0 {
		m.AddRows(text.NewRow(5, "None", props.Text{Size: 9, Left: 4}))
	} else {
		for _, s := range result.SlowMovers {
			m.AddRows(text.NewRow(5, fmt.Sprintf("%s - %d sold", s.Product, s.Qty), props.Text{Size: 9, Left: 4}))
		}
	}

	m.AddRows(sectionTitle("Top Categories (Qty Share)"))
	shares := report.Shares(result.CategoryTotals)
	if len(shares) == 0 {
		m.AddRows(text.NewRow(5, "No category data", props.Text{Size: 9, Left: 4}))
	} else {
		if len(shares) > maxCategorySlices {
			shares = shares[:maxCategorySlices]
		}
		for _, s := range shares {
			m.AddRows(text.NewRow(5,
				fmt.Sprintf("%s (%.1f%%)", s.Category, s.Pct),
				props.Text{Size: 9, Left: 4}))
		}
	}

	m.AddRows(sectionTitle("Inactive Products"))
	if len(result.Unsold) == 0 {
		m.AddRows(text.NewRow(5, "None (all sold recently)", props.Text{Size: 9, Left: 4}))
	} else {
		limit := len(result.Unsold)
		if limit > maxUnsoldRows {
			limit = maxUnsoldRows
		}
		for _, u := range result.Unsold[:limit] {
			m.AddRows(text.NewRow(5, u.Product, props.Text{Size: 9, Left: 4}))
		}
		if rest := len(result.Unsold) - maxUnsoldRows; rest > 0 {
			m.AddRows(text.NewRow(5, fmt.Sprintf("+%d more...", rest), props.Text{Size: 9, Left: 4, Color: colorGray}))
		}
	}

	m.AddRows(sectionTitle("Suggestion"))
	m.AddRows(text.NewRow(10, result.Suggestion, props.Text{Size: 9, Left: 4}))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar reporte de analítica: %w", err)
	}
	return doc.GetBytes(), nil
}

// GenerateHistoryPDF genera el reporte del historial por rango de días.
func (g *MarotoReportGenerator) GenerateHistoryPDF(
	_ context.Context,
	rep report.HistoryReport,
	rangeLabel string,
	generatedAt time.Time,
) ([]byte, error) {
	m := newDocument("PharmaTrack Order History")

	m.AddRows(titleRows("PharmaTrack Order History", generatedAt)...)
	m.AddRows(text.NewRow(6, "Range: "+rangeLabel, props.Text{Size: 9, Color: colorGray}))
	m.AddRows(line.NewRow(2, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(row.New(8).Add(
		col.New(6).Add(text.New(fmt.Sprintf("Orders: %d", rep.Count), props.Text{Size: 10, Style: fontstyle.Bold, Top: 1})),
		col.New(6).Add(text.New("Revenue (PHP): "+g.amount(rep.Revenue), props.Text{Size: 10, Style: fontstyle.Bold, Top: 1, Align: align.Right})),
	))

	m.AddRows(sectionTitle("Per-Day Breakdown"))
	if len(rep.DayKeys) == 0 {
		m.AddRows(text.NewRow(5, "No range selected", props.Text{Size: 9, Left: 4}))
	} else {
		m.AddRows(row.New(6).Add(
			col.New(5).Add(text.New("Day", props.Text{Size: 9, Style: fontstyle.Bold, Color: colorPrimary, Left: 2, Top: 1})),
			col.New(3).Add(text.New("Orders", props.Text{Size: 9, Style: fontstyle.Bold, Color: colorPrimary, Top: 1, Align: align.Right})),
			col.New(4).Add(text.New("Revenue", props.Text{Size: 9, Style: fontstyle.Bold, Color: colorPrimary, Top: 1, Align: align.Right})),
		))
		for i, key := range rep.DayKeys {
			m.AddRows(row.New(5).Add(
				col.New(5).Add(text.New(key, props.Text{Size: 8.5, Left: 2, Top: 1})),
				col.New(3).Add(text.New(fmt.Sprintf("%d", rep.Series.Count[i]), props.Text{Size: 8.5, Top: 1, Align: align.Right})),
				col.New(4).Add(text.New(g.amount(rep.Series.Revenue[i]), props.Text{Size: 8.5, Top: 1, Align: align.Right})),
			))
		}
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar reporte de historial: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func titleRows(title string, generatedAt time.Time) []core.Row {
	return []core.Row{
		text.NewRow(10, title, props.Text{Size: 15, Style: fontstyle.Bold, Color: colorPrimary}),
		text.NewRow(5, "Generated: "+generatedAt.Format("02/01/2006 15:04"), props.Text{Size: 9, Color: colorGray}),
	}
}

func sectionTitle(title string) core.Row {
	return text.NewRow(8, title, props.Text{Size: 11, Style: fontstyle.Bold, Top: 2})
}

// bestSellerHeader: cabecera de la tabla Product | Units Sold.
func bestSellerHeader() core.Row {
	return row.New(6).Add(
		col.New(9).Add(text.New("Product", props.Text{Size: 9, Style: fontstyle.Bold, Color: colorPrimary, Left: 2, Top: 1})),
		col.New(3).Add(text.New("Units Sold", props.Text{Size: 9, Style: fontstyle.Bold, Color: colorPrimary, Top: 1, Align: align.Right})),
	)
}

// amount formatea un monto con separador de miles y dos decimales.
func (g *MarotoReportGenerator) amount(d decimal.Decimal) string {
	f, _ := d.Float64()
	return g.money.Sprintf("%.2f", f)
}
