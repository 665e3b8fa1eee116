// Package pdf implementa la generación del informe imprimible del stock de
// alimento: una tabla por tipo con el balance en kg/baldes/bultos, la tasa
// diaria de consumo y la proyección de agotamiento.
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

	appfeed "github.com/jhoicas/Granja-api/internal/application/feed"
	"github.com/jhoicas/Granja-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 34, Green: 102, Blue: 51}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// Etiquetas legibles de los tipos de alimento.
var feedTypeLabels = map[string]string{
	entity.FeedTypeB0: "B0 — Iniciador",
	entity.FeedTypeB1: "B1 — Crecimiento",
	entity.FeedTypeB2: "B2 — Ponedora",
}

// ── Generator ─────────────────────────────────────────────────────────────────

var _ appfeed.StockReportGenerator = (*MarotoReportGenerator)(nil)

// MarotoReportGenerator implementa feed.StockReportGenerator usando Maroto v2.
type MarotoReportGenerator struct{}

// NewMarotoReportGenerator construye el generador.
func NewMarotoReportGenerator() *MarotoReportGenerator { return &MarotoReportGenerator{} }

// GenerateStockReport genera el PDF del resumen de stock y devuelve sus bytes.
func (g *MarotoReportGenerator) GenerateStockReport(
	_ context.Context,
	summaries []*entity.FeedStockSummary,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Informe de Stock de Alimento", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow())
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow())
	for _, s := range summaries {
		m.AddRows(summaryRow(s))
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow())

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título del informe (izq) y fecha de generación (der).
func headerRow() core.Row {
	fecha := time.Now().Format("02/01/2006")
	return row.New(14).Add(
		col.New(8).Add(
			text.New("INFORME DE STOCK DE ALIMENTO", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 2,
			}),
		),
		col.New(4).Add(
			text.New("Generado: "+fecha, props.Text{
				Size: 9, Align: align.Right, Top: 4, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	header := props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}
	headerRight := props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1, Align: align.Right}
	return row.New(7).Add(
		col.New(3).Add(text.New("Tipo de alimento", header)),
		col.New(2).Add(text.New("Kg", headerRight)),
		col.New(2).Add(text.New("Baldes", headerRight)),
		col.New(1).Add(text.New("Bultos", headerRight)),
		col.New(2).Add(text.New("Consumo kg/día", headerRight)),
		col.New(2).Add(text.New("Se agota", headerRight)),
	)
}

func summaryRow(s *entity.FeedStockSummary) core.Row {
	label, ok := feedTypeLabels[s.FeedType]
	if !ok {
		label = s.FeedType
	}
	finish := "—"
	if s.EstimatedFinishDate != nil && s.DaysRemaining != nil {
		finish = fmt.Sprintf("%s (%d días)", s.EstimatedFinishDate.Format("02/01/2006"), *s.DaysRemaining)
	}
	cell := props.Text{Size: 8, Top: 1}
	cellRight := props.Text{Size: 8, Top: 1, Align: align.Right}
	return row.New(6).Add(
		col.New(3).Add(text.New(label, cell)),
		col.New(2).Add(text.New(s.QuantityKg.StringFixed(2), cellRight)),
		col.New(2).Add(text.New(s.QuantityBuckets.StringFixed(1), cellRight)),
		col.New(1).Add(text.New(s.QuantitySacks.StringFixed(1), cellRight)),
		col.New(2).Add(text.New(s.DailyConsumption.StringFixed(2), cellRight)),
		col.New(2).Add(text.New(finish, cellRight)),
	)
}

func footerRow() core.Row {
	return row.New(6).Add(
		col.New(12).Add(
			text.New("Tasa diaria calculada sobre los días con actividad de los últimos 30 días.", props.Text{
				Size: 7, Color: colorGray, Top: 1,
			}),
		),
	)
}
