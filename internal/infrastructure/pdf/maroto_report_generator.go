// Package pdf implementa el render de los informes del caixa con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + período  │  Generado por + fecha          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: Entradas / Saídas / Saldo / N° movimientos        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Fecha | Tipo | Descripción | Método | Valor          │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

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

	"github.com/jhoicas/caixa-api/internal/application/report"
	"github.com/jhoicas/caixa-api/internal/domain/entity"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorRed     = &props.Color{Red: 170, Green: 30, Blue: 30}
)

// MarotoReportGenerator implementa report.PDFGenerator usando Maroto v2.
type MarotoReportGenerator struct{}

// NewMarotoReportGenerator construye el generador.
func NewMarotoReportGenerator() *MarotoReportGenerator { return &MarotoReportGenerator{} }

// GenerateTransactionsReport genera el PDF del informe de movimientos.
func (g *MarotoReportGenerator) GenerateTransactionsReport(_ context.Context, rep *report.TransactionsReport) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Relatório de Movimentos do Caixa", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(rep))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(summaryRow(rep))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableRows(rep.Transactions) {
		m.AddRows(r)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: título + período (izq) y generado por + fecha (der).
func headerRow(rep *report.TransactionsReport) core.Row {
	period := "todo el historial"
	if rep.From != nil && rep.To != nil {
		period = rep.From.Format("02/01/2006") + " a " + rep.To.Format("02/01/2006")
	} else if rep.From != nil {
		period = "desde " + rep.From.Format("02/01/2006")
	} else if rep.To != nil {
		period = "hasta " + rep.To.Format("02/01/2006")
	}

	return row.New(16).Add(
		col.New(7).Add(
			text.New("RELATÓRIO DE MOVIMENTOS", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Período: "+period, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("Gerado por: "+rep.GeneratedBy, props.Text{
				Size: 8, Align: align.Right, Top: 3, Color: colorGray,
			}),
			text.New(rep.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

// summaryRow: totales del período.
func summaryRow(rep *report.TransactionsReport) core.Row {
	cell := func(label, value string, color *props.Color) core.Col {
		return col.New(3).Add(
			text.New(label, props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Center, Color: colorGray, Top: 1,
			}),
			text.New(value, props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Center, Color: color, Top: 6,
			}),
		)
	}
	return row.New(14).Add(
		cell("ENTRADAS", "R$ "+rep.Summary.TotalEntrada.StringFixed(2), colorPrimary),
		cell("SAÍDAS", "R$ "+rep.Summary.TotalSaida.StringFixed(2), colorRed),
		cell("SALDO", "R$ "+rep.Summary.Saldo.StringFixed(2), colorPrimary),
		cell("MOVIMENTOS", fmt.Sprintf("%d", rep.Summary.TotalTransactions), colorGray),
	)
}

// tableHeaderRow: cabecera de la tabla de movimientos.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Data", 2, align.Left),
		h("Tipo", 2, align.Left),
		h("Descrição", 4, align.Left),
		h("Método", 2, align.Center),
		h("Valor", 2, align.Right),
	)
}

// tableRows: una fila por movimiento; los cancelados van en gris con la marca.
func tableRows(txns []*entity.Transaction) []core.Row {
	result := make([]core.Row, 0, len(txns))
	for _, t := range txns {
		color := colorPrimary
		if t.Type == entity.TransactionSaida {
			color = colorRed
		}
		description := t.Description
		textColor := (*props.Color)(nil)
		if t.Cancelled {
			description = "[CANCELADA] " + description
			textColor = colorGray
			color = colorGray
		}
		result = append(result, row.New(7).Add(
			col.New(2).Add(text.New(
				t.CreatedAt.Format("02/01/2006 15:04"),
				props.Text{Size: 7.5, Align: align.Left, Top: 1, Color: textColor},
			)),
			col.New(2).Add(text.New(
				t.Type,
				props.Text{Size: 8, Align: align.Left, Top: 1, Color: textColor},
			)),
			col.New(4).Add(text.New(
				description,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1, Color: textColor},
			)),
			col.New(2).Add(text.New(
				t.PaymentMethod,
				props.Text{Size: 8, Align: align.Center, Top: 1, Color: textColor},
			)),
			col.New(2).Add(text.New(
				"R$ "+t.Amount.StringFixed(2),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1, Color: color},
			)),
		))
	}
	return result
}
