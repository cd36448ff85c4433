// Package pdf genera la representación imprimible de prefacturas y facturas
// con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Empresa + CIF  │  Tipo + Número + Fecha            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CLIENTE: Nombre + dirección + contacto                     │
//	│  PERIODO: fechas facturadas (si las hay)                    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Entrada | Descripción | Cant | P.Unit | Total       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Subtotal / Recargo / IVA / TOTAL                  │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"strconv"

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

	"github.com/hawlader/taller-api/internal/domain/entity"
)

const dateLayout = "02/01/2006"

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// DocumentGenerator genera el PDF de un documento de facturación.
type DocumentGenerator struct{}

// NewDocumentGenerator construye el generador.
func NewDocumentGenerator() *DocumentGenerator { return &DocumentGenerator{} }

// Generate genera el PDF y devuelve sus bytes.
func (g *DocumentGenerator) Generate(
	doc *entity.Document,
	company *entity.CompanyDetails,
	client *entity.Client,
) ([]byte, error) {
	companyName := "—"
	if company != nil {
		companyName = company.Name
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(doc.DocumentType+" "+doc.DocumentNumber, true).
		WithAuthor(companyName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(doc, company))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(clientRow(client))
	if doc.StartDate != nil && doc.EndDate != nil {
		m.AddRows(periodRow(doc))
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableItemRows(doc.Items) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(doc))

	out, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return out.GetBytes(), nil
}

// headerRow: empresa (izq) y tipo + número + fecha (der).
func headerRow(doc *entity.Document, company *entity.CompanyDetails) core.Row {
	name, vat := "—", "—"
	if company != nil {
		name = company.Name
		vat = nonEmpty(company.VATNumber, "—")
	}
	return row.New(18).Add(
		col.New(7).Add(
			text.New(name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("CIF: "+vat, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New(doc.DocumentType, props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(doc.DocumentNumber, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Fecha: "+doc.Date.Format(dateLayout), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// clientRow: datos del cliente facturado.
func clientRow(client *entity.Client) core.Row {
	name, detail := "—", ""
	if client != nil {
		name = client.Name
		detail = fmt.Sprintf("CIF: %s   |   Dirección: %s   |   Tel: %s",
			nonEmpty(client.VATNumber, "—"),
			nonEmpty(client.Address, "—"),
			nonEmpty(client.Phone, "—"),
		)
	}
	return row.New(14).Add(
		col.New(12).Add(
			text.New("CLIENTE", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(name, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(detail, props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

// periodRow: rango de fechas facturado.
func periodRow(doc *entity.Document) core.Row {
	return row.New(6).Add(col.New(12).Add(
		text.New(fmt.Sprintf("Periodo: %s — %s",
			doc.StartDate.Format(dateLayout), doc.EndDate.Format(dateLayout)),
			props.Text{Size: 8, Top: 1, Color: colorGray}),
	))
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Entrada", 1, align.Center),
		h("Descripción", 4, align.Left),
		h("Recibida", 1, align.Center),
		h("Entregada", 1, align.Center),
		h("Falta", 1, align.Center),
		h("P. Unit.", 2, align.Right),
		h("Total", 2, align.Right),
	)
}

func tableItemRows(items []entity.DocumentItem) []core.Row {
	cell := func(s string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(s, props.Text{
			Size: 8, Align: a, Top: 1, Left: 1, Right: 1,
		}))
	}
	result := make([]core.Row, 0, len(items))
	for _, it := range items {
		result = append(result, row.New(7).Add(
			cell(strconv.Itoa(it.EntryCode), 1, align.Center),
			cell(it.Description, 4, align.Left),
			cell(strconv.Itoa(it.RecibidaQuantity), 1, align.Center),
			cell(strconv.Itoa(it.EntregadaQuantity), 1, align.Center),
			cell(strconv.Itoa(it.FaltaQuantity), 1, align.Center),
			cell(it.UnitPrice.StringFixed(2)+" €", 2, align.Right),
			cell(it.Total.StringFixed(2)+" €", 2, align.Right),
		))
	}
	return result
}

// totalsRow: bloque de totales alineado a la derecha.
func totalsRow(doc *entity.Document) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2,
		})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}
	grand := func(s string, right float64) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: right,
		})
	}

	labels := col.New(3).Add(
		label("Subtotal:"),
		label("Recargo:"),
		label(fmt.Sprintf("IVA (%s%%):", doc.TaxRate.StringFixed(0))),
		grand("TOTAL:", 2),
	)
	values := col.New(3).Add(
		value(doc.Subtotal.StringFixed(2)+" €"),
		value(doc.Surcharge.StringFixed(2)+" €"),
		value(doc.TaxAmount.StringFixed(2)+" €"),
		grand(doc.Total.StringFixed(2)+" €", 1),
	)
	return row.New(30).Add(col.New(3), labels, values, col.New(3))
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
