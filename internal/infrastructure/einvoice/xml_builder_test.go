package einvoice

import (
	"testing"
	"time"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hawlader/taller-api/internal/domain/entity"
)

func sampleDocument() *entity.Document {
	return &entity.Document{
		ID:             "doc-1",
		DocumentNumber: "F-0001",
		DocumentType:   entity.DocumentTypeFactura,
		Date:           time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
		Items: []entity.DocumentItem{
			{
				EntryCode: 1, ProductCode: "P-1", Description: "Camisa",
				RecibidaQuantity: 15, EntregadaQuantity: 15,
				UnitPrice: decimal.NewFromInt(10), Total: decimal.NewFromInt(150),
			},
		},
		Subtotal:  decimal.NewFromInt(150),
		Surcharge: decimal.NewFromInt(15),
		TaxRate:   decimal.NewFromInt(21),
		TaxAmount: decimal.NewFromFloat(34.65),
		Total:     decimal.NewFromFloat(199.65),
	}
}

func TestBuild_DocumentoUBLValido(t *testing.T) {
	out, err := NewXMLBuilder().Build(sampleDocument(),
		&entity.CompanyDetails{Name: "Taller Textil SL", VATNumber: "B12345678"},
		&entity.Client{Name: "AUSTRAL", VATNumber: "A87654321"},
	)
	require.NoError(t, err)

	tree := etree.NewDocument()
	require.NoError(t, tree.ReadFromBytes(out), "el XML generado debe ser parseable")

	root := tree.Root()
	require.NotNil(t, root)
	assert.Equal(t, "Invoice", root.Tag)
	assert.Equal(t, "F-0001", root.FindElement("cbc:ID").Text())
	assert.Equal(t, "380", root.FindElement("cbc:InvoiceTypeCode").Text())
	assert.Equal(t, "199.65", root.FindElement("cac:LegalMonetaryTotal/cbc:PayableAmount").Text())
	assert.Equal(t, "34.65", root.FindElement("cac:TaxTotal/cbc:TaxAmount").Text())
	assert.Equal(t, "Camisa", root.FindElement("cac:InvoiceLine/cac:Item/cbc:Description").Text())
	assert.Equal(t, "Taller Textil SL",
		root.FindElement("cac:AccountingSupplierParty/cac:Party/cac:PartyName/cbc:Name").Text())
}

func TestBuild_PrefacturaUsaTipoProforma(t *testing.T) {
	doc := sampleDocument()
	doc.DocumentType = entity.DocumentTypePrefactura
	doc.DocumentNumber = "PF-0001"

	out, err := NewXMLBuilder().Build(doc, nil, nil)
	require.NoError(t, err)

	tree := etree.NewDocument()
	require.NoError(t, tree.ReadFromBytes(out))
	assert.Equal(t, "325", tree.Root().FindElement("cbc:InvoiceTypeCode").Text())
}

func TestBuild_RecargoComoCargoDeDocumento(t *testing.T) {
	out, err := NewXMLBuilder().Build(sampleDocument(), nil, nil)
	require.NoError(t, err)

	tree := etree.NewDocument()
	require.NoError(t, tree.ReadFromBytes(out))
	charge := tree.Root().FindElement("cac:AllowanceCharge")
	require.NotNil(t, charge, "el recargo debe emitirse como AllowanceCharge")
	assert.Equal(t, "true", charge.FindElement("cbc:ChargeIndicator").Text())
	assert.Equal(t, "15.00", charge.FindElement("cbc:Amount").Text())
}
