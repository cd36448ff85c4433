// Package einvoice genera la representación XML (UBL 2.1) de una factura
// para intercambio electrónico. Sin firma: el documento sale listo para que
// un firmador externo lo procese.
package einvoice

import (
	"fmt"
	"strconv"

	"github.com/beevik/etree"

	"github.com/hawlader/taller-api/internal/domain/entity"
)

// Namespaces UBL 2.1.
const (
	nsInvoice = "urn:oasis:names:specification:ubl:schema:xsd:Invoice-2"
	nsCac     = "urn:oasis:names:specification:ubl:schema:xsd:CommonAggregateComponents-2"
	nsCbc     = "urn:oasis:names:specification:ubl:schema:xsd:CommonBasicComponents-2"

	currencyCode = "EUR"
	dateLayout   = "2006-01-02"
)

// XMLBuilder construye el XML UBL de un documento de facturación.
type XMLBuilder struct{}

// NewXMLBuilder crea el servicio.
func NewXMLBuilder() *XMLBuilder {
	return &XMLBuilder{}
}

// Build genera el []byte del documento Invoice según UBL 2.1.
func (b *XMLBuilder) Build(doc *entity.Document, company *entity.CompanyDetails, client *entity.Client) ([]byte, error) {
	if doc == nil {
		return nil, fmt.Errorf("einvoice: documento nil")
	}

	tree := etree.NewDocument()
	tree.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := tree.CreateElement("Invoice")
	root.CreateAttr("xmlns", nsInvoice)
	root.CreateAttr("xmlns:cac", nsCac)
	root.CreateAttr("xmlns:cbc", nsCbc)

	cbc(root, "UBLVersionID", "2.1")
	cbc(root, "ID", doc.DocumentNumber)
	cbc(root, "IssueDate", doc.Date.Format(dateLayout))
	invoiceTypeCode := "380" // factura comercial
	if doc.DocumentType == entity.DocumentTypePrefactura {
		invoiceTypeCode = "325" // proforma
	}
	cbc(root, "InvoiceTypeCode", invoiceTypeCode)
	cbc(root, "DocumentCurrencyCode", currencyCode)
	cbc(root, "LineCountNumeric", strconv.Itoa(len(doc.Items)))

	if doc.StartDate != nil && doc.EndDate != nil {
		period := cac(root, "InvoicePeriod")
		cbc(period, "StartDate", doc.StartDate.Format(dateLayout))
		cbc(period, "EndDate", doc.EndDate.Format(dateLayout))
	}

	writeParty(root, "AccountingSupplierParty", partyFromCompany(company))
	writeParty(root, "AccountingCustomerParty", partyFromClient(client))

	// Recargo como cargo a nivel de documento.
	if !doc.Surcharge.IsZero() {
		charge := cac(root, "AllowanceCharge")
		cbc(charge, "ChargeIndicator", "true")
		cbc(charge, "AllowanceChargeReason", "Recargo por cantidad mínima")
		amount(charge, "Amount", doc.Surcharge.StringFixed(2))
	}

	taxTotal := cac(root, "TaxTotal")
	amount(taxTotal, "TaxAmount", doc.TaxAmount.StringFixed(2))
	subTotal := cac(taxTotal, "TaxSubtotal")
	amount(subTotal, "TaxableAmount", doc.Subtotal.Add(doc.Surcharge).StringFixed(2))
	amount(subTotal, "TaxAmount", doc.TaxAmount.StringFixed(2))
	category := cac(subTotal, "TaxCategory")
	cbc(category, "Percent", doc.TaxRate.StringFixed(2))
	scheme := cac(category, "TaxScheme")
	cbc(scheme, "ID", "IVA")

	monetary := cac(root, "LegalMonetaryTotal")
	amount(monetary, "LineExtensionAmount", doc.Subtotal.StringFixed(2))
	amount(monetary, "TaxExclusiveAmount", doc.Subtotal.Add(doc.Surcharge).StringFixed(2))
	amount(monetary, "TaxInclusiveAmount", doc.Total.StringFixed(2))
	amount(monetary, "ChargeTotalAmount", doc.Surcharge.StringFixed(2))
	amount(monetary, "PayableAmount", doc.Total.StringFixed(2))

	for i, item := range doc.Items {
		line := cac(root, "InvoiceLine")
		cbc(line, "ID", strconv.Itoa(i+1))
		qty := cbc(line, "InvoicedQuantity", strconv.Itoa(item.EntregadaQuantity))
		qty.CreateAttr("unitCode", "EA")
		amount(line, "LineExtensionAmount", item.Total.StringFixed(2))

		lineItem := cac(line, "Item")
		cbc(lineItem, "Description", item.Description)
		if item.ProductCode != "" {
			ident := cac(lineItem, "SellersItemIdentification")
			cbc(ident, "ID", item.ProductCode)
		}

		price := cac(line, "Price")
		amount(price, "PriceAmount", item.UnitPrice.StringFixed(2))
	}

	tree.Indent(2)
	return tree.WriteToBytes()
}

type party struct {
	name    string
	vat     string
	address string
	email   string
	phone   string
}

func partyFromCompany(c *entity.CompanyDetails) party {
	if c == nil {
		return party{}
	}
	return party{name: c.Name, vat: c.VATNumber, address: c.Address, email: c.Email, phone: c.Phone}
}

func partyFromClient(c *entity.Client) party {
	if c == nil {
		return party{}
	}
	return party{name: c.Name, vat: c.VATNumber, address: c.Address, email: c.Email, phone: c.Phone}
}

func writeParty(parent *etree.Element, tag string, p party) {
	wrapper := cac(parent, tag)
	el := cac(wrapper, "Party")
	if p.vat != "" {
		ident := cac(el, "PartyIdentification")
		cbc(ident, "ID", p.vat)
	}
	name := cac(el, "PartyName")
	cbc(name, "Name", p.name)
	if p.address != "" {
		addr := cac(el, "PostalAddress")
		cbc(addr, "StreetName", p.address)
	}
	if p.email != "" || p.phone != "" {
		contact := cac(el, "Contact")
		if p.phone != "" {
			cbc(contact, "Telephone", p.phone)
		}
		if p.email != "" {
			cbc(contact, "ElectronicMail", p.email)
		}
	}
}

func cbc(parent *etree.Element, tag, value string) *etree.Element {
	el := parent.CreateElement("cbc:" + tag)
	el.SetText(value)
	return el
}

func cac(parent *etree.Element, tag string) *etree.Element {
	return parent.CreateElement("cac:" + tag)
}

func amount(parent *etree.Element, tag, value string) *etree.Element {
	el := cbc(parent, tag, value)
	el.CreateAttr("currencyID", currencyCode)
	return el
}
