package dto

import "github.com/shopspring/decimal"

// CreateProductRequest body para POST /api/products.
type CreateProductRequest struct {
	Code        string          `json:"code,omitempty"` // vacío = generar
	ModelName   string          `json:"model_name"`
	Reference   string          `json:"reference,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category,omitempty"`
	Description string          `json:"description,omitempty"`
	ClientID    string          `json:"client_id,omitempty"` // vacío = general
}

// UpdateProductRequest body para PUT /api/products/:code.
type UpdateProductRequest struct {
	ModelName   *string          `json:"model_name,omitempty"`
	Reference   *string          `json:"reference,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	Category    *string          `json:"category,omitempty"`
	Description *string          `json:"description,omitempty"`
	ClientID    *string          `json:"client_id,omitempty"`
}

// ProductResponse producto del catálogo en respuestas.
type ProductResponse struct {
	Code        string          `json:"code"`
	ModelName   string          `json:"model_name"`
	Reference   string          `json:"reference,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category"`
	Description string          `json:"description,omitempty"`
	ClientID    string          `json:"client_id,omitempty"`
}

// DeleteManyCodesRequest borrado en lote por código string.
type DeleteManyCodesRequest struct {
	Codes []string `json:"codes"`
}

// CreateClientRequest body para POST /api/clients.
type CreateClientRequest struct {
	Name      string `json:"name"`
	Address   string `json:"address,omitempty"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
	VATNumber string `json:"vat_number,omitempty"`
}

// UpdateClientRequest body para PUT /api/clients/:id.
type UpdateClientRequest struct {
	Name      *string `json:"name,omitempty"`
	Address   *string `json:"address,omitempty"`
	Email     *string `json:"email,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	VATNumber *string `json:"vat_number,omitempty"`
}

// ClientResponse cliente en respuestas.
type ClientResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Address   string `json:"address,omitempty"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
	VATNumber string `json:"vat_number,omitempty"`
}

// DeleteManyIDsRequest borrado en lote por ID string.
type DeleteManyIDsRequest struct {
	IDs []string `json:"ids"`
}

// CompanyDetailsRequest body para PUT /api/company.
type CompanyDetailsRequest struct {
	Name      string `json:"name"`
	Address   string `json:"address,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Email     string `json:"email,omitempty"`
	VATNumber string `json:"vat_number,omitempty"`
}

// CompanyDetailsResponse datos de la empresa.
type CompanyDetailsResponse struct {
	Name      string `json:"name"`
	Address   string `json:"address,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Email     string `json:"email,omitempty"`
	VATNumber string `json:"vat_number,omitempty"`
}
