// Package catalog resuelve descripciones libres de producto contra el
// catálogo, con preferencia por la variante del cliente, y auto-crea
// productos para descripciones desconocidas (la entrada de datos no se
// bloquea por mantenimiento de catálogo).
package catalog

import (
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/hawlader/taller-api/internal/application/dto"
	"github.com/hawlader/taller-api/internal/domain"
	"github.com/hawlader/taller-api/internal/domain/entity"
)

// Resolution es el resultado de resolver una descripción.
// Ambiguous marca el caso de solo variantes de otros clientes: se devuelve
// la primera coincidencia con precio 0 para no cobrar una tarifa ajena;
// el caller puede registrar un aviso.
type Resolution struct {
	Product   *entity.Product
	Price     decimal.Decimal
	Ambiguous bool
}

// foldKey normaliza una descripción para comparar: minúsculas, sin
// diacríticos y sin espacios sobrantes ("Camisón" == "camison ").
func foldKey(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, strings.ToLower(strings.TrimSpace(s)))
	if err != nil {
		return strings.ToLower(strings.TrimSpace(s))
	}
	return folded
}

// Resolve busca la descripción en el catálogo. Preferencia: variante del
// cliente > producto general > primera coincidencia con precio 0 (ambigua).
// Sin coincidencias devuelve producto nil y precio 0: producto nuevo.
func Resolve(description string, client *entity.Client, catalog []*entity.Product) Resolution {
	key := foldKey(description)
	var matches []*entity.Product
	for _, p := range catalog {
		if foldKey(p.ModelName) == key {
			matches = append(matches, p)
		}
	}
	if len(matches) == 0 {
		return Resolution{Price: decimal.Zero}
	}
	if client != nil {
		for _, p := range matches {
			if p.ClientID == client.ID {
				return Resolution{Product: p, Price: p.Price}
			}
		}
	}
	for _, p := range matches {
		if p.ClientID == "" {
			return Resolution{Product: p, Price: p.Price}
		}
	}
	return Resolution{Product: matches[0], Price: decimal.Zero, Ambiguous: true}
}

// ProcessItems resuelve cada línea cruda contra el catálogo, fijando el
// precio snapshot, y sintetiza productos nuevos (precio 0, categoría
// Uncategorized) para descripciones desconocidas. Devuelve las líneas
// procesadas y los productos a insertar en el catálogo.
func ProcessItems(items []dto.EntryItemInput, client *entity.Client, catalog []*entity.Product) ([]entity.EntryItem, []*entity.Product, error) {
	tempCatalog := make([]*entity.Product, len(catalog))
	copy(tempCatalog, catalog)

	var newProducts []*entity.Product
	processed := make([]entity.EntryItem, 0, len(items))

	for _, in := range items {
		if strings.TrimSpace(in.Description) == "" {
			return nil, nil, domain.ErrEmptyDescription
		}
		res := Resolve(in.Description, client, tempCatalog)
		product := res.Product
		price := res.Price
		if product == nil {
			now := time.Now()
			product = &entity.Product{
				Code:        "P-" + uuid.New().String(),
				ModelName:   in.Description,
				Price:       decimal.Zero,
				Category:    entity.CategoryUncategorized,
				Description: in.Description,
				CreatedAt:   now,
				UpdatedAt:   now,
			}
			newProducts = append(newProducts, product)
			tempCatalog = append(tempCatalog, product)
			price = decimal.Zero
		}

		// El ID de línea viene del cliente HTTP solo en edición y debe ser
		// un UUID emitido por nosotros; cualquier otra cosa es entrada inválida.
		id := in.ID
		if id == "" {
			id = uuid.New().String()
		} else if _, err := uuid.Parse(id); err != nil {
			return nil, nil, domain.ErrInvalidInput
		}
		reference1 := in.Reference1
		if reference1 == "" {
			reference1 = product.Reference
		}
		sizeQuantities := in.SizeQuantities
		if sizeQuantities == nil {
			sizeQuantities = map[string]int{}
		}
		processed = append(processed, entity.EntryItem{
			ID:             id,
			ProductID:      product.Code,
			Description:    in.Description,
			Reference1:     reference1,
			Reference2:     in.Reference2,
			SizeQuantities: sizeQuantities,
			UnitPrice:      price,
		})
	}
	return processed, newProducts, nil
}
