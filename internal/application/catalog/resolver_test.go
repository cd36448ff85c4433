package catalog

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hawlader/taller-api/internal/application/dto"
	"github.com/hawlader/taller-api/internal/domain"
	"github.com/hawlader/taller-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

func product(code, model, clientID string, price int64) *entity.Product {
	return &entity.Product{
		Code:      code,
		ModelName: model,
		ClientID:  clientID,
		Price:     decimal.NewFromInt(price),
		Category:  "Camisas",
	}
}

var testClient = &entity.Client{ID: "client-1", Name: "AUSTRAL"}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Resolve
// ──────────────────────────────────────────────────────────────────────────────

func TestResolve_VarianteDeClienteGanaSobreGeneral(t *testing.T) {
	cat := []*entity.Product{
		product("P-GEN", "Camisa", "", 10),
		product("P-AUS", "Camisa", "client-1", 8),
	}

	res := Resolve("Camisa", testClient, cat)

	require.NotNil(t, res.Product)
	assert.Equal(t, "P-AUS", res.Product.Code, "la variante del cliente debe ganar")
	assert.True(t, decimal.NewFromInt(8).Equal(res.Price))
	assert.False(t, res.Ambiguous)
}

func TestResolve_GeneralCuandoNoHayVarianteDelCliente(t *testing.T) {
	cat := []*entity.Product{
		product("P-GEN", "Camisa", "", 10),
		product("P-OTRO", "Camisa", "client-2", 7),
	}

	res := Resolve("Camisa", testClient, cat)

	require.NotNil(t, res.Product)
	assert.Equal(t, "P-GEN", res.Product.Code)
	assert.True(t, decimal.NewFromInt(10).Equal(res.Price))
}

func TestResolve_SoloVariantesAjenas_PrecioCeroYAmbigua(t *testing.T) {
	cat := []*entity.Product{
		product("P-OTRO", "Camisa", "client-2", 7),
	}

	res := Resolve("Camisa", testClient, cat)

	require.NotNil(t, res.Product, "debe devolver la primera coincidencia")
	assert.True(t, res.Price.IsZero(), "nunca se cobra la tarifa de otro cliente")
	assert.True(t, res.Ambiguous)
}

func TestResolve_NormalizaMayusculasYAcentos(t *testing.T) {
	cat := []*entity.Product{product("P-1", "Camisón", "", 12)}

	res := Resolve("  camison ", testClient, cat)

	require.NotNil(t, res.Product)
	assert.Equal(t, "P-1", res.Product.Code)
}

func TestResolve_SinCoincidencias(t *testing.T) {
	res := Resolve("Pantalón", testClient, nil)

	assert.Nil(t, res.Product)
	assert.True(t, res.Price.IsZero())
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests ProcessItems
// ──────────────────────────────────────────────────────────────────────────────

func TestProcessItems_AutoCreaProductoDesconocido(t *testing.T) {
	items := []dto.EntryItemInput{
		{Description: "Vestido nuevo", SizeQuantities: map[string]int{"M": 5}},
	}

	processed, created, err := ProcessItems(items, testClient, nil)
	require.NoError(t, err)

	require.Len(t, created, 1)
	assert.Equal(t, "Vestido nuevo", created[0].ModelName)
	assert.Equal(t, entity.CategoryUncategorized, created[0].Category)
	assert.True(t, created[0].Price.IsZero())
	assert.Contains(t, created[0].Code, "P-")

	require.Len(t, processed, 1)
	assert.Equal(t, created[0].Code, processed[0].ProductID)
	assert.True(t, processed[0].UnitPrice.IsZero())
}

func TestProcessItems_DescripcionRepetidaNoDuplicaProducto(t *testing.T) {
	items := []dto.EntryItemInput{
		{Description: "Vestido nuevo", SizeQuantities: map[string]int{"M": 5}},
		{Description: "vestido nuevo", SizeQuantities: map[string]int{"L": 3}},
	}

	processed, created, err := ProcessItems(items, testClient, nil)
	require.NoError(t, err)

	assert.Len(t, created, 1, "la segunda línea debe reutilizar el producto recién creado")
	require.Len(t, processed, 2)
	assert.Equal(t, processed[0].ProductID, processed[1].ProductID)
}

func TestProcessItems_DescripcionVaciaRechazada(t *testing.T) {
	items := []dto.EntryItemInput{{Description: "   "}}

	_, _, err := ProcessItems(items, testClient, nil)
	assert.ErrorIs(t, err, domain.ErrEmptyDescription)
}

func TestProcessItems_IDDeLineaNoUUIDRechazado(t *testing.T) {
	items := []dto.EntryItemInput{
		{ID: "'; DROP TABLE entry_items; --", Description: "Camisa", SizeQuantities: map[string]int{"M": 1}},
	}

	_, _, err := ProcessItems(items, testClient, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput,
		"un ID de línea que no es UUID debe rechazarse como entrada inválida")
}

func TestProcessItems_ConservaIDDeLineaEnEdicion(t *testing.T) {
	const existingID = "b9d1a7f2-3c44-4f6e-9a1b-2d5e8c7f0a63"
	items := []dto.EntryItemInput{
		{ID: existingID, Description: "Camisa", SizeQuantities: map[string]int{"M": 1}},
	}

	processed, _, err := ProcessItems(items, testClient, nil)
	require.NoError(t, err)
	require.Len(t, processed, 1)
	assert.Equal(t, existingID, processed[0].ID, "el ID estable de la línea se conserva al editar")
}

func TestProcessItems_FijaPrecioSnapshotDelCatalogo(t *testing.T) {
	cat := []*entity.Product{product("P-AUS", "Camisa", "client-1", 8)}
	items := []dto.EntryItemInput{
		{Description: "Camisa", SizeQuantities: map[string]int{"S": 2}},
	}

	processed, created, err := ProcessItems(items, testClient, cat)
	require.NoError(t, err)

	assert.Empty(t, created)
	require.Len(t, processed, 1)
	assert.True(t, decimal.NewFromInt(8).Equal(processed[0].UnitPrice))
	assert.NotEmpty(t, processed[0].ID, "cada línea nueva recibe un ID estable")
}
