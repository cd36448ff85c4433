package analytics

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hawlader/taller-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeEntryRepo struct {
	entries []*entity.Entry
}

func (r *fakeEntryRepo) Create(*entity.Entry) error                          { return nil }
func (r *fakeEntryRepo) Update(*entity.Entry) error                          { return nil }
func (r *fakeEntryRepo) Delete(int) error                                    { return nil }
func (r *fakeEntryRepo) DeleteMany([]int) error                              { return nil }
func (r *fakeEntryRepo) GetByCode(int) (*entity.Entry, error)                { return nil, nil }
func (r *fakeEntryRepo) List() ([]*entity.Entry, error)                      { return r.entries, nil }
func (r *fakeEntryRepo) ListByProduct(string) ([]*entity.Entry, error)       { return nil, nil }
func (r *fakeEntryRepo) MaxCode() (int, error)                               { return 0, nil }
func (r *fakeEntryRepo) UpdateStatus(int, string) error                      { return nil }
func (r *fakeEntryRepo) UpdateItemUnitPrice(string, decimal.Decimal) error   { return nil }

type fakeDeliveryRepo struct {
	deliveries []entity.Delivery
}

func (r *fakeDeliveryRepo) Create(*entity.Delivery) error              { return nil }
func (r *fakeDeliveryRepo) ListByEntry(int) ([]entity.Delivery, error) { return nil, nil }
func (r *fakeDeliveryRepo) List() ([]entity.Delivery, error)           { return r.deliveries, nil }
func (r *fakeDeliveryRepo) DeleteByEntries([]int) error                { return nil }

func day(d int) time.Time {
	return time.Date(2024, 3, d, 0, 0, 0, 0, time.UTC)
}

func entryFixture(code int, client, status string, date time.Time, sizes map[string]int, price int64) *entity.Entry {
	return &entity.Entry{
		Code:   code,
		Date:   date,
		Client: client,
		Status: status,
		Items: []entity.EntryItem{
			{ID: "item-1", SizeQuantities: sizes, UnitPrice: decimal.NewFromInt(price)},
		},
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests GetSummary
// ──────────────────────────────────────────────────────────────────────────────

func TestGetSummary_TotalesYFalta(t *testing.T) {
	entries := &fakeEntryRepo{entries: []*entity.Entry{
		entryFixture(1, "AUSTRAL", entity.StatusEnProceso, day(10), map[string]int{"M": 60, "L": 40}, 10),
		entryFixture(2, "Norte", entity.StatusRecibida, day(11), map[string]int{"S": 20}, 5),
	}}
	deliveries := &fakeDeliveryRepo{deliveries: []entity.Delivery{
		{DeliveryID: "d1", Code: 1, DeliveryDate: day(12), Items: []entity.DeliveryItem{
			{EntryItemID: "item-1", DeliveryQuantities: map[string]int{"M": 30}},
		}},
	}}

	out, err := NewDashboardUseCase(entries, deliveries).GetSummary(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 120, out.TotalReceived)
	assert.Equal(t, 30, out.TotalDelivered)
	assert.Equal(t, 90, out.TotalFalta)
}

func TestGetSummary_IngresosSoloEntregadaYPrefacturado(t *testing.T) {
	entries := &fakeEntryRepo{entries: []*entity.Entry{
		entryFixture(1, "AUSTRAL", entity.StatusEntregada, day(10), map[string]int{"M": 10}, 10),   // 100
		entryFixture(2, "AUSTRAL", entity.StatusPrefacturado, day(10), map[string]int{"M": 5}, 8), // 40
		entryFixture(3, "Norte", entity.StatusEnProceso, day(10), map[string]int{"M": 100}, 50),   // no cuenta
	}}

	out, err := NewDashboardUseCase(entries, &fakeDeliveryRepo{}).GetSummary(context.Background())
	require.NoError(t, err)

	assert.True(t, decimal.NewFromInt(140).Equal(out.Revenue),
		"solo las entradas Entregada y Prefacturado generan ingresos, obtenido %s", out.Revenue)
}

func TestGetSummary_AcumuladoPorClienteOrdenado(t *testing.T) {
	entries := &fakeEntryRepo{entries: []*entity.Entry{
		entryFixture(1, "AUSTRAL", entity.StatusEnProceso, day(10), map[string]int{"M": 100}, 10),
		entryFixture(2, "Norte", entity.StatusEnProceso, day(10), map[string]int{"M": 100}, 10),
	}}
	deliveries := &fakeDeliveryRepo{deliveries: []entity.Delivery{
		{DeliveryID: "d1", Code: 1, DeliveryDate: day(12), Items: []entity.DeliveryItem{
			{EntryItemID: "item-1", DeliveryQuantities: map[string]int{"M": 10}},
		}},
		{DeliveryID: "d2", Code: 2, DeliveryDate: day(12), Items: []entity.DeliveryItem{
			{EntryItemID: "item-1", DeliveryQuantities: map[string]int{"M": 40}},
		}},
	}}

	out, err := NewDashboardUseCase(entries, deliveries).GetSummary(context.Background())
	require.NoError(t, err)

	require.Len(t, out.ClientTotals, 2)
	assert.Equal(t, "Norte", out.ClientTotals[0].Client, "mayor entregado primero")
	assert.Equal(t, 40, out.ClientTotals[0].Delivered)
	assert.Equal(t, "AUSTRAL", out.ClientTotals[1].Client)
}

func TestGetSummary_TendenciaDiariaOrdenadaPorFecha(t *testing.T) {
	entries := &fakeEntryRepo{entries: []*entity.Entry{
		entryFixture(1, "AUSTRAL", entity.StatusEnProceso, day(11), map[string]int{"M": 20}, 10),
		entryFixture(2, "AUSTRAL", entity.StatusEnProceso, day(10), map[string]int{"M": 5}, 10),
	}}
	deliveries := &fakeDeliveryRepo{deliveries: []entity.Delivery{
		{DeliveryID: "d1", Code: 1, DeliveryDate: day(11), Items: []entity.DeliveryItem{
			{EntryItemID: "item-1", DeliveryQuantities: map[string]int{"M": 8}},
		}},
	}}

	out, err := NewDashboardUseCase(entries, deliveries).GetSummary(context.Background())
	require.NoError(t, err)

	require.Len(t, out.DailyTrend, 2)
	assert.Equal(t, "2024-03-10", out.DailyTrend[0].Date)
	assert.Equal(t, 5, out.DailyTrend[0].Received)
	assert.Equal(t, "2024-03-11", out.DailyTrend[1].Date)
	assert.Equal(t, 20, out.DailyTrend[1].Received)
	assert.Equal(t, 8, out.DailyTrend[1].Delivered)
}

func TestGetSummary_SinDatos(t *testing.T) {
	out, err := NewDashboardUseCase(&fakeEntryRepo{}, &fakeDeliveryRepo{}).GetSummary(context.Background())
	require.NoError(t, err)

	assert.Zero(t, out.TotalReceived)
	assert.Zero(t, out.TotalDelivered)
	assert.True(t, out.Revenue.IsZero())
	assert.Empty(t, out.ClientTotals)
	assert.Empty(t, out.DailyTrend)
}
