package exporting

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hawlader/taller-api/internal/domain/entity"
)

type fakeEntryRepo struct {
	entries []*entity.Entry
}

func (r *fakeEntryRepo) Create(*entity.Entry) error                        { return nil }
func (r *fakeEntryRepo) Update(*entity.Entry) error                        { return nil }
func (r *fakeEntryRepo) Delete(int) error                                  { return nil }
func (r *fakeEntryRepo) DeleteMany([]int) error                            { return nil }
func (r *fakeEntryRepo) GetByCode(int) (*entity.Entry, error)              { return nil, nil }
func (r *fakeEntryRepo) List() ([]*entity.Entry, error)                    { return r.entries, nil }
func (r *fakeEntryRepo) ListByProduct(string) ([]*entity.Entry, error)     { return nil, nil }
func (r *fakeEntryRepo) MaxCode() (int, error)                             { return 0, nil }
func (r *fakeEntryRepo) UpdateStatus(int, string) error                    { return nil }
func (r *fakeEntryRepo) UpdateItemUnitPrice(string, decimal.Decimal) error { return nil }

type fakeDeliveryRepo struct {
	deliveries []entity.Delivery
}

func (r *fakeDeliveryRepo) Create(*entity.Delivery) error              { return nil }
func (r *fakeDeliveryRepo) ListByEntry(int) ([]entity.Delivery, error) { return nil, nil }
func (r *fakeDeliveryRepo) List() ([]entity.Delivery, error)           { return r.deliveries, nil }
func (r *fakeDeliveryRepo) DeleteByEntries([]int) error                { return nil }

type fakeDocRepo struct {
	docs []*entity.Document
}

func (r *fakeDocRepo) Create(*entity.Document) error              { return nil }
func (r *fakeDocRepo) Update(*entity.Document) error              { return nil }
func (r *fakeDocRepo) Delete(string) error                        { return nil }
func (r *fakeDocRepo) DeleteMany([]string) error                  { return nil }
func (r *fakeDocRepo) GetByID(string) (*entity.Document, error)   { return nil, nil }
func (r *fakeDocRepo) List() ([]*entity.Document, error)          { return r.docs, nil }
func (r *fakeDocRepo) MaxNumberSuffix(string) (int, error)        { return 0, nil }
func (r *fakeDocRepo) BilledEntryCodes() ([]int, error)           { return nil, nil }

func TestEntriesCSV_CabeceraYCantidades(t *testing.T) {
	entries := &fakeEntryRepo{entries: []*entity.Entry{
		{
			Code:   7,
			Date:   time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
			Client: "AUSTRAL",
			Status: entity.StatusEnProceso,
			Items: []entity.EntryItem{
				{ID: "item-1", SizeQuantities: map[string]int{"M": 10, "L": 5}},
			},
		},
	}}
	deliveries := &fakeDeliveryRepo{deliveries: []entity.Delivery{
		{DeliveryID: "d1", Code: 7, Items: []entity.DeliveryItem{
			{EntryItemID: "item-1", DeliveryQuantities: map[string]int{"M": 4}},
		}},
	}}

	exporter := NewExporter(nil, entries, deliveries, nil, nil, nil, nil)
	out, err := exporter.EntriesCSV(context.Background())
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "codigo,fecha,cliente,estado,recibida,entregada,falta", lines[0])
	assert.Equal(t, "7,2024-03-10,AUSTRAL,En proceso,15,4,11", lines[1])
}

func TestDocumentsCSV_ImportesConDosDecimales(t *testing.T) {
	docs := &fakeDocRepo{docs: []*entity.Document{
		{
			DocumentNumber: "PF-0001",
			DocumentType:   entity.DocumentTypePrefactura,
			Date:           time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
			Subtotal:       decimal.NewFromInt(150),
			Surcharge:      decimal.NewFromInt(15),
			TaxAmount:      decimal.NewFromFloat(34.65),
			Total:          decimal.NewFromFloat(199.65),
		},
	}}

	exporter := NewExporter(docs, nil, nil, nil, nil, nil, nil)
	out, err := exporter.DocumentsCSV(context.Background())
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "numero,tipo,fecha,subtotal,recargo,iva,total", lines[0])
	assert.Equal(t, "PF-0001,Prefactura,2024-03-15,150.00,15.00,34.65,199.65", lines[1])
}

func TestEntriesCSV_SinEntradas(t *testing.T) {
	exporter := NewExporter(nil, &fakeEntryRepo{}, &fakeDeliveryRepo{}, nil, nil, nil, nil)
	out, err := exporter.EntriesCSV(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "codigo,fecha,cliente,estado,recibida,entregada,falta",
		strings.TrimSpace(string(out)))
}
