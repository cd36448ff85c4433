package billing

import (
	"context"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hawlader/taller-api/internal/application/dto"
	"github.com/hawlader/taller-api/internal/domain"
	"github.com/hawlader/taller-api/internal/domain/entity"
	"github.com/hawlader/taller-api/internal/domain/repository"
)

// ──────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────

type fakeDocRepo struct {
	docs map[string]*entity.Document
}

func newFakeDocRepo() *fakeDocRepo {
	return &fakeDocRepo{docs: make(map[string]*entity.Document)}
}

func (r *fakeDocRepo) Create(d *entity.Document) error {
	r.docs[d.ID] = d
	return nil
}

func (r *fakeDocRepo) Update(d *entity.Document) error {
	r.docs[d.ID] = d
	return nil
}

func (r *fakeDocRepo) Delete(id string) error {
	delete(r.docs, id)
	return nil
}

func (r *fakeDocRepo) DeleteMany(ids []string) error {
	for _, id := range ids {
		delete(r.docs, id)
	}
	return nil
}

func (r *fakeDocRepo) GetByID(id string) (*entity.Document, error) {
	return r.docs[id], nil
}

func (r *fakeDocRepo) List() ([]*entity.Document, error) {
	out := make([]*entity.Document, 0, len(r.docs))
	for _, d := range r.docs {
		out = append(out, d)
	}
	return out, nil
}

func (r *fakeDocRepo) MaxNumberSuffix(documentType string) (int, error) {
	max := 0
	for _, d := range r.docs {
		if d.DocumentType != documentType {
			continue
		}
		parts := strings.Split(d.DocumentNumber, "-")
		if len(parts) != 2 {
			continue
		}
		if n, err := strconv.Atoi(parts[1]); err == nil && n > max {
			max = n
		}
	}
	return max, nil
}

func (r *fakeDocRepo) BilledEntryCodes() ([]int, error) {
	var out []int
	for _, d := range r.docs {
		for _, it := range d.Items {
			out = append(out, it.EntryCode)
		}
	}
	return out, nil
}

type fakeEntryRepo struct {
	entries map[int]*entity.Entry
}

func newFakeEntryRepo() *fakeEntryRepo {
	return &fakeEntryRepo{entries: make(map[int]*entity.Entry)}
}

func (r *fakeEntryRepo) Create(e *entity.Entry) error  { r.entries[e.Code] = e; return nil }
func (r *fakeEntryRepo) Update(e *entity.Entry) error  { r.entries[e.Code] = e; return nil }
func (r *fakeEntryRepo) Delete(code int) error         { delete(r.entries, code); return nil }
func (r *fakeEntryRepo) DeleteMany(codes []int) error {
	for _, c := range codes {
		delete(r.entries, c)
	}
	return nil
}
func (r *fakeEntryRepo) GetByCode(code int) (*entity.Entry, error) { return r.entries[code], nil }
func (r *fakeEntryRepo) List() ([]*entity.Entry, error) {
	out := make([]*entity.Entry, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, e)
	}
	return out, nil
}
func (r *fakeEntryRepo) ListByProduct(string) ([]*entity.Entry, error) { return nil, nil }
func (r *fakeEntryRepo) MaxCode() (int, error)                         { return 0, nil }
func (r *fakeEntryRepo) UpdateStatus(code int, status string) error {
	if e, ok := r.entries[code]; ok {
		e.Status = status
	}
	return nil
}
func (r *fakeEntryRepo) UpdateItemUnitPrice(string, decimal.Decimal) error { return nil }

type fakeDeliveryRepo struct{}

func (fakeDeliveryRepo) Create(*entity.Delivery) error                  { return nil }
func (fakeDeliveryRepo) ListByEntry(int) ([]entity.Delivery, error)     { return nil, nil }
func (fakeDeliveryRepo) List() ([]entity.Delivery, error)               { return nil, nil }
func (fakeDeliveryRepo) DeleteByEntries([]int) error                    { return nil }

type fakeClientRepo struct {
	clients map[string]*entity.Client
}

func (r *fakeClientRepo) Create(c *entity.Client) error { r.clients[c.ID] = c; return nil }
func (r *fakeClientRepo) Update(c *entity.Client) error { r.clients[c.ID] = c; return nil }
func (r *fakeClientRepo) Delete(id string) error        { delete(r.clients, id); return nil }
func (r *fakeClientRepo) DeleteMany(ids []string) error {
	for _, id := range ids {
		delete(r.clients, id)
	}
	return nil
}
func (r *fakeClientRepo) GetByID(id string) (*entity.Client, error) { return r.clients[id], nil }
func (r *fakeClientRepo) GetByName(name string) (*entity.Client, error) {
	for _, c := range r.clients {
		if c.Name == name {
			return c, nil
		}
	}
	return nil, nil
}
func (r *fakeClientRepo) List() ([]*entity.Client, error) { return nil, nil }

type fakeTxRunner struct {
	docRepo   *fakeDocRepo
	entryRepo *fakeEntryRepo
}

func (r *fakeTxRunner) RunBilling(ctx context.Context, fn func(
	docRepo repository.DocumentRepository,
	entryRepo repository.EntryRepository,
) error) error {
	return fn(r.docRepo, r.entryRepo)
}

type fixture struct {
	a         *Assembler
	docRepo   *fakeDocRepo
	entryRepo *fakeEntryRepo
}

func newFixture() *fixture {
	docRepo := newFakeDocRepo()
	entryRepo := newFakeEntryRepo()
	clientRepo := &fakeClientRepo{clients: make(map[string]*entity.Client)}
	tx := &fakeTxRunner{docRepo: docRepo, entryRepo: entryRepo}
	return &fixture{
		a:         NewAssembler(tx, docRepo, entryRepo, fakeDeliveryRepo{}, clientRepo),
		docRepo:   docRepo,
		entryRepo: entryRepo,
	}
}

func seedEntry(f *fixture, code int, client, status string, price int64, sizes map[string]int) {
	f.entryRepo.Create(&entity.Entry{
		Code:   code,
		Date:   time.Now(),
		Client: client,
		Status: status,
		Items: []entity.EntryItem{
			{ID: "it-" + string(rune('0'+code)), Description: "Camisa",
				SizeQuantities: sizes, UnitPrice: decimal.NewFromInt(price)},
		},
	})
}

// ──────────────────────────────────────────────
// Recargo AUSTRAL y totales
// ──────────────────────────────────────────────

func TestCreateDraft_RecargoAustral(t *testing.T) {
	f := newFixture()
	seedEntry(f, 1, "AUSTRAL", entity.StatusEntregada, 10, map[string]int{"M": 15})

	doc, err := f.a.CreateDraft(context.Background(), dto.CreateDraftRequest{
		EntryCodes:   []int{1},
		DocumentType: entity.DocumentTypePrefactura,
		TaxRate:      decimal.NewFromInt(21),
	})
	require.NoError(t, err)

	// 15 uds x 10 = 150; recargo 10% por linea de 20 o menos = 15;
	// impuesto (150+15) * 21% = 34.65; total 199.65.
	assert.True(t, doc.Subtotal.Equal(decimal.NewFromInt(150)), "subtotal: %s", doc.Subtotal)
	assert.True(t, doc.Surcharge.Equal(decimal.NewFromInt(15)), "recargo: %s", doc.Surcharge)
	assert.True(t, doc.TaxAmount.Equal(decimal.NewFromFloat(34.65)), "impuesto: %s", doc.TaxAmount)
	assert.True(t, doc.Total.Equal(decimal.NewFromFloat(199.65)), "total: %s", doc.Total)
	assert.Equal(t, entity.DraftDocumentID, doc.ID, "el borrador no se persiste")
}

func TestCreateDraft_SinRecargoParaOtrosClientes(t *testing.T) {
	f := newFixture()
	seedEntry(f, 1, "Tienda Sol", entity.StatusEntregada, 10, map[string]int{"M": 15})

	doc, err := f.a.CreateDraft(context.Background(), dto.CreateDraftRequest{
		EntryCodes:   []int{1},
		DocumentType: entity.DocumentTypeFactura,
		TaxRate:      decimal.NewFromInt(21),
	})
	require.NoError(t, err)
	assert.True(t, doc.Surcharge.IsZero(), "el recargo es exclusivo del cliente AUSTRAL")
}

func TestCreateDraft_RecargoSoloLineasPequenas(t *testing.T) {
	f := newFixture()
	f.entryRepo.Create(&entity.Entry{
		Code: 1, Date: time.Now(), Client: "AUSTRAL", Status: entity.StatusEntregada,
		Items: []entity.EntryItem{
			{ID: "a", Description: "Camisa", SizeQuantities: map[string]int{"M": 15},
				UnitPrice: decimal.NewFromInt(10)},
			{ID: "b", Description: "Pantalón", SizeQuantities: map[string]int{"M": 30},
				UnitPrice: decimal.NewFromInt(10)},
		},
	})

	doc, err := f.a.CreateDraft(context.Background(), dto.CreateDraftRequest{
		EntryCodes:   []int{1},
		DocumentType: entity.DocumentTypeFactura,
		TaxRate:      decimal.Zero,
	})
	require.NoError(t, err)
	// Solo la línea de 15 uds (150) paga recargo; la de 30 no.
	assert.True(t, doc.Surcharge.Equal(decimal.NewFromInt(15)), "recargo: %s", doc.Surcharge)
	assert.True(t, doc.Subtotal.Equal(decimal.NewFromInt(450)))
}

func TestRecalculate_ReproduceLaReglaEnEdicion(t *testing.T) {
	doc := &entity.Document{
		TaxRate: decimal.NewFromInt(21),
		Items: []entity.DocumentItem{
			{RecibidaQuantity: 15, EntregadaQuantity: 15, UnitPrice: decimal.NewFromInt(10)},
		},
	}

	Recalculate(doc, "AUSTRAL")

	assert.True(t, doc.Items[0].Total.Equal(decimal.NewFromInt(150)))
	assert.True(t, doc.Total.Equal(decimal.NewFromFloat(199.65)),
		"la edición debe reproducir exactamente las fórmulas del ensamblado")
}

// ──────────────────────────────────────────────
// Elegibilidad y doble facturación
// ──────────────────────────────────────────────

func TestListInvoiceable_FiltraEstadosYFacturadas(t *testing.T) {
	f := newFixture()
	seedEntry(f, 1, "Tienda Sol", entity.StatusRecibida, 10, map[string]int{"M": 5})
	seedEntry(f, 2, "Tienda Sol", entity.StatusEntregada, 10, map[string]int{"M": 5})
	seedEntry(f, 3, "Tienda Sol", entity.StatusPrefacturado, 10, map[string]int{"M": 5})
	f.docRepo.Create(&entity.Document{
		ID: "doc-1", DocumentType: entity.DocumentTypePrefactura,
		Items: []entity.DocumentItem{{EntryCode: 3}},
	})

	list, err := f.a.ListInvoiceable(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1, "ni Recibida ni la ya facturada deben aparecer")
	assert.Equal(t, 2, list[0].Code)
}

func TestCreateDraft_RechazaEntradaYaFacturada(t *testing.T) {
	f := newFixture()
	seedEntry(f, 1, "Tienda Sol", entity.StatusEntregada, 10, map[string]int{"M": 5})
	f.docRepo.Create(&entity.Document{
		ID: "doc-1", DocumentType: entity.DocumentTypeFactura,
		Items: []entity.DocumentItem{{EntryCode: 1}},
	})

	_, err := f.a.CreateDraft(context.Background(), dto.CreateDraftRequest{
		EntryCodes:   []int{1},
		DocumentType: entity.DocumentTypeFactura,
		TaxRate:      decimal.NewFromInt(21),
	})
	assert.ErrorIs(t, err, domain.ErrAlreadyBilled)
}

func TestCreateDraft_SinEntradas(t *testing.T) {
	f := newFixture()
	_, err := f.a.CreateDraft(context.Background(), dto.CreateDraftRequest{
		DocumentType: entity.DocumentTypeFactura,
	})
	assert.ErrorIs(t, err, domain.ErrNoItems)
}

// ──────────────────────────────────────────────
// Guardado y numeración
// ──────────────────────────────────────────────

func draftFor(t *testing.T, f *fixture, docType string, codes ...int) dto.DocumentDTO {
	t.Helper()
	doc, err := f.a.CreateDraft(context.Background(), dto.CreateDraftRequest{
		EntryCodes:   codes,
		DocumentType: docType,
		TaxRate:      decimal.NewFromInt(21),
	})
	require.NoError(t, err)
	return *doc
}

func TestSaveDocument_NumeracionPorTipo(t *testing.T) {
	f := newFixture()
	seedEntry(f, 1, "Tienda Sol", entity.StatusEntregada, 10, map[string]int{"M": 5})
	seedEntry(f, 2, "Tienda Sol", entity.StatusEntregada, 10, map[string]int{"M": 5})
	seedEntry(f, 3, "Tienda Sol", entity.StatusEntregada, 10, map[string]int{"M": 5})

	first, err := f.a.SaveDocument(context.Background(), draftFor(t, f, entity.DocumentTypePrefactura, 1))
	require.NoError(t, err)
	assert.Equal(t, "PF-0001", first.DocumentNumber)

	second, err := f.a.SaveDocument(context.Background(), draftFor(t, f, entity.DocumentTypePrefactura, 2))
	require.NoError(t, err)
	assert.Equal(t, "PF-0002", second.DocumentNumber)

	factura, err := f.a.SaveDocument(context.Background(), draftFor(t, f, entity.DocumentTypeFactura, 3))
	require.NoError(t, err)
	assert.Equal(t, "F-0001", factura.DocumentNumber, "las facturas numeran aparte")
}

func TestSaveDocument_PrefacturaSellaEntradas(t *testing.T) {
	f := newFixture()
	seedEntry(f, 1, "Tienda Sol", entity.StatusEntregada, 10, map[string]int{"M": 5})

	saved, err := f.a.SaveDocument(context.Background(), draftFor(t, f, entity.DocumentTypePrefactura, 1))
	require.NoError(t, err)
	assert.NotEqual(t, entity.DraftDocumentID, saved.ID, "al guardar se asigna UUID real")

	entry, _ := f.entryRepo.GetByCode(1)
	assert.Equal(t, entity.StatusPrefacturado, entry.Status,
		"guardar una Prefactura sella sus entradas origen")
}

func TestSaveDocument_FacturaNoSella(t *testing.T) {
	f := newFixture()
	seedEntry(f, 1, "Tienda Sol", entity.StatusEntregada, 10, map[string]int{"M": 5})

	_, err := f.a.SaveDocument(context.Background(), draftFor(t, f, entity.DocumentTypeFactura, 1))
	require.NoError(t, err)

	entry, _ := f.entryRepo.GetByCode(1)
	assert.Equal(t, entity.StatusEntregada, entry.Status)
}
