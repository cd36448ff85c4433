package catalog

import (
	"time"

	"github.com/google/uuid"

	"github.com/hawlader/taller-api/internal/application/dto"
	"github.com/hawlader/taller-api/internal/domain"
	"github.com/hawlader/taller-api/internal/domain/entity"
	"github.com/hawlader/taller-api/internal/domain/repository"
)

// ProductUseCase CRUD del catálogo. Editar un producto repropaga su precio a
// las líneas de entrada que lo referencian (reprecio retroactivo): el
// snapshot de precio se reescribe también en entradas ya facturadas, igual
// que hacía el sistema original.
type ProductUseCase struct {
	productRepo repository.ProductRepository
	clientRepo  repository.ClientRepository
	entryRepo   repository.EntryRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(productRepo repository.ProductRepository, clientRepo repository.ClientRepository, entryRepo repository.EntryRepository) *ProductUseCase {
	return &ProductUseCase{productRepo: productRepo, clientRepo: clientRepo, entryRepo: entryRepo}
}

// Create añade un producto al catálogo.
func (uc *ProductUseCase) Create(in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.ModelName == "" {
		return nil, domain.ErrInvalidInput
	}
	code := in.Code
	if code == "" {
		code = "P-" + uuid.New().String()
	} else if existing, _ := uc.productRepo.GetByCode(code); existing != nil {
		return nil, domain.ErrDuplicate
	}
	category := in.Category
	if category == "" {
		category = entity.CategoryUncategorized
	}
	now := time.Now()
	product := &entity.Product{
		Code:        code,
		ModelName:   in.ModelName,
		Reference:   in.Reference,
		Price:       in.Price,
		Category:    category,
		Description: in.Description,
		ClientID:    in.ClientID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.productRepo.Create(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Update modifica un producto y repropaga el precio a las líneas de entrada
// que lo referencian, resolviendo con el cliente de cada entrada.
func (uc *ProductUseCase) Update(code string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.productRepo.GetByCode(code)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if in.ModelName != nil {
		product.ModelName = *in.ModelName
	}
	if in.Reference != nil {
		product.Reference = *in.Reference
	}
	if in.Price != nil {
		product.Price = *in.Price
	}
	if in.Category != nil {
		product.Category = *in.Category
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.ClientID != nil {
		product.ClientID = *in.ClientID
	}
	product.UpdatedAt = time.Now()
	if err := uc.productRepo.Update(product); err != nil {
		return nil, err
	}
	if err := uc.repriceEntries(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// repriceEntries reescribe el precio snapshot de toda línea cuyo ProductID
// sea el producto editado, resolviendo de nuevo contra el catálogo ya
// actualizado con el cliente propio de cada entrada.
func (uc *ProductUseCase) repriceEntries(product *entity.Product) error {
	entries, err := uc.entryRepo.ListByProduct(product.Code)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		return nil
	}
	catalog, err := uc.productRepo.List()
	if err != nil {
		return err
	}
	for _, entry := range entries {
		// Cliente desconocido: hueco referencial, se resuelve como general.
		client, _ := uc.clientRepo.GetByName(entry.Client)
		res := Resolve(product.ModelName, client, catalog)
		for _, item := range entry.Items {
			if item.ProductID != product.Code {
				continue
			}
			if err := uc.entryRepo.UpdateItemUnitPrice(item.ID, res.Price); err != nil {
				return err
			}
		}
	}
	return nil
}

// Delete elimina un producto del catálogo. Las líneas de entrada que lo
// referencian conservan su descripción y precio snapshot.
func (uc *ProductUseCase) Delete(code string) error {
	return uc.productRepo.Delete(code)
}

// DeleteMany elimina varios productos.
func (uc *ProductUseCase) DeleteMany(codes []string) error {
	if len(codes) == 0 {
		return domain.ErrInvalidInput
	}
	return uc.productRepo.DeleteMany(codes)
}

// GetByCode obtiene un producto.
func (uc *ProductUseCase) GetByCode(code string) (*dto.ProductResponse, error) {
	product, err := uc.productRepo.GetByCode(code)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return toProductResponse(product), nil
}

// List lista el catálogo completo.
func (uc *ProductUseCase) List() ([]dto.ProductResponse, error) {
	list, err := uc.productRepo.List()
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return items, nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		Code:        p.Code,
		ModelName:   p.ModelName,
		Reference:   p.Reference,
		Price:       p.Price,
		Category:    p.Category,
		Description: p.Description,
		ClientID:    p.ClientID,
	}
}
