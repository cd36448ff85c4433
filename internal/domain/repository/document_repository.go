package repository

import "github.com/hawlader/taller-api/internal/domain/entity"

// DocumentRepository define el puerto de persistencia para documentos de
// facturación (cabecera + líneas snapshot).
type DocumentRepository interface {
	// Create persiste cabecera y líneas.
	Create(doc *entity.Document) error
	// Update reemplaza cabecera y líneas.
	Update(doc *entity.Document) error
	Delete(id string) error
	DeleteMany(ids []string) error
	GetByID(id string) (*entity.Document, error)
	List() ([]*entity.Document, error)
	// MaxNumberSuffix devuelve el sufijo numérico más alto de los números de
	// documento del tipo dado (0 si no hay ninguno).
	MaxNumberSuffix(documentType string) (int, error)
	// BilledEntryCodes devuelve los códigos de entrada que ya figuran en
	// alguna línea de cualquier documento guardado (anti doble facturación).
	BilledEntryCodes() ([]int, error)
}
