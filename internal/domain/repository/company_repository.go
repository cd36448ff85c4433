package repository

import "github.com/hawlader/taller-api/internal/domain/entity"

// CompanyRepository define el puerto para los datos de la empresa (fila única).
type CompanyRepository interface {
	Get() (*entity.CompanyDetails, error)
	Save(details *entity.CompanyDetails) error
}
