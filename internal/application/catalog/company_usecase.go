package catalog

import (
	"time"

	"github.com/hawlader/taller-api/internal/application/dto"
	"github.com/hawlader/taller-api/internal/domain"
	"github.com/hawlader/taller-api/internal/domain/entity"
	"github.com/hawlader/taller-api/internal/domain/repository"
)

// CompanyUseCase lectura/escritura de los datos de la empresa.
type CompanyUseCase struct {
	companyRepo repository.CompanyRepository
}

// NewCompanyUseCase construye el caso de uso.
func NewCompanyUseCase(companyRepo repository.CompanyRepository) *CompanyUseCase {
	return &CompanyUseCase{companyRepo: companyRepo}
}

// Get devuelve los datos de la empresa.
func (uc *CompanyUseCase) Get() (*dto.CompanyDetailsResponse, error) {
	details, err := uc.companyRepo.Get()
	if err != nil {
		return nil, err
	}
	if details == nil {
		return nil, domain.ErrNotFound
	}
	return &dto.CompanyDetailsResponse{
		Name:      details.Name,
		Address:   details.Address,
		Phone:     details.Phone,
		Email:     details.Email,
		VATNumber: details.VATNumber,
	}, nil
}

// Save actualiza los datos de la empresa.
func (uc *CompanyUseCase) Save(in dto.CompanyDetailsRequest) error {
	if in.Name == "" {
		return domain.ErrInvalidInput
	}
	return uc.companyRepo.Save(&entity.CompanyDetails{
		Name:      in.Name,
		Address:   in.Address,
		Phone:     in.Phone,
		Email:     in.Email,
		VATNumber: in.VATNumber,
		UpdatedAt: time.Now(),
	})
}
