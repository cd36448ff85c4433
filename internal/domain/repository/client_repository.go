package repository

import "github.com/hawlader/taller-api/internal/domain/entity"

// ClientRepository define el puerto de persistencia para clientes.
type ClientRepository interface {
	Create(client *entity.Client) error
	Update(client *entity.Client) error
	Delete(id string) error
	DeleteMany(ids []string) error
	GetByID(id string) (*entity.Client, error)
	GetByName(name string) (*entity.Client, error)
	List() ([]*entity.Client, error)
}
