package quantity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hawlader/taller-api/internal/domain/entity"
	"github.com/hawlader/taller-api/internal/domain/quantity"
)

// Escenario de monotonía del ciclo de vida: 100 recibidas, entrega de 40
// pasa a En proceso, 60 más completa la entrega.
func TestDeriveStatus_CicloDeVida(t *testing.T) {
	s := quantity.DeriveStatus(entity.StatusRecibida, 100, 0)
	assert.Equal(t, entity.StatusRecibida, s)

	s = quantity.DeriveStatus(s, 100, 40)
	assert.Equal(t, entity.StatusEnProceso, s)

	s = quantity.DeriveStatus(s, 100, 100)
	assert.Equal(t, entity.StatusEntregada, s)
}

func TestDeriveStatus_SobreEntregaTambienCompleta(t *testing.T) {
	assert.Equal(t, entity.StatusEntregada, quantity.DeriveStatus(entity.StatusEnProceso, 100, 120))
}

// Prefacturado es pegajoso: ninguna entrega posterior lo toca.
func TestDeriveStatus_PrefacturadoNoSeDegrada(t *testing.T) {
	assert.Equal(t, entity.StatusPrefacturado, quantity.DeriveStatus(entity.StatusPrefacturado, 100, 40))
	assert.Equal(t, entity.StatusPrefacturado, quantity.DeriveStatus(entity.StatusPrefacturado, 100, 0))
}

// Una Entregada fijada a mano tampoco se degrada aunque falten cantidades.
func TestDeriveStatus_EntregadaManualNoSeDegrada(t *testing.T) {
	assert.Equal(t, entity.StatusEntregada, quantity.DeriveStatus(entity.StatusEntregada, 100, 10))
}

func TestDeriveStatus_VueltaACeroEntregado(t *testing.T) {
	// Inalcanzable en la práctica (las entregas no se borran sueltas),
	// pero la regla lo contempla.
	assert.Equal(t, entity.StatusRecibida, quantity.DeriveStatus(entity.StatusEnProceso, 100, 0))
}
