package quantity

import "github.com/hawlader/taller-api/internal/domain/entity"

// DeriveStatus calcula el estado de una entrada a partir de sus cantidades
// agregadas. Solo actúa cuando el estado actual es Recibida o En proceso:
// Prefacturado y una Entregada fijada a mano nunca se degradan.
func DeriveStatus(current string, recibida, delivered int) string {
	if current != entity.StatusRecibida && current != entity.StatusEnProceso {
		return current
	}
	switch {
	case delivered == 0:
		return entity.StatusRecibida
	case delivered < recibida:
		return entity.StatusEnProceso
	default:
		return entity.StatusEntregada
	}
}
