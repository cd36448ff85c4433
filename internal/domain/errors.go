package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrUserNotFound      = errors.New("usuario no encontrado")
	ErrUsernameTaken     = errors.New("el nombre de usuario ya está registrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")
	ErrConflict          = errors.New("conflicto con el estado actual")
	ErrEmptyDescription  = errors.New("la descripción del artículo no puede estar vacía")
	ErrRemainingExceeded = errors.New("la cantidad entregada excede la cantidad pendiente")
	ErrNoClient          = errors.New("no se pudo resolver el cliente del documento")
	ErrNoItems           = errors.New("el documento no contiene líneas")
	ErrAlreadyBilled     = errors.New("la entrada ya figura en un documento guardado")
)
