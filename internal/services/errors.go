package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// Common service errors
var (
	ErrNotFound           = errors.New("registro no encontrado")
	ErrNotActivated       = errors.New("la cuota aún no está activa: no tiene fecha de inicio")
	ErrValidation         = errors.New("datos inválidos")
	ErrInvalidState       = errors.New("transición de estado inválida")
	ErrDuplicate          = errors.New("registro duplicado")
	ErrTransactionFailure = errors.New("error al guardar los cambios")
)

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// lookupError maps a repository read error to ErrNotFound or ErrTransactionFailure
func lookupError(entity string, id uint, err error) error {
	if isNotFound(err) {
		return fmt.Errorf("%s %d: %w", entity, id, ErrNotFound)
	}
	return storageError("buscar "+entity, err)
}

func storageError(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrTransactionFailure, err)
}
