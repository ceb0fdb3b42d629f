package inventory

import (
	"strings"
	"time"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// EntryAttrs atributos no cuantitativos de un movimiento.
// nil = no enviado (sin cambios); puntero a "" = borrar el valor.
// Los campos que no corresponden al tipo se ignoran.
type EntryAttrs struct {
	Supplier   *string    // IN
	Comment    *string    // IN
	ReceivedBy *string    // IN, solo al crear (identidad del llamante)
	IssuedBy   *string    // OUT, obligatorio y no vacío
	Purpose    *string    // OUT
	OccurredAt *time.Time // ambos; por defecto la hora de creación
}

// CreateEntryInput entrada de CreateEntry.
type CreateEntryInput struct {
	Kind      entity.MovementKind
	ProductID int64
	Quantity  int64
	Attrs     EntryAttrs
}

// UpdateEntryInput entrada de UpdateEntry. Quantity nil = sin cambio de cantidad.
type UpdateEntryInput struct {
	Kind     entity.MovementKind
	EntryID  int64
	Quantity *int64
	Attrs    EntryAttrs
}

// hasUpdates indica si hay al menos un campo aplicable al tipo.
func (in UpdateEntryInput) hasUpdates() bool {
	if in.Quantity != nil || in.Attrs.OccurredAt != nil {
		return true
	}
	if in.Kind == entity.KindIn {
		return in.Attrs.Supplier != nil || in.Attrs.Comment != nil
	}
	return in.Attrs.IssuedBy != nil || in.Attrs.Purpose != nil
}

// validIssuedBy exige un issued_by no vacío cuando se envía (o siempre, si required).
func validIssuedBy(v *string, required bool) error {
	if v == nil {
		if required {
			return domain.ErrInvalidInput
		}
		return nil
	}
	if strings.TrimSpace(*v) == "" {
		return domain.ErrInvalidInput
	}
	return nil
}

func valueOf(p *string) string {
	if p == nil {
		return ""
	}
	return strings.TrimSpace(*p)
}
