package dto

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/jhoicas/almacen-api/internal/domain"
)

// Quantity cantidad tal como llegó en el JSON. La validación se difiere a Int64 para
// que un valor no entero produzca ErrInvalidQuantity y no un error de parseo genérico.
type Quantity struct {
	raw json.RawMessage
}

// NewQuantity construye una cantidad entera (tests y clientes Go).
func NewQuantity(n int64) *Quantity {
	return &Quantity{raw: json.RawMessage(strconv.FormatInt(n, 10))}
}

// UnmarshalJSON guarda el valor crudo; nunca falla.
func (q *Quantity) UnmarshalJSON(b []byte) error {
	q.raw = append(q.raw[:0], b...)
	return nil
}

// MarshalJSON devuelve el valor crudo.
func (q Quantity) MarshalJSON() ([]byte, error) {
	if len(q.raw) == 0 {
		return []byte("null"), nil
	}
	return q.raw, nil
}

// Int64 interpreta la cantidad como entero. Acepta números JSON enteros (también "5.0")
// y cadenas numéricas enteras; cualquier otra cosa es ErrInvalidQuantity.
func (q *Quantity) Int64() (int64, error) {
	if q == nil {
		return 0, domain.ErrInvalidQuantity
	}
	raw := bytes.TrimSpace(q.raw)
	if len(raw) > 0 && raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0, domain.ErrInvalidQuantity
		}
		raw = []byte(strings.TrimSpace(s))
	}
	if n, err := strconv.ParseInt(string(raw), 10, 64); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(string(raw), 64)
	if err != nil || f != float64(int64(f)) {
		return 0, domain.ErrInvalidQuantity
	}
	return int64(f), nil
}
