package dto

import "time"

// CreateProductRequest entrada para crear un producto. El saldo inicial siempre es 0.
type CreateProductRequest struct {
	Name        string `json:"name"`
	Unit        string `json:"unit"`
	Description string `json:"description"`
}

// UpdateProductRequest actualización parcial (nunca la cantidad).
// nil = sin cambio; "" en unit/description = borrar.
type UpdateProductRequest struct {
	Name        *string `json:"name"`
	Unit        *string `json:"unit"`
	Description *string `json:"description"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Unit        string    `json:"unit,omitempty"`
	Description string    `json:"description,omitempty"`
	Quantity    int64     `json:"quantity"`
	CreatedAt   time.Time `json:"created_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
