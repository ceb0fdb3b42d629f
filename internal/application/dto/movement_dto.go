package dto

import "time"

// CreateStockInRequest entrada de mercancía. received_by lo toma el servidor del usuario autenticado.
type CreateStockInRequest struct {
	ProductID  int64      `json:"product_id"`
	Quantity   *Quantity  `json:"quantity" swaggertype:"integer"`
	Supplier   *string    `json:"supplier"`
	Comment    *string    `json:"comment"`
	OccurredAt *time.Time `json:"occurred_at"`
}

// UpdateStockInRequest actualización parcial de una entrada. nil = sin cambio; "" = borrar.
type UpdateStockInRequest struct {
	Quantity   *Quantity  `json:"quantity" swaggertype:"integer"`
	Supplier   *string    `json:"supplier"`
	Comment    *string    `json:"comment"`
	OccurredAt *time.Time `json:"occurred_at"`
}

// CreateStockOutRequest salida de mercancía. issued_by por defecto es el usuario autenticado.
type CreateStockOutRequest struct {
	ProductID  int64      `json:"product_id"`
	Quantity   *Quantity  `json:"quantity" swaggertype:"integer"`
	IssuedBy   *string    `json:"issued_by"`
	Purpose    *string    `json:"purpose"`
	OccurredAt *time.Time `json:"occurred_at"`
}

// UpdateStockOutRequest actualización parcial de una salida.
type UpdateStockOutRequest struct {
	Quantity   *Quantity  `json:"quantity" swaggertype:"integer"`
	IssuedBy   *string    `json:"issued_by"`
	Purpose    *string    `json:"purpose"`
	OccurredAt *time.Time `json:"occurred_at"`
}

// MovementListRequest filtros de listado (query string).
type MovementListRequest struct {
	PageRequest
	ProductID int64  `query:"product_id"`
	From      string `query:"from"` // YYYY-MM-DD o RFC3339
	To        string `query:"to"`
}

// StockInResponse salida de una entrada.
type StockInResponse struct {
	ID          int64     `json:"id"`
	ProductID   int64     `json:"product_id"`
	ProductName string    `json:"product_name,omitempty"`
	Quantity    int64     `json:"quantity"`
	Supplier    string    `json:"supplier,omitempty"`
	Comment     string    `json:"comment,omitempty"`
	ReceivedBy  string    `json:"received_by,omitempty"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// StockOutResponse salida de una salida de mercancía.
type StockOutResponse struct {
	ID          int64     `json:"id"`
	ProductID   int64     `json:"product_id"`
	ProductName string    `json:"product_name,omitempty"`
	Quantity    int64     `json:"quantity"`
	IssuedBy    string    `json:"issued_by"`
	Purpose     string    `json:"purpose,omitempty"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// StockInListResponse lista de entradas.
type StockInListResponse struct {
	Items []StockInResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// StockOutListResponse lista de salidas.
type StockOutListResponse struct {
	Items []StockOutResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
