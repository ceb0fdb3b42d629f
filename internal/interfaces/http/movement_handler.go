package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/usecase"
)

// MovementHandler entradas (stock-in) y salidas (stock-out) de mercancía (protegido).
type MovementHandler struct {
	uc *usecase.MovementUseCase
}

// NewMovementHandler construye el handler.
func NewMovementHandler(uc *usecase.MovementUseCase) *MovementHandler {
	return &MovementHandler{uc: uc}
}

func parseListQuery(c *fiber.Ctx) (dto.MovementListRequest, bool) {
	var req dto.MovementListRequest
	if err := c.QueryParser(&req); err != nil {
		return req, false
	}
	return req, true
}

// ── Entradas ──────────────────────────────────────────────────────────────────

// CreateStockIn godoc
// @Summary      Registrar entrada
// @Description  Suma la cantidad al saldo del producto. received_by es el usuario autenticado.
// @Tags         stock-in
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateStockInRequest  true  "product_id, quantity, supplier, comment, occurred_at"
// @Success      201   {object}  dto.IDResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/stock-in [post]
func (h *MovementHandler) CreateStockIn(c *fiber.Ctx) error {
	var in dto.CreateStockInRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	id, err := h.uc.CreateStockIn(c.Context(), GetUsername(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.IDResponse{ID: id})
}

// ListStockIn godoc
// @Summary      Listar entradas
// @Description  Más recientes primero.
// @Tags         stock-in
// @Security     Bearer
// @Produce      json
// @Param        product_id  query  int     false  "Filtrar por producto"
// @Param        from        query  string  false  "Desde (YYYY-MM-DD o RFC3339)"
// @Param        to          query  string  false  "Hasta, inclusive (YYYY-MM-DD o RFC3339)"
// @Param        limit       query  int     false  "Límite"  default(50)
// @Param        offset      query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.StockInListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/stock-in [get]
func (h *MovementHandler) ListStockIn(c *fiber.Ctx) error {
	req, ok := parseListQuery(c)
	if !ok {
		return badQuery(c)
	}
	out, err := h.uc.ListStockIn(c.Context(), req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetStockIn godoc
// @Summary      Obtener entrada
// @Tags         stock-in
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID de la entrada"
// @Success      200  {object}  dto.StockInResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock-in/{id} [get]
func (h *MovementHandler) GetStockIn(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return badID(c)
	}
	out, err := h.uc.GetStockIn(c.Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// UpdateStockIn godoc
// @Summary      Actualizar entrada
// @Description  Parcial. Si cambia la cantidad el saldo se ajusta por la diferencia; se rechaza si quedaría negativo.
// @Tags         stock-in
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID de la entrada"
// @Param        body  body  dto.UpdateStockInRequest  true  "Campos a actualizar"
// @Success      204
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/stock-in/{id} [put]
func (h *MovementHandler) UpdateStockIn(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return badID(c)
	}
	var in dto.UpdateStockInRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := h.uc.UpdateStockIn(c.Context(), id, in); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// DeleteStockIn godoc
// @Summary      Eliminar entrada
// @Description  Resta la cantidad del saldo; se rechaza si quedaría negativo.
// @Tags         stock-in
// @Security     Bearer
// @Param        id   path  int  true  "ID de la entrada"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/stock-in/{id} [delete]
func (h *MovementHandler) DeleteStockIn(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return badID(c)
	}
	if err := h.uc.DeleteStockIn(c.Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ── Salidas ───────────────────────────────────────────────────────────────────

// CreateStockOut godoc
// @Summary      Registrar salida
// @Description  Resta la cantidad del saldo; 409 si no hay stock suficiente. issued_by por defecto es el usuario autenticado.
// @Tags         stock-out
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateStockOutRequest  true  "product_id, quantity, issued_by, purpose, occurred_at"
// @Success      201   {object}  dto.IDResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stock-out [post]
func (h *MovementHandler) CreateStockOut(c *fiber.Ctx) error {
	var in dto.CreateStockOutRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	id, err := h.uc.CreateStockOut(c.Context(), GetUsername(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.IDResponse{ID: id})
}

// ListStockOut godoc
// @Summary      Listar salidas
// @Tags         stock-out
// @Security     Bearer
// @Produce      json
// @Param        product_id  query  int     false  "Filtrar por producto"
// @Param        from        query  string  false  "Desde (YYYY-MM-DD o RFC3339)"
// @Param        to          query  string  false  "Hasta, inclusive"
// @Param        limit       query  int     false  "Límite"  default(50)
// @Param        offset      query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.StockOutListResponse
// @Router       /api/stock-out [get]
func (h *MovementHandler) ListStockOut(c *fiber.Ctx) error {
	req, ok := parseListQuery(c)
	if !ok {
		return badQuery(c)
	}
	out, err := h.uc.ListStockOut(c.Context(), req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetStockOut godoc
// @Summary      Obtener salida
// @Tags         stock-out
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID de la salida"
// @Success      200  {object}  dto.StockOutResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock-out/{id} [get]
func (h *MovementHandler) GetStockOut(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return badID(c)
	}
	out, err := h.uc.GetStockOut(c.Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// UpdateStockOut godoc
// @Summary      Actualizar salida
// @Tags         stock-out
// @Security     Bearer
// @Accept       json
// @Param        id    path  int  true  "ID de la salida"
// @Param        body  body  dto.UpdateStockOutRequest  true  "Campos a actualizar"
// @Success      204
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/stock-out/{id} [put]
func (h *MovementHandler) UpdateStockOut(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return badID(c)
	}
	var in dto.UpdateStockOutRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := h.uc.UpdateStockOut(c.Context(), id, in); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// DeleteStockOut godoc
// @Summary      Eliminar salida
// @Description  Devuelve la cantidad al saldo.
// @Tags         stock-out
// @Security     Bearer
// @Param        id   path  int  true  "ID de la salida"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock-out/{id} [delete]
func (h *MovementHandler) DeleteStockOut(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return badID(c)
	}
	if err := h.uc.DeleteStockOut(c.Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
