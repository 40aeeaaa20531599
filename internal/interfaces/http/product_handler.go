package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/freshbreeze-api/internal/application/dto"
	"github.com/jhoicas/freshbreeze-api/internal/application/inventory"
	"github.com/jhoicas/freshbreeze-api/internal/application/usecase"
	"github.com/jhoicas/freshbreeze-api/internal/domain"
)

// ProductHandler catálogo público y administración de productos.
type ProductHandler struct {
	uc    *usecase.ProductUseCase
	stock *inventory.StockService
}

// NewProductHandler construye el handler.
func NewProductHandler(uc *usecase.ProductUseCase, stock *inventory.StockService) *ProductHandler {
	return &ProductHandler{uc: uc, stock: stock}
}

// tenantID empresa del catálogo público; sin empresa no hay catálogo.
func tenantID(c *fiber.Ctx) (string, error) {
	id := GetTenantID(c)
	if id == "" {
		return "", domain.ErrNoTenant
	}
	return id, nil
}

// List godoc
// @Summary      Catálogo de productos
// @Description  Productos activos de la empresa resuelta por subdominio.
// @Tags         products
// @Produce      json
// @Param        category_id  query  string  false  "Filtrar por categoría"
// @Param        q            query  string  false  "Buscar por nombre o SKU"
// @Param        limit        query  int     false  "Límite (default 20)"
// @Param        offset       query  int     false  "Desplazamiento"
// @Success      200  {object}  dto.ProductListResponse
// @Failure      404  {object}  dto.ErrorEnvelope
// @Router       /api/products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	companyID, err := tenantID(c)
	if err != nil {
		return err
	}
	var q dto.ProductQuery
	if err := c.QueryParser(&q); err != nil {
		return domain.Invalid("query", "parámetros inválidos")
	}
	out, err := h.uc.List(c.UserContext(), companyID, q, true)
	if err != nil {
		return err
	}
	return ok(c, fiber.StatusOK, out)
}

// GetByID godoc
// @Summary      Obtener producto por ID
// @Tags         products
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.ProductResponse
// @Failure      404  {object}  dto.ErrorEnvelope
// @Router       /api/products/{id} [get]
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	companyID, err := tenantID(c)
	if err != nil {
		return err
	}
	out, err := h.uc.GetByID(c.UserContext(), companyID, c.Params("id"), true)
	if err != nil {
		return err
	}
	return ok(c, fiber.StatusOK, out)
}

// Create godoc
// @Summary      Crear producto
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductRequest  true  "Datos del producto"
// @Success      201   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorEnvelope
// @Failure      409   {object}  dto.ErrorEnvelope
// @Router       /api/products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), GetCompanyID(c), in)
	if err != nil {
		return err
	}
	return ok(c, fiber.StatusCreated, out)
}

// Update godoc
// @Summary      Actualizar producto
// @Description  Actualización parcial. El stock no se modifica aquí (ver PATCH /stock).
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                    true  "ID del producto"
// @Param        body  body  dto.UpdateProductRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.ProductResponse
// @Router       /api/products/{id} [put]
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateProductRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Update(c.UserContext(), GetCompanyID(c), c.Params("id"), in)
	if err != nil {
		return err
	}
	return ok(c, fiber.StatusOK, out)
}

// Delete godoc
// @Summary      Eliminar producto
// @Tags         products
// @Security     Bearer
// @Param        id  path  string  true  "ID del producto"
// @Success      204
// @Router       /api/products/{id} [delete]
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), GetCompanyID(c), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// UploadImage godoc
// @Summary      Subir imagen de producto
// @Tags         products
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        id     path      string  true  "ID del producto"
// @Param        image  formData  file    true  "Imagen (jpeg, png o webp)"
// @Success      200    {object}  dto.ProductResponse
// @Failure      400    {object}  dto.ErrorEnvelope
// @Failure      502    {object}  dto.ErrorEnvelope
// @Router       /api/products/{id}/image [post]
func (h *ProductHandler) UploadImage(c *fiber.Ctx) error {
	fh, err := c.FormFile("image")
	if err != nil {
		return domain.Required("image")
	}
	f, err := fh.Open()
	if err != nil {
		return domain.Invalid("image", "no se pudo leer el archivo")
	}
	defer f.Close()

	out, err := h.uc.UploadImage(c.UserContext(), GetCompanyID(c), c.Params("id"), fh.Header.Get(fiber.HeaderContentType), fh.Size, f)
	if err != nil {
		return err
	}
	return ok(c, fiber.StatusOK, out)
}

// AdjustStock godoc
// @Summary      Ajustar stock
// @Description  Delta positivo (entrada) o negativo (salida). No permite stock negativo.
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "ID del producto"
// @Param        body  body  dto.AdjustStockRequest  true  "Ajuste"
// @Success      200   {object}  dto.ProductResponse
// @Failure      409   {object}  dto.ErrorEnvelope
// @Router       /api/products/{id}/stock [patch]
func (h *ProductHandler) AdjustStock(c *fiber.Ctx) error {
	var in dto.AdjustStockRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.stock.Adjust(c.UserContext(), GetCompanyID(c), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return err
	}
	return ok(c, fiber.StatusOK, out)
}
