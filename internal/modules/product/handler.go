package product

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"prodcatalog/internal/pkg/response"
)

// Handler manages all HTTP interactions for the product catalog
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterPublicRoutes(v1 *gin.RouterGroup) {
	products := v1.Group("/products")
	{
		products.GET("", h.ListProducts)
		products.GET("/:id", h.GetProductByID)
		products.GET("/user/:userId", h.ListUserProducts)
	}
}

func (h *Handler) RegisterProtectedRoutes(protected *gin.RouterGroup) {
	products := protected.Group("/products")
	{
		products.GET("/my-products", h.ListMyProducts)
		products.POST("", h.CreateProduct)
		products.PUT("/:id", h.UpdateProduct)
		products.DELETE("/:id", h.DeleteProduct)
	}
}

// ListProducts lists the whole catalog.
// @Summary		List products
// @Description	Returns all products, optionally filtered by category (case-insensitive).
// @Tags		Products
// @Param		category	query	string	false	"Category filter"
// @Success		200	{object}	map[string]interface{} "Product list"
// @Failure		500	{object}	map[string]interface{} "Server error"
// @Router		/products [GET]
func (h *Handler) ListProducts(c *gin.Context) {
	products, err := h.service.ListAll(c.Request.Context(), c.Query("category"))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "LIST_FAILED", "Failed to list products")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"products": products})
}

// GetProductByID returns a single product.
// @Summary		Get product
// @Tags		Products
// @Param		id	path	int	true	"Product id"
// @Success		200	{object}	map[string]interface{} "Product"
// @Failure		404	{object}	map[string]interface{} "Product not found"
// @Router		/products/{id} [GET]
func (h *Handler) GetProductByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID")
		return
	}

	p, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Product not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "GET_FAILED", "Failed to get product")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"product": p})
}

// ListUserProducts lists another user's products.
// @Summary		List a user's products
// @Tags		Products
// @Param		userId	path	string	true	"Owner id (UUID)"
// @Success		200	{object}	map[string]interface{} "Product list"
// @Failure		400	{object}	map[string]interface{} "Invalid id"
// @Router		/products/user/{userId} [GET]
func (h *Handler) ListUserProducts(c *gin.Context) {
	ownerID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid user ID")
		return
	}

	products, err := h.service.ListByOwner(c.Request.Context(), ownerID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "LIST_FAILED", "Failed to list products")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"products": products})
}

// ListMyProducts lists the caller's products.
// @Summary		List my products
// @Tags		Products
// @Security	BearerAuth
// @Success		200	{object}	map[string]interface{} "Product list"
// @Failure		401	{object}	map[string]interface{} "Authentication required"
// @Router		/products/my-products [GET]
func (h *Handler) ListMyProducts(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	products, err := h.service.ListByOwner(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "LIST_FAILED", "Failed to list products")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"products": products})
}

// CreateProduct adds a product owned by the caller.
// @Summary		Create product
// @Description	Creates a product owned by the authenticated user. Image bytes, when present, are stored and served under /uploads.
// @Tags		Products
// @Security	BearerAuth
// @Param		request	body	CreateProductRequest	true	"Product data"
// @Success		201	{object}	map[string]interface{} "Created product"
// @Failure		400	{object}	map[string]interface{} "Validation error"
// @Failure		401	{object}	map[string]interface{} "Authentication required"
// @Router		/products [POST]
func (h *Handler) CreateProduct(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	p, err := h.service.Create(c.Request.Context(), userID, req)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "CREATE_FAILED", "Failed to create product")
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"product": p})
}

// UpdateProduct replaces a product the caller owns.
// @Summary		Update product
// @Tags		Products
// @Security	BearerAuth
// @Param		id		path	int						true	"Product id"
// @Param		request	body	UpdateProductRequest	true	"Product data"
// @Success		200	{object}	map[string]interface{} "Updated product"
// @Failure		403	{object}	map[string]interface{} "Not the owner"
// @Failure		404	{object}	map[string]interface{} "Product not found"
// @Router		/products/{id} [PUT]
func (h *Handler) UpdateProduct(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID")
		return
	}

	var req UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	p, err := h.service.Update(c.Request.Context(), userID, id, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Product not found")
		case errors.Is(err, ErrForbidden):
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "You can only update your own products")
		default:
			response.Error(c, http.StatusInternalServerError, "UPDATE_FAILED", "Failed to update product")
		}
		return
	}
	response.Success(c, http.StatusOK, gin.H{"product": p})
}

// DeleteProduct removes a product the caller owns.
// @Summary		Delete product
// @Tags		Products
// @Security	BearerAuth
// @Param		id	path	int	true	"Product id"
// @Success		200	{object}	map[string]interface{} "Deleted"
// @Failure		403	{object}	map[string]interface{} "Not the owner"
// @Failure		404	{object}	map[string]interface{} "Product not found"
// @Router		/products/{id} [DELETE]
func (h *Handler) DeleteProduct(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID")
		return
	}

	if err := h.service.Delete(c.Request.Context(), userID, id); err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Product not found")
		case errors.Is(err, ErrForbidden):
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "You can only delete your own products")
		default:
			response.Error(c, http.StatusInternalServerError, "DELETE_FAILED", "Failed to delete product")
		}
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Product deleted successfully"})
}

func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	raw, exists := c.Get("user_id")
	if !exists {
		return uuid.Nil, false
	}
	id, ok := raw.(uuid.UUID)
	return id, ok
}
