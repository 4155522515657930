package catalog

import (
	"context"
	"errors"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ImageUploader pushes an item image to object storage and returns its
// public URL. Implemented by storage.R2Client.
type ImageUploader interface {
	UploadItemImage(ctx context.Context, itemID string, file *multipart.FileHeader) (string, error)
}

type Handler struct {
	service  *Service
	uploader ImageUploader
}

func NewHandler(service *Service, uploader ImageUploader) *Handler {
	return &Handler{service: service, uploader: uploader}
}

func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, ErrMissingFields), errors.Is(err, ErrBadReference):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// --------------------------------------------------
// Properties
// --------------------------------------------------

func (h *Handler) CreateProperty(c *gin.Context) {
	var req struct {
		Name    string `json:"name"`
		Address string `json:"address"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	p, err := h.service.CreateProperty(c.Request.Context(), c.GetString("userEmail"), req.Name, req.Address)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (h *Handler) ListProperties(c *gin.Context) {
	properties, err := h.service.ListProperties(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, properties)
}

// --------------------------------------------------
// Restaurants
// --------------------------------------------------

func (h *Handler) CreateRestaurant(c *gin.Context) {
	var req struct {
		Name       string `json:"name"`
		PropertyID string `json:"property_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	r, err := h.service.CreateRestaurant(c.Request.Context(), c.GetString("userEmail"), req.Name, req.PropertyID)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, r)
}

func (h *Handler) ListRestaurants(c *gin.Context) {
	restaurants, err := h.service.ListRestaurants(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, restaurants)
}

func (h *Handler) DeleteRestaurant(c *gin.Context) {
	err := h.service.DeleteRestaurant(c.Request.Context(), c.GetString("userEmail"), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "restaurant deleted"})
}

// --------------------------------------------------
// Categories
// --------------------------------------------------

func (h *Handler) CreateCategory(c *gin.Context) {
	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		SortOrder   int    `json:"sort_order"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	cat, err := h.service.CreateCategory(
		c.Request.Context(), c.GetString("userEmail"),
		c.Param("id"), req.Name, req.Description, req.SortOrder,
	)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, cat)
}

func (h *Handler) ListCategories(c *gin.Context) {
	categories, err := h.service.ListCategories(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

func (h *Handler) UpdateCategory(c *gin.Context) {
	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		SortOrder   int    `json:"sort_order"`
		Active      bool   `json:"active"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	cat := &Category{
		ID:          c.Param("categoryID"),
		Name:        req.Name,
		Description: req.Description,
		SortOrder:   req.SortOrder,
		Active:      req.Active,
	}
	if err := h.service.UpdateCategory(c.Request.Context(), c.GetString("userEmail"), cat); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, cat)
}

func (h *Handler) DeleteCategory(c *gin.Context) {
	err := h.service.DeleteCategory(c.Request.Context(), c.GetString("userEmail"), c.Param("categoryID"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "category deleted"})
}

// --------------------------------------------------
// Subcategories
// --------------------------------------------------

func (h *Handler) CreateSubcategory(c *gin.Context) {
	var req struct {
		Name      string `json:"name"`
		SortOrder int    `json:"sort_order"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	sc, err := h.service.CreateSubcategory(
		c.Request.Context(), c.GetString("userEmail"),
		c.Param("categoryID"), req.Name, req.SortOrder,
	)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, sc)
}

func (h *Handler) ListSubcategories(c *gin.Context) {
	subcategories, err := h.service.ListSubcategories(c.Request.Context(), c.Param("categoryID"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, subcategories)
}

func (h *Handler) DeleteSubcategory(c *gin.Context) {
	err := h.service.DeleteSubcategory(c.Request.Context(), c.GetString("userEmail"), c.Param("subcategoryID"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "subcategory deleted"})
}

// --------------------------------------------------
// Menu items
// --------------------------------------------------

func (h *Handler) CreateMenuItem(c *gin.Context) {
	var req CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	req.CategoryID = c.Param("categoryID")
	mi, err := h.service.CreateMenuItem(c.Request.Context(), c.GetString("userEmail"), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, mi)
}

func (h *Handler) ListMenuItems(c *gin.Context) {
	items, err := h.service.ListMenuItems(c.Request.Context(), c.Param("categoryID"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handler) GetMenuItem(c *gin.Context) {
	mi, err := h.service.GetMenuItem(c.Request.Context(), c.Param("itemID"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, mi)
}

func (h *Handler) UpdateMenuItem(c *gin.Context) {
	var req UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	mi, err := h.service.UpdateMenuItem(c.Request.Context(), c.GetString("userEmail"), c.Param("itemID"), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, mi)
}

func (h *Handler) DeleteMenuItem(c *gin.Context) {
	err := h.service.DeleteMenuItem(c.Request.Context(), c.GetString("userEmail"), c.Param("itemID"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "menu item deleted"})
}

// --------------------------------------------------
// Item image upload
// --------------------------------------------------
func (h *Handler) UploadItemImage(c *gin.Context) {
	if h.uploader == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "image storage not configured"})
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image is required"})
		return
	}

	itemID := c.Param("itemID")
	url, err := h.uploader.UploadItemImage(c.Request.Context(), itemID, file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	mi, err := h.service.SetItemImage(c.Request.Context(), c.GetString("userEmail"), itemID, url)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, mi)
}

// --------------------------------------------------
// Modifier groups
// --------------------------------------------------

func (h *Handler) CreateModifierGroup(c *gin.Context) {
	var req struct {
		Name          string              `json:"name"`
		MinSelections int                 `json:"min_selections"`
		MaxSelections int                 `json:"max_selections"`
		Items         []ModifierItemInput `json:"items"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	g, err := h.service.CreateModifierGroup(
		c.Request.Context(), c.GetString("userEmail"),
		c.Param("id"), req.Name, req.MinSelections, req.MaxSelections, req.Items,
	)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, g)
}

func (h *Handler) ListModifierGroups(c *gin.Context) {
	groups, err := h.service.ListModifierGroups(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, groups)
}

func (h *Handler) ListModifierItems(c *gin.Context) {
	items, err := h.service.ListModifierItems(c.Request.Context(), c.Param("groupID"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handler) DeleteModifierGroup(c *gin.Context) {
	err := h.service.DeleteModifierGroup(c.Request.Context(), c.GetString("userEmail"), c.Param("groupID"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "modifier group deleted"})
}
