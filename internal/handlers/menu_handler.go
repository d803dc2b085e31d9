package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"tableside/internal/models"
	"tableside/internal/services"
	"tableside/pkg/imagestore"

	"github.com/gin-gonic/gin"
)

type MenuHandler struct {
	menuService services.MenuService
	images      *imagestore.Store
}

func NewMenuHandler(menuService services.MenuService, images *imagestore.Store) *MenuHandler {
	return &MenuHandler{menuService: menuService, images: images}
}

// List returns all menu items, id ascending.
func (h *MenuHandler) List(c *gin.Context) {
	items, err := h.menuService.GetAll()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.Header("Cache-Control", "no-store")
	c.JSON(http.StatusOK, gin.H{"menuItems": items})
}

// Create adds a menu item from a multipart form. A valid image file is
// required for new items.
func (h *MenuHandler) Create(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Image is required for new menu items"})
		return
	}

	imageURL, err := h.images.Save(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item := &models.MenuItem{
		Name:        c.PostForm("name"),
		Price:       c.PostForm("price"),
		Category:    c.PostForm("category"),
		Description: c.PostForm("description"),
		ImageURL:    imageURL,
	}

	if err := h.menuService.Create(item); err != nil {
		// Clean up the uploaded file if validation fails
		h.images.Remove(imageURL)
		if errors.Is(err, services.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"menuItem": item})
}

// Update replaces the item's fields. Without a new image upload the prior
// image reference is retained; with one, the old file is removed.
func (h *MenuHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid menu item id"})
		return
	}

	existing, err := h.menuService.Get(uint(id))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Menu item not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	var imageURL string
	if file, err := c.FormFile("image"); err == nil {
		imageURL, err = h.images.Save(file)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	item := &models.MenuItem{
		Name:        c.PostForm("name"),
		Price:       c.PostForm("price"),
		Category:    c.PostForm("category"),
		Description: c.PostForm("description"),
		ImageURL:    imageURL,
	}

	updated, err := h.menuService.Update(uint(id), item)
	if err != nil {
		if imageURL != "" {
			h.images.Remove(imageURL)
		}
		if errors.Is(err, services.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	// Delete the replaced image file
	if imageURL != "" && existing.ImageURL != "" && existing.ImageURL != imageURL {
		h.images.Remove(existing.ImageURL)
	}

	c.JSON(http.StatusOK, gin.H{"menuItem": updated})
}

// Delete removes a menu item. Orders keep their line snapshots.
func (h *MenuHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid menu item id"})
		return
	}

	if err := h.menuService.Delete(uint(id)); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Menu item not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
