package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"rent-property-service/internal/middleware"
	"rent-property-service/internal/model"
)

// PropertyHandler serves the property listing routes.
type PropertyHandler struct {
	Properties PropertyStore
	// NewestFirst is the listing order when the request does not pick one.
	NewestFirst bool
}

type propertyRequest struct {
	SellerName  string  `json:"sellerName"`
	Title       string  `json:"title" binding:"required"`
	Description string  `json:"description"`
	Location    string  `json:"location"`
	Price       float64 `json:"price" binding:"gte=0"`
	Bedrooms    int     `json:"bedrooms" binding:"gte=0"`
	Bathrooms   int     `json:"bathrooms" binding:"gte=0"`
	Area        float64 `json:"area" binding:"gte=0"`
	Type        string  `json:"type"`
	ImageURL    string  `json:"imageUrl"`
}

// POST /property
func (h *PropertyHandler) Create(c *gin.Context) {
	var req propertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	p := &model.Property{
		SellerEmail: middleware.Identity(c),
		SellerName:  req.SellerName,
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		Price:       req.Price,
		Bedrooms:    req.Bedrooms,
		Bathrooms:   req.Bathrooms,
		Area:        req.Area,
		Type:        req.Type,
		ImageURL:    req.ImageURL,
	}
	id, err := h.Properties.Insert(c.Request.Context(), p)
	if err != nil {
		internalError(c, "CreateProperty", err)
		return
	}
	c.JSON(http.StatusOK, model.InsertResult{Acknowledged: true, InsertedID: id.Hex()})
}

// GET /property?order=asc|desc
func (h *PropertyHandler) List(c *gin.Context) {
	newestFirst := h.NewestFirst
	switch c.Query("order") {
	case "desc":
		newestFirst = true
	case "asc":
		newestFirst = false
	}

	list, err := h.Properties.List(c.Request.Context(), newestFirst)
	if err != nil {
		internalError(c, "ListProperties", err)
		return
	}
	if list == nil {
		list = []model.Property{}
	}
	c.JSON(http.StatusOK, list)
}

// GET /property/:id answers {} when there is no such property.
func (h *PropertyHandler) Get(c *gin.Context) {
	p, err := h.Properties.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		internalError(c, "GetProperty", err)
		return
	}
	if p == nil {
		c.JSON(http.StatusOK, gin.H{})
		return
	}
	c.JSON(http.StatusOK, p)
}

// DELETE /property/:id
func (h *PropertyHandler) Delete(c *gin.Context) {
	result, err := h.Properties.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		internalError(c, "DeleteProperty", err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GET /my-sales/:email
func (h *PropertyHandler) MySales(c *gin.Context) {
	list, err := h.Properties.FindBySeller(c.Request.Context(), c.Param("email"))
	if err != nil {
		internalError(c, "MySales", err)
		return
	}
	if list == nil {
		list = []model.Property{}
	}
	c.JSON(http.StatusOK, list)
}
