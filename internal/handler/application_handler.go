package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"rent-property-service/internal/middleware"
	"rent-property-service/internal/model"
	"rent-property-service/internal/service"
)

// ApplicationHandler serves rental application routes.
type ApplicationHandler struct {
	Service      *service.ApplicationService
	Applications ApplicationReader
}

type applicationRequest struct {
	PropertyID    string `json:"propertyId" binding:"required"`
	PropertyTitle string `json:"propertyTitle"`
	RenterName    string `json:"renterName"`
	SellerEmail   string `json:"sellerEmail"`
	Message       string `json:"message"`
}

// POST /applications
func (h *ApplicationHandler) Create(c *gin.Context) {
	var req applicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	a := &model.Application{
		PropertyID:    req.PropertyID,
		PropertyTitle: req.PropertyTitle,
		RenterName:    req.RenterName,
		SellerEmail:   req.SellerEmail,
		Message:       req.Message,
	}
	result, err := h.Service.Apply(c.Request.Context(), middleware.Identity(c), a)
	if err != nil {
		internalError(c, "CreateApplication", err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// PATCH /applications?id=&status=&email=
func (h *ApplicationHandler) UpdateStatus(c *gin.Context) {
	id, status, email := c.Query("id"), c.Query("status"), c.Query("email")

	result, decided, err := h.Service.Decide(c.Request.Context(), id, email, status)
	switch {
	case errors.Is(err, model.ErrInvalidStatus):
		badRequest(c, err)
	case errors.Is(err, service.ErrNotSeller):
		c.JSON(http.StatusOK, gin.H{"success": false})
	case err != nil:
		internalError(c, "UpdateApplicationStatus", err)
	default:
		c.JSON(http.StatusOK, gin.H{"success": true, "result": result, "status": decided})
	}
}

// GET /my-rents/:email
func (h *ApplicationHandler) MyRents(c *gin.Context) {
	list, err := h.Applications.FindByRenter(c.Request.Context(), c.Param("email"))
	if err != nil {
		internalError(c, "MyRents", err)
		return
	}
	c.JSON(http.StatusOK, nonNil(list))
}

// GET /isApplied?id=&email=
func (h *ApplicationHandler) IsApplied(c *gin.Context) {
	a, err := h.Applications.FindLatest(c.Request.Context(), c.Query("id"), c.Query("email"))
	if err != nil {
		internalError(c, "IsApplied", err)
		return
	}
	if a == nil {
		c.JSON(http.StatusOK, gin.H{"success": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "status": a.Status})
}

// GET /applications/:id
func (h *ApplicationHandler) ForProperty(c *gin.Context) {
	list, err := h.Applications.FindByProperty(c.Request.Context(), c.Param("id"))
	if err != nil {
		internalError(c, "PropertyApplications", err)
		return
	}
	c.JSON(http.StatusOK, nonNil(list))
}

func nonNil(list []model.Application) []model.Application {
	if list == nil {
		return []model.Application{}
	}
	return list
}
