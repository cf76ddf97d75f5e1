package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"rent-property-service/internal/model"
	"rent-property-service/internal/service"
)

// UserHandler serves signup, login and profile routes.
type UserHandler struct {
	Auth  *service.AuthService
	Users UserStore
}

type signupRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	PhotoURL string `json:"photoUrl"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// POST /sign-up
func (h *UserHandler) SignUp(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	u := &model.User{
		Email:    req.Email,
		Name:     req.Name,
		Phone:    req.Phone,
		Address:  req.Address,
		PhotoURL: req.PhotoURL,
	}
	result, err := h.Auth.Signup(c.Request.Context(), u, req.Password)
	if errors.Is(err, service.ErrEmailTaken) {
		c.JSON(http.StatusOK, gin.H{"status": false, "error": "This user is already exist"})
		return
	}
	if err != nil {
		internalError(c, "SignUp", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": true, "result": result})
}

// POST /login
func (h *UserHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	user, token, err := h.Auth.Login(c.Request.Context(), req.Email, req.Password)
	if errors.Is(err, service.ErrBadCredentials) {
		c.JSON(http.StatusOK, gin.H{"status": false, "error": "Authentication Error"})
		return
	}
	if err != nil {
		internalError(c, "Login", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": true, "user": user, "token": token})
}

// GET /user/:email
func (h *UserHandler) IsAdmin(c *gin.Context) {
	u, err := h.Users.FindByEmail(c.Request.Context(), c.Param("email"))
	if err != nil {
		internalError(c, "IsAdmin", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"isAdmin": u.IsAdmin()})
}

// GET /users/:email
func (h *UserHandler) GetUser(c *gin.Context) {
	u, err := h.Users.FindByEmail(c.Request.Context(), c.Param("email"))
	if err != nil {
		internalError(c, "GetUser", err)
		return
	}
	if u == nil {
		c.JSON(http.StatusOK, gin.H{})
		return
	}
	c.JSON(http.StatusOK, u)
}

// PATCH /update-user/:email
func (h *UserHandler) UpdateUser(c *gin.Context) {
	var req model.ProfileUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	result, err := h.Users.UpdateProfile(c.Request.Context(), c.Param("email"), req)
	if err != nil {
		internalError(c, "UpdateUser", err)
		return
	}
	c.JSON(http.StatusOK, result)
}
