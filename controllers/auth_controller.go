package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/Usserslalo/delixmi-backend-sub003/pkg/resp"
	"github.com/Usserslalo/delixmi-backend-sub003/services"
)

type AuthController struct{ Svc *services.AuthService }

func NewAuthController(s *services.AuthService) *AuthController { return &AuthController{Svc: s} }

type registerIn struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=8"`
	FirstName   string `json:"firstName" binding:"required"`
	LastName    string `json:"lastName" binding:"required"`
	PhoneNumber string `json:"phoneNumber"`
}

type loginIn struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// POST /auth/register
func (h *AuthController) Register(c *gin.Context) {
	var req registerIn
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	user, err := h.Svc.Register(req.Email, req.Password, req.FirstName, req.LastName, req.PhoneNumber)
	if err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	resp.Created(c, user)
}

// POST /auth/login
func (h *AuthController) Login(c *gin.Context) {
	var req loginIn
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	token, user, err := h.Svc.Login(req.Email, req.Password)
	if err != nil {
		resp.Unauthorized(c, err.Error())
		return
	}
	resp.OK(c, gin.H{"token": token, "user": user})
}

// GET /auth/me
func (h *AuthController) Me(c *gin.Context) {
	uid, ok := currentUser(c)
	if !ok {
		return
	}
	user, err := h.Svc.Me(uid)
	if err != nil {
		resp.Err(c, err)
		return
	}
	resp.OK(c, user)
}
