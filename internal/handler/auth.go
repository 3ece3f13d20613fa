package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/andersonjr667/MeuControle/internal/models"
	"github.com/andersonjr667/MeuControle/internal/repository"
	"github.com/andersonjr667/MeuControle/internal/util"

	"github.com/gin-gonic/gin"
)

// AuthHandler serves register and login.
type AuthHandler struct {
	Users     *repository.UserRepo
	JWTSecret string
	TokenTTL  time.Duration
}

func NewAuthHandler(users *repository.UserRepo, jwtSecret string, ttlHours int) *AuthHandler {
	if ttlHours <= 0 {
		ttlHours = 24
	}
	return &AuthHandler{
		Users:     users,
		JWTSecret: jwtSecret,
		TokenTTL:  time.Duration(ttlHours) * time.Hour,
	}
}

// ---------- register ----------

type registerReq struct {
	Name     string `json:"name" binding:"required,max=64"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req registerReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	if err := util.ValidateEmail(req.Email); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid email address")
		return
	}
	if len(req.Password) < 6 || len(req.Password) > 64 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "password must be 6-64 characters")
		return
	}

	existing, err := h.Users.FindByEmail(c.Request.Context(), req.Email)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to look up user")
		return
	}
	if existing != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "email already registered")
		return
	}

	hash, err := util.HashPassword(req.Password)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to hash password")
		return
	}

	user, err := h.Users.Create(c.Request.Context(), models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
	})
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to create user")
		return
	}

	util.Success(c, util.Response{
		"message": "registered",
		"user":    user.Public(),
	})
}

// ---------- login ----------

type loginReq struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	user, err := h.Users.FindByEmail(c.Request.Context(), req.Email)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to look up user")
		return
	}
	// same message for unknown email and wrong password
	if user == nil || !util.CheckPassword(req.Password, user.PasswordHash) {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "invalid email or password")
		return
	}

	token, err := util.GenerateToken(h.JWTSecret, user.ID, h.TokenTTL)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to generate token")
		return
	}

	util.Success(c, util.Response{
		"token": token,
		"user":  user.Public(),
	})
}
