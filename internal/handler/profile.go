package handler

import (
	"net/http"
	"strings"

	"github.com/andersonjr667/MeuControle/internal/middleware"
	"github.com/andersonjr667/MeuControle/internal/repository"
	"github.com/andersonjr667/MeuControle/internal/util"

	"github.com/gin-gonic/gin"
)

// ProfileHandler serves the current user's own record.
type ProfileHandler struct {
	Users *repository.UserRepo
}

func NewProfileHandler(users *repository.UserRepo) *ProfileHandler {
	return &ProfileHandler{Users: users}
}

type updateProfileReq struct {
	Name string `json:"name" binding:"required,max=64"`
}

type changePasswordReq struct {
	OldPassword string `json:"oldPassword" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=6,max=64"`
}

// Me returns the authenticated user's public profile.
func (h *ProfileHandler) Me(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not logged in")
		return
	}

	util.Success(c, util.Response{"user": user.Public()})
}

// UpdateProfile changes the display name.
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not logged in")
		return
	}

	var req updateProfileReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "name is required")
		return
	}

	updated, err := h.Users.UpdateName(c.Request.Context(), user.ID, strings.TrimSpace(req.Name))
	if err != nil {
		writeRepoError(c, err, "failed to update profile")
		return
	}
	if updated == nil {
		util.Error(c, http.StatusNotFound, util.CodeNotFound, "user not found")
		return
	}

	util.Success(c, util.Response{"user": updated.Public()})
}

// ChangePassword verifies the old password before storing the new hash.
func (h *ProfileHandler) ChangePassword(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not logged in")
		return
	}

	var req changePasswordReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}

	if !util.CheckPassword(req.OldPassword, user.PasswordHash) {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "current password is incorrect")
		return
	}

	hash, err := util.HashPassword(req.NewPassword)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to hash password")
		return
	}

	if err := h.Users.UpdatePassword(c.Request.Context(), user.ID, hash); err != nil {
		writeRepoError(c, err, "failed to update password")
		return
	}

	util.Success(c, util.Response{"message": "password changed, please log in again"})
}
