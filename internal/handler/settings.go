package handler

import (
	"net/http"
	"strings"

	"github.com/andersonjr667/MeuControle/internal/middleware"
	"github.com/andersonjr667/MeuControle/internal/repository"
	"github.com/andersonjr667/MeuControle/internal/util"

	"github.com/gin-gonic/gin"
)

// SettingsHandler serves the per-user preferences record and the named
// category collections (income, expense, payment methods).
type SettingsHandler struct {
	Settings   *repository.SettingsRepo
	Categories *repository.CategoryRepo
}

func NewSettingsHandler(settings *repository.SettingsRepo, categories *repository.CategoryRepo) *SettingsHandler {
	return &SettingsHandler{Settings: settings, Categories: categories}
}

// Get returns the user's settings, creating the defaults on first read.
func (h *SettingsHandler) Get(c *gin.Context) {
	userID := middleware.CurrentUserID(c)

	settings, err := h.Settings.GetByUser(c.Request.Context(), userID)
	if err != nil {
		writeRepoError(c, err, "failed to load settings")
		return
	}

	util.Success(c, util.Response{"settings": settings})
}

func (h *SettingsHandler) Update(c *gin.Context) {
	userID := middleware.CurrentUserID(c)

	var patch repository.SettingsPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}

	settings, err := h.Settings.UpdateByUser(c.Request.Context(), userID, patch)
	if err != nil {
		writeRepoError(c, err, "failed to update settings")
		return
	}

	util.Success(c, util.Response{"settings": settings})
}

// ---------- category collections ----------

type categoryReq struct {
	Name string `json:"name" binding:"required,max=40"`
}

// ListCategories returns the user's categories of the :type kind.
func (h *SettingsHandler) ListCategories(c *gin.Context) {
	userID := middleware.CurrentUserID(c)
	kind := c.Param("type")

	categories, err := h.Categories.List(c.Request.Context(), userID, kind)
	if err != nil {
		writeRepoError(c, err, "failed to list categories")
		return
	}

	util.Success(c, util.Response{"categories": categories})
}

func (h *SettingsHandler) CreateCategory(c *gin.Context) {
	userID := middleware.CurrentUserID(c)
	kind := c.Param("type")

	var req categoryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "name is required")
		return
	}

	category, err := h.Categories.Create(c.Request.Context(), userID, kind, strings.TrimSpace(req.Name))
	if err != nil {
		writeRepoError(c, err, "failed to create category")
		return
	}

	util.Success(c, util.Response{"category": category})
}

func (h *SettingsHandler) RenameCategory(c *gin.Context) {
	userID := middleware.CurrentUserID(c)
	kind := c.Param("type")

	var req categoryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "name is required")
		return
	}

	category, err := h.Categories.Rename(c.Request.Context(), userID, kind, c.Param("id"), strings.TrimSpace(req.Name))
	if err != nil {
		writeRepoError(c, err, "failed to rename category")
		return
	}

	util.Success(c, util.Response{"category": category})
}

func (h *SettingsHandler) DeleteCategory(c *gin.Context) {
	userID := middleware.CurrentUserID(c)
	kind := c.Param("type")

	if err := h.Categories.Delete(c.Request.Context(), userID, kind, c.Param("id")); err != nil {
		writeRepoError(c, err, "failed to delete category")
		return
	}

	util.Success(c, util.Response{"message": "category deleted"})
}

// RestoreDefaultCategories seeds any default category the user is missing.
// Existing entries are kept untouched.
func (h *SettingsHandler) RestoreDefaultCategories(c *gin.Context) {
	userID := middleware.CurrentUserID(c)

	created, err := h.Categories.RestoreDefaults(c.Request.Context(), userID)
	if err != nil {
		writeRepoError(c, err, "failed to restore default categories")
		return
	}

	util.Success(c, util.Response{
		"message": "default categories restored",
		"created": created,
	})
}
