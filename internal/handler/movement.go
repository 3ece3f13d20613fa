package handler

import (
	"net/http"

	"github.com/andersonjr667/MeuControle/internal/middleware"
	"github.com/andersonjr667/MeuControle/internal/models"
	"github.com/andersonjr667/MeuControle/internal/repository"
	"github.com/andersonjr667/MeuControle/internal/util"

	"github.com/gin-gonic/gin"
)

// MovementHandler serves the debt-history timeline.
type MovementHandler struct {
	Movements *repository.MovementRepo
	Debtors   *repository.DebtorRepo
}

func NewMovementHandler(movements *repository.MovementRepo, debtors *repository.DebtorRepo) *MovementHandler {
	return &MovementHandler{Movements: movements, Debtors: debtors}
}

type createMovementReq struct {
	Date        string   `json:"date" binding:"required"`
	Movement    *float64 `json:"movement" binding:"required"`
	Amount      float64  `json:"amount"`
	Action      string   `json:"type"`
	Description string   `json:"description"`
}

// Create appends a manual entry to a debtor's timeline.
func (h *MovementHandler) Create(c *gin.Context) {
	userID := middleware.CurrentUserID(c)
	debtorID := c.Param("debtorId")

	var req createMovementReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "date and movement are required")
		return
	}

	debtor, err := h.Debtors.FindByID(c.Request.Context(), userID, debtorID)
	if err != nil {
		writeRepoError(c, err, "failed to find debtor")
		return
	}
	if debtor == nil {
		util.Error(c, http.StatusNotFound, util.CodeNotFound, "debtor not found")
		return
	}

	entry, err := h.Movements.Append(c.Request.Context(), models.Movement{
		UserID:      userID,
		DebtorID:    debtor.ID,
		DebtorName:  debtor.Name,
		Amount:      req.Amount,
		Movement:    *req.Movement,
		Action:      req.Action,
		Description: req.Description,
		Date:        req.Date,
	})
	if err != nil {
		writeRepoError(c, err, "failed to record movement")
		return
	}

	history, err := h.Movements.ListByDebtor(c.Request.Context(), userID, debtor.ID)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to list debt history")
		return
	}

	util.Success(c, util.Response{
		"id":          entry.ID,
		"accumulated": entry.AccumulatedBalance,
		"history":     history,
	})
}

// List returns every history entry of the user, newest first.
func (h *MovementHandler) List(c *gin.Context) {
	userID := middleware.CurrentUserID(c)

	movements, err := h.Movements.ListByUser(c.Request.Context(), userID)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to list debt history")
		return
	}

	util.Success(c, util.Response{"history": movements})
}

// ListByDebtor returns one debtor's timeline in insertion order with
// running balances.
func (h *MovementHandler) ListByDebtor(c *gin.Context) {
	userID := middleware.CurrentUserID(c)
	debtorID := c.Param("debtorId")

	movements, err := h.Movements.ListByDebtor(c.Request.Context(), userID, debtorID)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to list debt history")
		return
	}

	balance, err := h.Movements.Balance(c.Request.Context(), userID, debtorID)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to compute balance")
		return
	}

	util.Success(c, util.Response{
		"history": movements,
		"balance": balance,
	})
}

// Delete removes a single history entry. Balances of later entries are
// re-derived on the next read.
func (h *MovementHandler) Delete(c *gin.Context) {
	userID := middleware.CurrentUserID(c)

	if err := h.Movements.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		writeRepoError(c, err, "failed to delete history entry")
		return
	}

	util.Success(c, util.Response{"message": "history entry deleted"})
}
