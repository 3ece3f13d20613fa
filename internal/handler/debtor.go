package handler

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/andersonjr667/MeuControle/internal/middleware"
	"github.com/andersonjr667/MeuControle/internal/models"
	"github.com/andersonjr667/MeuControle/internal/repository"
	"github.com/andersonjr667/MeuControle/internal/util"

	"github.com/gin-gonic/gin"
)

// DebtorHandler serves debtor CRUD. Every write also appends a debt-history
// entry so the debtor's timeline stays complete.
type DebtorHandler struct {
	Debtors   *repository.DebtorRepo
	Movements *repository.MovementRepo
}

func NewDebtorHandler(debtors *repository.DebtorRepo, movements *repository.MovementRepo) *DebtorHandler {
	return &DebtorHandler{Debtors: debtors, Movements: movements}
}

// ---------- request structs ----------

type createDebtorReq struct {
	Name        string  `json:"name" binding:"required,max=64"`
	Amount      float64 `json:"amount"`
	Description string  `json:"description" binding:"max=255"`
	DueDate     string  `json:"dueDate"`
	Status      string  `json:"status"`
}

// updateDebtorReq carries the debtor patch plus optional action metadata.
// When actionType is paid or lent, the history entry records a balance
// movement instead of a plain update.
type updateDebtorReq struct {
	repository.DebtorPatch
	ActionType        string  `json:"actionType"`
	ActionValue       float64 `json:"actionValue"`
	ActionDate        string  `json:"actionDate"`
	ActionDescription string  `json:"actionDescription"`
}

func (h *DebtorHandler) Create(c *gin.Context) {
	userID := middleware.CurrentUserID(c)

	var req createDebtorReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "name and amount are required")
		return
	}

	debtor, err := h.Debtors.Create(c.Request.Context(), models.Debtor{
		UserID:      userID,
		Name:        strings.TrimSpace(req.Name),
		Amount:      req.Amount,
		Description: req.Description,
		DueDate:     req.DueDate,
		Status:      req.Status,
	})
	if err != nil {
		writeRepoError(c, err, "failed to create debtor")
		return
	}

	// creation opens the timeline with the initial balance
	_, err = h.Movements.Append(c.Request.Context(), models.Movement{
		UserID:      userID,
		DebtorID:    debtor.ID,
		DebtorName:  debtor.Name,
		Amount:      debtor.Amount,
		Movement:    debtor.Amount,
		Action:      models.ActionCreated,
		Description: fmt.Sprintf("Debt created: %s", debtor.Name),
	})
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "debtor created but history write failed")
		return
	}

	util.Success(c, util.Response{
		"message": "debtor created",
		"debtor":  debtor,
	})
}

func (h *DebtorHandler) List(c *gin.Context) {
	userID := middleware.CurrentUserID(c)

	debtors, err := h.Debtors.FindByUserID(c.Request.Context(), userID)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to list debtors")
		return
	}

	util.Success(c, util.Response{"debtors": debtors})
}

func (h *DebtorHandler) Get(c *gin.Context) {
	userID := middleware.CurrentUserID(c)

	debtor, err := h.Debtors.FindByID(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		writeRepoError(c, err, "failed to find debtor")
		return
	}
	if debtor == nil {
		util.Error(c, http.StatusNotFound, util.CodeNotFound, "debtor not found")
		return
	}

	util.Success(c, util.Response{"debtor": debtor})
}

func (h *DebtorHandler) Update(c *gin.Context) {
	userID := middleware.CurrentUserID(c)

	var req updateDebtorReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}

	debtor, err := h.Debtors.Update(c.Request.Context(), userID, c.Param("id"), req.DebtorPatch)
	if err != nil {
		writeRepoError(c, err, "failed to update debtor")
		return
	}

	action := models.NormalizeAction(req.ActionType)
	isBalanceAction := req.ActionType != "" && (action == models.ActionPaid || action == models.ActionLent)

	historyAmount := debtor.Amount
	if isBalanceAction && req.ActionValue != 0 {
		historyAmount = req.ActionValue
	}

	movement := models.Movement{
		UserID:      userID,
		DebtorID:    debtor.ID,
		DebtorName:  debtor.Name,
		Amount:      historyAmount,
		Action:      models.ActionUpdated,
		Description: fmt.Sprintf("Debt updated: %s", debtor.Name),
		Date:        req.ActionDate,
	}
	if isBalanceAction {
		movement.Action = action
		// payments reduce the running balance, loans raise it
		if action == models.ActionPaid {
			movement.Movement = -historyAmount
			movement.Description = fmt.Sprintf("Payment recorded: R$ %.2f", historyAmount)
		} else {
			movement.Movement = historyAmount
			movement.Description = fmt.Sprintf("Loan recorded: R$ %.2f", historyAmount)
		}
		if req.ActionDescription != "" {
			movement.Description += " - " + req.ActionDescription
		}
	}

	if _, err := h.Movements.Append(c.Request.Context(), movement); err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "debtor updated but history write failed")
		return
	}

	util.Success(c, util.Response{
		"message": "debtor updated",
		"debtor":  debtor,
	})
}

// Delete removes the debtor and its accumulated history, then leaves a
// single tombstone entry recording the removal.
func (h *DebtorHandler) Delete(c *gin.Context) {
	userID := middleware.CurrentUserID(c)

	debtor, err := h.Debtors.FindByID(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		writeRepoError(c, err, "failed to find debtor")
		return
	}
	if debtor == nil {
		util.Error(c, http.StatusNotFound, util.CodeNotFound, "debtor not found")
		return
	}

	if err := h.Debtors.Delete(c.Request.Context(), userID, debtor.ID); err != nil {
		writeRepoError(c, err, "failed to delete debtor")
		return
	}

	_, err = h.Movements.Append(c.Request.Context(), models.Movement{
		UserID:      userID,
		DebtorID:    debtor.ID,
		DebtorName:  debtor.Name,
		Amount:      debtor.Amount,
		Action:      models.ActionDeleted,
		Description: fmt.Sprintf("Debt removed: %s", debtor.Name),
	})
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "debtor deleted but history write failed")
		return
	}

	util.Success(c, util.Response{"message": "debtor deleted"})
}
