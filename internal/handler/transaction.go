package handler

import (
	"net/http"
	"strings"

	"github.com/andersonjr667/MeuControle/internal/finance"
	"github.com/andersonjr667/MeuControle/internal/middleware"
	"github.com/andersonjr667/MeuControle/internal/models"
	"github.com/andersonjr667/MeuControle/internal/repository"
	"github.com/andersonjr667/MeuControle/internal/util"

	"github.com/gin-gonic/gin"
)

// TransactionHandler serves CRUD and aggregation endpoints for
// income/expense transactions.
type TransactionHandler struct {
	Transactions *repository.TransactionRepo
}

func NewTransactionHandler(transactions *repository.TransactionRepo) *TransactionHandler {
	return &TransactionHandler{Transactions: transactions}
}

// ---------- request structs ----------

type createTransactionReq struct {
	Type        string  `json:"type" binding:"required"`
	Category    string  `json:"category" binding:"required,max=40"`
	Amount      float64 `json:"amount" binding:"required"`
	Description string  `json:"description" binding:"max=255"`
	Date        string  `json:"date"`
}

func (h *TransactionHandler) Create(c *gin.Context) {
	userID := middleware.CurrentUserID(c)

	var req createTransactionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}

	req.Category = strings.TrimSpace(req.Category)
	if err := util.ValidateCategory(req.Category); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid category")
		return
	}
	if err := util.ValidateAmount(req.Amount); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid amount")
		return
	}
	if req.Date != "" {
		if err := util.ValidateDate(req.Date); err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid date, use YYYY-MM-DD")
			return
		}
	}

	tx, err := h.Transactions.Create(c.Request.Context(), models.Transaction{
		UserID:      userID,
		Type:        req.Type,
		Category:    req.Category,
		Amount:      req.Amount,
		Description: req.Description,
		Date:        req.Date,
	})
	if err != nil {
		writeRepoError(c, err, "failed to create transaction")
		return
	}

	util.Success(c, util.Response{"transaction": tx})
}

// List returns the user's transactions, newest first. Optional query
// filters: type, category, startDate, endDate.
func (h *TransactionHandler) List(c *gin.Context) {
	userID := middleware.CurrentUserID(c)

	filter := &repository.TransactionFilter{
		Type:      c.Query("type"),
		Category:  c.Query("category"),
		StartDate: c.Query("startDate"),
		EndDate:   c.Query("endDate"),
	}

	txs, err := h.Transactions.FindByUserID(c.Request.Context(), userID, filter)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to list transactions")
		return
	}

	util.Success(c, util.Response{"transactions": txs})
}

func (h *TransactionHandler) Get(c *gin.Context) {
	userID := middleware.CurrentUserID(c)

	tx, err := h.Transactions.FindByID(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		writeRepoError(c, err, "failed to find transaction")
		return
	}
	if tx == nil {
		util.Error(c, http.StatusNotFound, util.CodeNotFound, "transaction not found")
		return
	}

	util.Success(c, util.Response{"transaction": tx})
}

func (h *TransactionHandler) Update(c *gin.Context) {
	userID := middleware.CurrentUserID(c)

	var patch repository.TransactionPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}
	if patch.Amount != nil {
		if err := util.ValidateAmount(*patch.Amount); err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid amount")
			return
		}
	}

	tx, err := h.Transactions.Update(c.Request.Context(), userID, c.Param("id"), patch)
	if err != nil {
		writeRepoError(c, err, "failed to update transaction")
		return
	}

	util.Success(c, util.Response{"transaction": tx})
}

func (h *TransactionHandler) Delete(c *gin.Context) {
	userID := middleware.CurrentUserID(c)

	if err := h.Transactions.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		writeRepoError(c, err, "failed to delete transaction")
		return
	}

	util.Success(c, util.Response{"message": "transaction deleted"})
}

// Balance returns income minus expense over all of the user's transactions.
func (h *TransactionHandler) Balance(c *gin.Context) {
	userID := middleware.CurrentUserID(c)

	balance, err := h.Transactions.CalculateBalance(c.Request.Context(), userID)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to calculate balance")
		return
	}

	util.Success(c, util.Response{"balance": balance})
}

// Distribution returns per-category totals, largest first. The type query
// parameter narrows it to income or expense.
func (h *TransactionHandler) Distribution(c *gin.Context) {
	userID := middleware.CurrentUserID(c)

	txs, err := h.Transactions.FindByUserID(c.Request.Context(), userID, nil)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to list transactions")
		return
	}

	dist := finance.CategoryDistribution(txs, c.Query("type"))

	util.Success(c, util.Response{"distribution": dist})
}

// Monthly returns per-month income/expense buckets in ascending month order.
func (h *TransactionHandler) Monthly(c *gin.Context) {
	userID := middleware.CurrentUserID(c)

	txs, err := h.Transactions.FindByUserID(c.Request.Context(), userID, nil)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to list transactions")
		return
	}

	util.Success(c, util.Response{"monthly": finance.MonthlySeries(txs)})
}
