package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/andersonjr667/MeuControle/internal/middleware"
	"github.com/andersonjr667/MeuControle/internal/repository"
	"github.com/andersonjr667/MeuControle/internal/util"

	"github.com/gin-gonic/gin"
)

// AccountHandler serves whole-account operations: reset and full export.
type AccountHandler struct {
	Transactions *repository.TransactionRepo
	Debtors      *repository.DebtorRepo
	Movements    *repository.MovementRepo
	Investments  *repository.InvestmentRepo
	Settings     *repository.SettingsRepo
}

func NewAccountHandler(
	transactions *repository.TransactionRepo,
	debtors *repository.DebtorRepo,
	movements *repository.MovementRepo,
	investments *repository.InvestmentRepo,
	settings *repository.SettingsRepo,
) *AccountHandler {
	return &AccountHandler{
		Transactions: transactions,
		Debtors:      debtors,
		Movements:    movements,
		Investments:  investments,
		Settings:     settings,
	}
}

// Reset wipes the user's transactions, investments and debt history, and
// zeroes debtor balances. Debtor contacts, settings and the user record
// itself survive. The steps are not transactional; a failure partway
// through is reported and the remaining collections are left as they were.
func (h *AccountHandler) Reset(c *gin.Context) {
	userID := middleware.CurrentUserID(c)
	ctx := c.Request.Context()

	removedTx, err := h.Transactions.DeleteManyByUser(ctx, userID)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "reset failed while removing transactions")
		return
	}
	removedInv, err := h.Investments.DeleteManyByUser(ctx, userID)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "reset failed while removing investments")
		return
	}
	removedHist, err := h.Movements.DeleteManyByUser(ctx, userID)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "reset failed while removing debt history")
		return
	}
	resetDebtors, err := h.Debtors.ResetAmountsByUser(ctx, userID)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "reset failed while zeroing debtor balances")
		return
	}

	util.Success(c, util.Response{
		"message":             "account data reset",
		"removedTransactions": removedTx,
		"removedInvestments":  removedInv,
		"removedHistory":      removedHist,
		"resetDebtors":        resetDebtors,
	})
}

// ExportJSON downloads everything the user owns as a single JSON document.
func (h *AccountHandler) ExportJSON(c *gin.Context) {
	userID := middleware.CurrentUserID(c)
	ctx := c.Request.Context()

	transactions, err := h.Transactions.FindByUserID(ctx, userID, nil)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to collect transactions")
		return
	}
	debtors, err := h.Debtors.FindByUserID(ctx, userID)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to collect debtors")
		return
	}
	history, err := h.Movements.ListByUser(ctx, userID)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to collect debt history")
		return
	}
	investments, err := h.Investments.FindByUserID(ctx, userID)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to collect investments")
		return
	}
	settings, err := h.Settings.GetByUser(ctx, userID)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to collect settings")
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"meucontrole_%s.json\"",
		time.Now().Format("20060102")))
	c.JSON(http.StatusOK, gin.H{
		"exportedAt":   time.Now().UTC().Format(time.RFC3339),
		"transactions": transactions,
		"debtors":      debtors,
		"debtHistory":  history,
		"investments":  investments,
		"settings":     settings,
	})
}
