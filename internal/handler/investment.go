package handler

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/andersonjr667/MeuControle/internal/finance"
	"github.com/andersonjr667/MeuControle/internal/middleware"
	"github.com/andersonjr667/MeuControle/internal/models"
	"github.com/andersonjr667/MeuControle/internal/repository"
	"github.com/andersonjr667/MeuControle/internal/util"

	"github.com/gin-gonic/gin"
)

// InvestmentHandler serves investment CRUD, totals and projections.
// Creating an investment also books a matching expense transaction so the
// cash leaving the account shows up in the ledger.
type InvestmentHandler struct {
	Investments  *repository.InvestmentRepo
	Transactions *repository.TransactionRepo
}

func NewInvestmentHandler(investments *repository.InvestmentRepo, transactions *repository.TransactionRepo) *InvestmentHandler {
	return &InvestmentHandler{Investments: investments, Transactions: transactions}
}

// ---------- request structs ----------

type createInvestmentReq struct {
	Name          string  `json:"name" binding:"required,max=64"`
	Type          string  `json:"type"`
	Amount        float64 `json:"amount"`
	InitialAmount float64 `json:"initialAmount"`
	ReturnRate    float64 `json:"returnRate"`
	CDIPercent    float64 `json:"cdiPercent"`
	Description   string  `json:"description" binding:"max=255"`
	StartDate     string  `json:"startDate"`
	EndDate       string  `json:"endDate"`
	Status        string  `json:"status"`
}

func (h *InvestmentHandler) Create(c *gin.Context) {
	userID := middleware.CurrentUserID(c)

	var req createInvestmentReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}

	inv, err := h.Investments.Create(c.Request.Context(), models.Investment{
		UserID:        userID,
		Name:          strings.TrimSpace(req.Name),
		Type:          req.Type,
		Amount:        req.Amount,
		InitialAmount: req.InitialAmount,
		ReturnRate:    req.ReturnRate,
		CDIPercent:    req.CDIPercent,
		Description:   req.Description,
		StartDate:     req.StartDate,
		EndDate:       req.EndDate,
		Status:        req.Status,
	})
	if err != nil {
		writeRepoError(c, err, "failed to create investment")
		return
	}

	// book the principal as an expense so the ledger balance reflects it
	principal := inv.InitialAmount
	if principal == 0 {
		principal = inv.Amount
	}
	if principal > 0 {
		_, err = h.Transactions.Create(c.Request.Context(), models.Transaction{
			UserID:      userID,
			Type:        models.TypeExpense,
			Category:    "Investimentos",
			Amount:      principal,
			Description: fmt.Sprintf("Investimento: %s", inv.Name),
			Date:        inv.StartDate,
		})
		if err != nil {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "investment created but expense booking failed")
			return
		}
	}

	util.Success(c, util.Response{
		"message":    "investment created",
		"investment": inv,
	})
}

func (h *InvestmentHandler) List(c *gin.Context) {
	userID := middleware.CurrentUserID(c)

	investments, err := h.Investments.FindByUserID(c.Request.Context(), userID)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to list investments")
		return
	}

	util.Success(c, util.Response{"investments": investments})
}

func (h *InvestmentHandler) Get(c *gin.Context) {
	userID := middleware.CurrentUserID(c)

	inv, err := h.Investments.FindByID(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		writeRepoError(c, err, "failed to find investment")
		return
	}
	if inv == nil {
		util.Error(c, http.StatusNotFound, util.CodeNotFound, "investment not found")
		return
	}

	util.Success(c, util.Response{"investment": inv})
}

func (h *InvestmentHandler) Update(c *gin.Context) {
	userID := middleware.CurrentUserID(c)

	var patch repository.InvestmentPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}

	inv, err := h.Investments.Update(c.Request.Context(), userID, c.Param("id"), patch)
	if err != nil {
		writeRepoError(c, err, "failed to update investment")
		return
	}

	util.Success(c, util.Response{"investment": inv})
}

func (h *InvestmentHandler) Delete(c *gin.Context) {
	userID := middleware.CurrentUserID(c)

	if err := h.Investments.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		writeRepoError(c, err, "failed to delete investment")
		return
	}

	util.Success(c, util.Response{"message": "investment deleted"})
}

// Total returns the summed current value of the user's active investments.
func (h *InvestmentHandler) Total(c *gin.Context) {
	userID := middleware.CurrentUserID(c)

	total, err := h.Investments.CalculateTotalInvested(c.Request.Context(), userID)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to calculate total invested")
		return
	}

	util.Success(c, util.Response{"totalInvested": total})
}

// Simulate runs a compound-growth projection. It reads nothing from the
// store; the same inputs always give the same outputs.
func (h *InvestmentHandler) Simulate(c *gin.Context) {
	var in finance.SimulationInput
	if err := c.ShouldBindJSON(&in); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}
	if in.Initial < 0 || in.Monthly < 0 || in.Years < 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "values must not be negative")
		return
	}

	util.Success(c, util.Response{"simulation": finance.Simulate(in)})
}
