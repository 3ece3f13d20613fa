package handler

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/andersonjr667/MeuControle/internal/middleware"
	"github.com/andersonjr667/MeuControle/internal/models"
	"github.com/andersonjr667/MeuControle/internal/repository"
	"github.com/andersonjr667/MeuControle/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

// ExportHandler writes the user's transactions as CSV or XLSX downloads.
type ExportHandler struct {
	Transactions *repository.TransactionRepo
}

func NewExportHandler(transactions *repository.TransactionRepo) *ExportHandler {
	return &ExportHandler{Transactions: transactions}
}

func typeLabel(t string) string {
	if t == models.TypeIncome {
		return "Receita"
	}
	return "Despesa"
}

// dateLabel trims stored timestamps down to YYYY-MM-DD.
func dateLabel(date string) string {
	if len(date) >= 10 {
		return date[:10]
	}
	return date
}

// ExportCSV streams the transactions as CSV.
func (h *ExportHandler) ExportCSV(c *gin.Context) {
	userID := middleware.CurrentUserID(c)

	txs, err := h.Transactions.FindByUserID(c.Request.Context(), userID, nil)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to list transactions")
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"transacoes_%s.csv\"",
		time.Now().Format("20060102")))

	// UTF-8 BOM so spreadsheet apps pick up accented characters
	c.Writer.Write([]byte{0xEF, 0xBB, 0xBF})

	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	writer.Write([]string{"Tipo", "Categoria", "Valor", "Descrição", "Data"})
	for _, t := range txs {
		writer.Write([]string{
			typeLabel(t.Type),
			t.Category,
			strconv.FormatFloat(t.Amount, 'f', 2, 64),
			t.Description,
			dateLabel(t.Date),
		})
	}
}

// ExportXLSX writes the transactions as an xlsx workbook.
func (h *ExportHandler) ExportXLSX(c *gin.Context) {
	userID := middleware.CurrentUserID(c)

	txs, err := h.Transactions.FindByUserID(c.Request.Context(), userID, nil)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to list transactions")
		return
	}

	f := excelize.NewFile()
	sheetName := "Transações"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to create sheet")
		return
	}
	f.SetActiveSheet(index)

	headers := []string{"Tipo", "Categoria", "Valor", "Descrição", "Data"}
	for i, head := range headers {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheetName, cell, head)
	}

	for idx, t := range txs {
		row := idx + 2
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), typeLabel(t.Type))
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), t.Category)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), t.Amount)
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), t.Description)
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), dateLabel(t.Date))
	}

	f.SetColWidth(sheetName, "A", "A", 10)
	f.SetColWidth(sheetName, "B", "B", 18)
	f.SetColWidth(sheetName, "C", "C", 12)
	f.SetColWidth(sheetName, "D", "D", 30)
	f.SetColWidth(sheetName, "E", "E", 12)

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"transacoes_%s.xlsx\"",
		time.Now().Format("20060102")))

	if err := f.Write(c.Writer); err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to write workbook")
	}
}
