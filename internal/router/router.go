package router

import (
	"github.com/andersonjr667/MeuControle/internal/config"
	"github.com/andersonjr667/MeuControle/internal/handler"
	"github.com/andersonjr667/MeuControle/internal/middleware"
	"github.com/andersonjr667/MeuControle/internal/repository"
	"github.com/andersonjr667/MeuControle/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// SetupRouter wires the gin engine, middleware and the API route table.
func SetupRouter(cfg *config.Config, store *storage.Selector, conn *storage.MongoConn, log zerolog.Logger) *gin.Engine {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	r := gin.New()
	r.Use(middleware.RequestLogger(log), gin.Recovery())

	users := repository.NewUserRepo(store)
	transactions := repository.NewTransactionRepo(store)
	debtors := repository.NewDebtorRepo(store)
	movements := repository.NewMovementRepo(store)
	investments := repository.NewInvestmentRepo(store)
	settings := repository.NewSettingsRepo(store)
	categories := repository.NewCategoryRepo(store)

	api := r.Group("/api")

	healthHandler := handler.NewHealthHandler(conn, store.File())
	api.GET("/health", healthHandler.Status)

	jwtSecret := cfg.JWT.Secret
	authHandler := handler.NewAuthHandler(users, jwtSecret, cfg.JWT.ExpireHours)
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)

	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(jwtSecret, users))

	profileHandler := handler.NewProfileHandler(users)
	protected.GET("/me", profileHandler.Me)
	protected.POST("/profile", profileHandler.UpdateProfile)
	protected.POST("/profile/password", profileHandler.ChangePassword)

	transactionHandler := handler.NewTransactionHandler(transactions)
	protected.POST("/transactions", transactionHandler.Create)
	protected.GET("/transactions", transactionHandler.List)
	protected.GET("/transactions/balance", transactionHandler.Balance)
	protected.GET("/transactions/distribution", transactionHandler.Distribution)
	protected.GET("/transactions/monthly", transactionHandler.Monthly)
	protected.GET("/transactions/:id", transactionHandler.Get)
	protected.PUT("/transactions/:id", transactionHandler.Update)
	protected.DELETE("/transactions/:id", transactionHandler.Delete)

	debtorHandler := handler.NewDebtorHandler(debtors, movements)
	protected.POST("/debtors", debtorHandler.Create)
	protected.GET("/debtors", debtorHandler.List)
	protected.GET("/debtors/:id", debtorHandler.Get)
	protected.PUT("/debtors/:id", debtorHandler.Update)
	protected.DELETE("/debtors/:id", debtorHandler.Delete)

	movementHandler := handler.NewMovementHandler(movements, debtors)
	protected.GET("/debt-history", movementHandler.List)
	protected.GET("/debt-history/debtor/:debtorId", movementHandler.ListByDebtor)
	protected.POST("/debt-history/debtor/:debtorId", movementHandler.Create)
	protected.DELETE("/debt-history/:id", movementHandler.Delete)

	investmentHandler := handler.NewInvestmentHandler(investments, transactions)
	protected.POST("/investments", investmentHandler.Create)
	protected.GET("/investments", investmentHandler.List)
	protected.GET("/investments/total", investmentHandler.Total)
	protected.POST("/investments/simulate", investmentHandler.Simulate)
	protected.GET("/investments/:id", investmentHandler.Get)
	protected.PUT("/investments/:id", investmentHandler.Update)
	protected.DELETE("/investments/:id", investmentHandler.Delete)

	settingsHandler := handler.NewSettingsHandler(settings, categories)
	protected.GET("/settings", settingsHandler.Get)
	protected.PUT("/settings", settingsHandler.Update)
	protected.GET("/settings/categories/:type", settingsHandler.ListCategories)
	protected.POST("/settings/categories/:type", settingsHandler.CreateCategory)
	protected.PUT("/settings/categories/:type/:id", settingsHandler.RenameCategory)
	protected.DELETE("/settings/categories/:type/:id", settingsHandler.DeleteCategory)
	protected.POST("/settings/categories/restore-defaults", settingsHandler.RestoreDefaultCategories)

	accountHandler := handler.NewAccountHandler(transactions, debtors, movements, investments, settings)
	protected.POST("/account/reset", accountHandler.Reset)
	protected.GET("/account/export", accountHandler.ExportJSON)

	exportHandler := handler.NewExportHandler(transactions)
	protected.GET("/export/csv", exportHandler.ExportCSV)
	protected.GET("/export/xlsx", exportHandler.ExportXLSX)

	return r
}
