package api

import (
	"github.com/gin-gonic/gin"
	v1 "github.com/medfiscal/medfiscal/internal/api/v1"
	"github.com/medfiscal/medfiscal/internal/logger"
	"github.com/medfiscal/medfiscal/internal/rest/middleware"
)

// Handlers groups the route handlers wired by the fx container.
type Handlers struct {
	Health     *v1.HealthHandler
	Tax        *v1.TaxHandler
	Assessment *v1.AssessmentHandler
	Statement  *v1.StatementHandler
	Sped       *v1.SpedHandler
}

func NewRouter(handlers Handlers, logger *logger.Logger) *gin.Engine {
	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestIDMiddleware,
		middleware.ErrorHandler(),
	)

	router.GET("/health", handlers.Health.Health)

	group := router.Group("/v1")
	{
		group.POST("/taxes/invoices/:id/compute", handlers.Tax.ComputeInvoiceTax)

		group.POST("/assessments", handlers.Assessment.GenerateAssessment)
		group.GET("/assessments", handlers.Assessment.ListAssessments)
		group.GET("/assessments/:id", handlers.Assessment.GetAssessment)
		group.POST("/assessments/:id/payments", handlers.Assessment.RecordPayment)
		group.POST("/assessments/:id/overdue", handlers.Assessment.MarkOverdue)
		group.POST("/assessments/:id/installments", handlers.Assessment.StartInstallment)

		group.POST("/statements/income", handlers.Statement.GenerateIncomeStatement)
		group.POST("/statements/balance-sheet", handlers.Statement.GenerateBalanceSheet)

		group.POST("/sped/export", handlers.Sped.Export)
		group.POST("/sped/validate", handlers.Sped.Validate)
	}

	return router
}
