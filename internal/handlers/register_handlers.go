package handlers

import (
	portssvc "github.com/finstock/finstock_backend/internal/core/ports/services"
	"github.com/finstock/finstock_backend/internal/middleware"
	"github.com/finstock/finstock_backend/pkg/config"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	dbPool *pgxpool.Pool,
) {
	registerCustomValidators()

	registerHomeRoutes(r, dbPool, cfg.EnableDBCheck)

	setupAPIV1Routes(r, services)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	services *portssvc.ServiceContainer,
) {
	// Every v1 route requires an actor identity for audit attribution
	v1 := r.Group("/api/v1", middleware.ActorMiddleware())

	registerAccountRoutes(v1, services.Account)
	registerTransactionRoutes(v1, services.Ledger)
	registerDebtRoutes(v1, services.Debt)
	registerNoteRoutes(v1, services.Note)
	registerReconciliationRoutes(v1, services.Reconciliation)
	registerAuditRoutes(v1, services.Audit)
	registerCapitalRoutes(v1, services.Capital)
	registerReportingRoutes(v1, services.Reporting)
}
