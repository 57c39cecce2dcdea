package handler

import (
	"branch-cash-ledger/internal/adapter/http/middleware"
	"branch-cash-ledger/internal/core/ports"
	"branch-cash-ledger/internal/observability"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	WalletLedger   ports.WalletLedger
	AllocationMgr  ports.FloatAllocationManager
	DrawerLedger   ports.TellerDrawerLedger
	ReconEngine    ports.ReconciliationEngine
	AlertMonitor   ports.SecurityAlertMonitor
	AuditTrail     ports.AuditTrail
	TokenSvc       ports.TokenService
	RateLimitStore ports.RateLimitStore // nil = rate limiting disabled
	HealthCheckers []ports.HealthChecker
	Metrics        *observability.Metrics // nil = metrics endpoint disabled
	Logger         zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.MaxBodySize(1 << 20)) // 1 MB request body limit

	// Health check (deep, verifies PostgreSQL and Redis)
	r.GET("/health", HealthCheck(deps.HealthCheckers...))

	// Prometheus scrape endpoint
	if deps.Metrics != nil {
		r.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))
	}

	// Rate limit rules
	rules := middleware.DefaultRateLimitRules()

	// Helper: return rate limiter middleware if store is available, else noop.
	rl := func(group string) gin.HandlerFunc {
		if deps.RateLimitStore == nil {
			return func(c *gin.Context) { c.Next() }
		}
		rule, ok := rules[group]
		if !ok {
			return func(c *gin.Context) { c.Next() }
		}
		return middleware.RateLimiter(deps.RateLimitStore, group, rule, deps.Logger)
	}

	// All ledger routes require an authenticated branch actor.
	jwtAuth := middleware.JWTAuth(deps.TokenSvc, deps.Logger)
	v1 := r.Group("/api/v1", jwtAuth)

	walletHandler := NewWalletHandler(deps.WalletLedger)
	wallets := v1.Group("/wallets")
	{
		wallets.POST("", rl("wallet_txns"), walletHandler.Create)
		wallets.GET("/:id", rl("reads"), walletHandler.Get)
		wallets.GET("/:id/balances", rl("reads"), walletHandler.Balances)
		wallets.POST("/:id/close", rl("wallet_txns"), walletHandler.Close)
		wallets.POST("/:id/transactions", rl("wallet_txns"), walletHandler.Apply)
	}

	walletTxns := v1.Group("/wallet-transactions")
	{
		walletTxns.POST("/:id/approve", rl("approvals"), walletHandler.Approve)
		walletTxns.POST("/:id/reject", rl("approvals"), walletHandler.Reject)
		walletTxns.POST("/:id/reversals", rl("approvals"), walletHandler.RequestReversal)
	}

	reversals := v1.Group("/reversals")
	{
		reversals.POST("/:id/approve", rl("approvals"), walletHandler.ApproveReversal)
		reversals.POST("/:id/reject", rl("approvals"), walletHandler.RejectReversal)
	}

	allocationHandler := NewAllocationHandler(deps.AllocationMgr)
	allocations := v1.Group("/allocations")
	{
		allocations.POST("", rl("allocations"), allocationHandler.Allocate)
		allocations.GET("/:id", rl("reads"), allocationHandler.Get)
		allocations.POST("/:id/approve", rl("approvals"), allocationHandler.Approve)
		allocations.POST("/:id/reject", rl("approvals"), allocationHandler.Reject)
		allocations.POST("/:id/recall", rl("allocations"), allocationHandler.Recall)
	}

	drawerHandler := NewDrawerHandler(deps.DrawerLedger)
	drawers := v1.Group("/drawers")
	{
		drawers.POST("", rl("drawer_txns"), drawerHandler.Open)
		drawers.GET("/:id", rl("reads"), drawerHandler.Get)
		drawers.POST("/:id/transactions", rl("drawer_txns"), drawerHandler.Record)
		drawers.POST("/:id/close", rl("drawer_txns"), drawerHandler.Close)
	}

	reconciliationHandler := NewReconciliationHandler(deps.ReconEngine)
	v1.POST("/reconciliations/:id/approve", rl("approvals"), reconciliationHandler.ApproveVariance)

	alertHandler := NewAlertHandler(deps.AlertMonitor)
	alerts := v1.Group("/alerts")
	{
		alerts.GET("", rl("reads"), alertHandler.List)
		alerts.POST("/:id/resolve", rl("approvals"), alertHandler.Resolve)
	}

	auditHandler := NewAuditHandler(deps.AuditTrail)
	v1.GET("/audit/:entityID", rl("reads"), auditHandler.Query)

	return r
}
