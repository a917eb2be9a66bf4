// api/routes/router.go
package routes

import (
	"net/http"
	"time"

	"eventx/internal/auth"
	"eventx/internal/chain"
	"eventx/internal/events"
	"eventx/internal/images"
	"eventx/internal/metadata"
	"eventx/internal/notifications"
	"eventx/internal/organizer"
	"eventx/internal/refunds"
	"eventx/internal/settlement"
	"eventx/internal/shared/config"
	"eventx/internal/shared/database"
	"eventx/internal/shared/metrics"
	"eventx/internal/tickets"
	"eventx/pkg/cache"
	"eventx/pkg/logger"

	_ "eventx/docs"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Router holds all route dependencies
type Router struct {
	config    *config.Config
	db        *database.DB
	contract  *chain.TicketContract
	publisher notifications.LifecycleProducer

	imageService images.Service // shared by events and organizer
	eventService events.Service
	chainAdapter chain.Adapter
}

// NewRouter creates a new router instance
func NewRouter(cfg *config.Config, db *database.DB, contract *chain.TicketContract) *Router {
	return &Router{
		config:       cfg,
		db:           db,
		contract:     contract,
		chainAdapter: chain.EvmAdapter{RequiredChainID: cfg.Chain.ChainID},
	}
}

// SetPublisher enables lifecycle messages for settlement and organizer flows.
func (r *Router) SetPublisher(publisher notifications.LifecycleProducer) {
	r.publisher = publisher
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	// Health check, metrics and docs
	r.setupHealthRoutes(engine)

	// Settlement keeps its fixed path outside the versioned API
	r.setupSettlementRoutes(engine.Group("/api"))

	api := engine.Group(r.config.GetAPIBasePath())
	{
		r.setupAuthRoutes(api)

		// Image store must exist before event and organizer routes
		r.setupImageService()
		r.setupEventRoutes(api)

		r.setupTicketRoutes(api)
		r.setupMetadataRoutes(api)
		r.setupOrganizerRoutes(api)
	}
}

// setupHealthRoutes sets up health check and system status routes
func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		if err := r.db.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":     "unhealthy",
				"error":      err.Error(),
				"components": r.db.Status(c.Request.Context()),
				"timestamp":  time.Now(),
				"service":    "eventx-backend",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   "eventx-backend",
			"chain_id":  r.config.Chain.ChainID,
			"contract":  r.contract.Address().Hex(),
		})
	})

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"version": r.config.APIVersion,
		})
	})

	engine.GET("/status", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":      "operational",
			"api_version": r.config.APIVersion,
			"settlement":  r.config.SettlementEnabled(),
			"timestamp":   time.Now(),
		})
	})

	engine.GET("/metrics", metrics.Handler())
	engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}

// setupSettlementRoutes configures server-signed minting
func (r *Router) setupSettlementRoutes(rg *gin.RouterGroup) {
	settlementRepo := settlement.NewRepository(r.db.GetPostgreSQL())
	settlementService := settlement.NewService(r.contract, settlementRepo, r.config.Chain.SettlementKey)
	if r.publisher != nil {
		settlementService.SetPublisher(r.publisher)
	}
	settlementController := settlement.NewController(settlementService)

	settlement.SetupSettlementRoutes(rg, settlementController)
}

// setupAuthRoutes configures wallet sign-in routes
func (r *Router) setupAuthRoutes(rg *gin.RouterGroup) {
	nonceStore := auth.NewRedisNonceStore(r.db.GetRedisClient())
	authService := auth.NewService(nonceStore, r.config)
	authController := auth.NewController(authService)

	auth.SetupAuthRoutes(rg, authController, r.config)
}

func (r *Router) setupImageService() {
	imageRepo := images.NewRepository(r.db.GetPostgreSQL())
	r.imageService = images.NewService(imageRepo, r.config.Redis.ImageCacheTTL)
	if client := r.db.GetRedisClient(); client != nil {
		r.imageService.SetCacheService(cache.NewService(client))
	}
}

// setupEventRoutes configures public event browsing
func (r *Router) setupEventRoutes(rg *gin.RouterGroup) {
	r.eventService = events.NewService(r.contract, r.imageService, r.config.Chain.FetchConcurrency)
	r.eventService.SetMaxItems(uint64(r.config.Chain.MaxEnumeration))
	eventController := events.NewController(r.eventService)

	events.SetupEventRoutes(rg, eventController)
}

// setupTicketRoutes configures ticket listing, verification and refunds
func (r *Router) setupTicketRoutes(rg *gin.RouterGroup) {
	source, err := refunds.ParseSource(r.config.Chain.EligibilitySource)
	if err != nil {
		logger.GetDefault().WithError(err).Warn("unknown eligibility source, using contract_with_fallback")
		source = refunds.SourceContractWithFallback
	}
	resolver := refunds.NewResolver(source, r.contract)

	ticketService := tickets.NewService(r.contract, resolver, r.chainAdapter, r.config.Chain.FetchConcurrency)
	ticketService.SetMaxItems(uint64(r.config.Chain.MaxEnumeration))
	ticketController := tickets.NewController(ticketService, r.config.PublicOrigin)

	tickets.SetupTicketRoutes(rg, ticketController, r.config)
}

// setupMetadataRoutes configures the NFT viewer
func (r *Router) setupMetadataRoutes(rg *gin.RouterGroup) {
	metadataService := metadata.NewService(r.contract)
	metadataController := metadata.NewController(metadataService)

	metadata.SetupMetadataRoutes(rg, metadataController)
}

// setupOrganizerRoutes configures the organizer dashboard and event creation
func (r *Router) setupOrganizerRoutes(rg *gin.RouterGroup) {
	organizerService := organizer.NewService(r.contract, r.eventService, r.imageService, r.chainAdapter)
	if r.publisher != nil {
		organizerService.SetPublisher(r.publisher)
	}
	organizerController := organizer.NewController(organizerService)

	organizer.SetupOrganizerRoutes(rg, organizerController, r.config)
}
