package routes

import (
	"context"
	"log"

	_ "renomarket/docs" // This will be auto-generated
	"renomarket/internal/adapter/http/handlers"
	repository2 "renomarket/internal/adapter/persistence/repository"
	appconfig "renomarket/internal/infrastructure/config"
	"renomarket/internal/infrastructure/database"
	"renomarket/internal/infrastructure/events"
	"renomarket/internal/infrastructure/payments"
	"renomarket/internal/usecase"
	"renomarket/internal/usecase/interfaces"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

var router = gin.Default()

// Run will start the server
func Run() {
	cfg, err := appconfig.Load(".")
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	setMiddlewares()

	// Swagger documentation endpoint
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	getRoutes(cfg)

	if err := router.Run(":" + cfg.ServerPort); err != nil {
		log.Fatalf("Failed to startup the application: %v", err.Error())
	}
}

func getRoutes(cfg appconfig.Config) {
	policy, err := appconfig.LoadPolicy(cfg.PolicyFile)
	if err != nil {
		log.Fatalf("Failed to load pricing policy: %v", err)
	}

	ddb, err := database.NewDynamoDBClient(context.Background(), cfg)
	if err != nil {
		log.Fatalf("Failed to connect to DynamoDB: %v", err)
	}

	proposalRepo := repository2.NewProposalDynamoRepository(ddb)
	paymentRepo := repository2.NewPaymentDynamoRepository(ddb)
	templateRepo := repository2.NewMaterialTemplateDynamoRepository(ddb)
	contractorRepo := repository2.NewContractorDynamoRepository(ddb)
	jobRepo := repository2.NewJobDynamoRepository(ddb)

	var publisher interfaces.IEventPublisher = &events.NoopPublisher{}
	if cfg.RabbitMQURL != "" {
		producer, err := events.NewEventProducer(cfg.RabbitMQURL, cfg.EventExchange)
		if err != nil {
			log.Printf("[events] RabbitMQ unavailable, events disabled: %v", err)
		} else {
			publisher = producer
		}
	}

	var gateway interfaces.IPaymentGateway
	mpGateway, err := payments.NewMercadoPagoGateway(cfg.MPAccessToken)
	if err != nil {
		log.Printf("Mercado Pago gateway not configured: %v", err)
	} else {
		gateway = mpGateway
	}

	materialsUseCase := usecase.NewMaterialsUseCase(templateRepo)
	estimateUseCase := usecase.NewEstimateUseCase(policy.Pricing, contractorRepo, materialsUseCase, jobRepo)
	scoringUseCase := usecase.NewScoringUseCase(policy.Scoring)
	escrowUseCase := usecase.NewEscrowUseCase(policy.Escrow, paymentRepo, contractorRepo, gateway, publisher)
	proposalUseCase := usecase.NewProposalUseCase(proposalRepo, escrowUseCase, publisher)

	estimateHandler := handlers.NewEstimateHandler(estimateUseCase, materialsUseCase)
	proposalHandler := handlers.NewProposalHandler(proposalUseCase, scoringUseCase)
	paymentHandler := handlers.NewPaymentHandler(escrowUseCase, proposalUseCase, policy.Escrow.Currency)

	// Rotas publicas
	v1 := router.Group("/v1")
	addPingRoutes(v1)
	addMarketplaceRoutes(v1, estimateHandler, proposalHandler, paymentHandler)
}

func setMiddlewares() {
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Printf("Recovered from panic: %v", recovered)
		c.AbortWithStatus(500)
	}))
}
