package v1

import (
	"net/http"

	"go-devnetwork-backend/config"
	"go-devnetwork-backend/internal/delivery/http/middleware"
	"go-devnetwork-backend/internal/delivery/http/response"
	"go-devnetwork-backend/internal/domain"
	"go-devnetwork-backend/pkg/token"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	AuthUC    domain.AuthUsecase
	ProfileUC domain.ProfileUsecase
	Tokens    *token.Service
	Config    *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(deps.Config.FrontendURL)) // CORS must be first!
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.RequestID())
	r.Use(middleware.ErrorHandler())

	// Health Check
	r.GET("/health", func(c *gin.Context) {
		response.JSON(c, http.StatusOK, gin.H{"status": "ok"})
	})

	// Swagger
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	public := r.Group("")

	protected := r.Group("")
	protected.Use(middleware.AuthGuard(deps.Tokens))

	NewUserHandler(public, deps.AuthUC)
	NewAuthHandler(public, protected, deps.AuthUC)
	NewProfileHandler(public, protected, deps.ProfileUC)

	return r
}
