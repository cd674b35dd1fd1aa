package testutils

import (
	"github.com/Harishkumar132003/service-app-backend/internal/api/handlers"
	"github.com/Harishkumar132003/service-app-backend/internal/api/routes"
	"github.com/Harishkumar132003/service-app-backend/internal/application"
	"github.com/gin-gonic/gin"
)

func SetupRouter(services *application.Services) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	routes.Register(r, handlers.New(services))
	return r
}
