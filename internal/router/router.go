package router

import (
	"Quiz-OCR-Match-Backend/internal/api"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func SetupRouter(quizHandler *api.QuizHandler, allowedOrigins []string) *gin.Engine {
	r := gin.Default()

	config := cors.DefaultConfig()
	if len(allowedOrigins) == 0 || (len(allowedOrigins) == 1 && allowedOrigins[0] == "*") {
		config.AllowAllOrigins = true
	} else {
		config.AllowOrigins = allowedOrigins
	}
	config.AllowHeaders = append(config.AllowHeaders, "Content-Type")
	r.Use(cors.New(config))

	apiV1 := r.Group("/api/v1")
	{
		apiV1.POST("/match", quizHandler.MatchTextHandler)
		apiV1.POST("/recognize", quizHandler.RecognizeHandler)
		apiV1.GET("/bank", quizHandler.BankInfoHandler)
		apiV1.POST("/bank/update", quizHandler.UpdateBankHandler)
		apiV1.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{"status": "UP"})
		})
	}

	return r
}
