package main

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kando-edu/piar-api/config"
	"github.com/kando-edu/piar-api/controllers"
	"github.com/kando-edu/piar-api/database"
	"github.com/kando-edu/piar-api/routes"
	"github.com/kando-edu/piar-api/utils"
)

func main() {
	env, err := config.LoadEnv()
	if err != nil {
		log.Fatal("Error loading .env:", err)
	}

	pgClient, err := database.NewPostgresClient(env.DBHost, env.DBUser, env.DBPassword, env.DBName, env.DBPort)
	if err != nil {
		log.Fatal("Error connecting to database:", err)
	}

	redisClient, err := database.GetRedisClient(env.RedisAddr, env.RedisPass, env.RedisDB)
	if err != nil {
		log.Fatal("Error connecting to redis:", err)
	}

	mailer, err := utils.NewSMTPMailer(env.SMTPHost, env.SMTPPort, env.SMTPUser, env.SMTPPassword, env.SMTPFrom, env.SMTPFromName)
	if err != nil {
		log.Fatal("Error configuring mailer:", err)
	}

	authController := controllers.NewAuthController(pgClient, mailer, env)
	userController := controllers.NewUserController(pgClient)
	catalogController := controllers.NewCatalogController(pgClient, redisClient)
	dbaController := controllers.NewDbaController(pgClient)
	analysisController := controllers.NewAnalysisController(utils.NewGeminiClient(env.GeminiAPIKey, env.GeminiModel), env.GeminiModel)

	r := gin.Default()
	routes.SetupRoutes(r, authController, userController, catalogController, dbaController, analysisController)

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "API Kando PIAR funcionando correctamente"})
	})

	r.GET("/db-test", func(c *gin.Context) {
		if err := database.Ping(pgClient); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"message": "Error conectando a la base de datos",
				"error":   err.Error(),
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Conexión exitosa a la base de datos"})
	})

	if err := r.Run(":" + env.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
