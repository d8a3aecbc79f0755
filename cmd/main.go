package main

import (
	"log"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/anibalps/escola-backend/config"
	"github.com/anibalps/escola-backend/routes"
	"github.com/anibalps/escola-backend/services"
)

func main() {
	// Carrega o .env
	if err := godotenv.Load(); err != nil {
		log.Println("Arquivo .env não encontrado")
	}

	config.InitDB()

	uploadDir := os.Getenv("UPLOAD_FOLDER")
	if uploadDir == "" {
		uploadDir = "uploads"
	}

	// Classificador construído uma única vez e injetado no pipeline
	classifier := services.NewHTTPClassifier(os.Getenv("NSFW_API_URL"))
	pipeline, err := services.NewUploadPipeline(uploadDir, classifier)
	if err != nil {
		log.Fatal("Erro ao preparar o diretório de uploads:", err)
	}

	// Varredura diária de eventos e avisos vencidos
	services.StartSweepJob(config.DB)

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	// Artefatos derivados servidos direto do diretório de uploads
	r.Static(pipeline.PublicPrefix, uploadDir)

	r = routes.SetupRouter(r, config.DB, pipeline)

	port := os.Getenv("PORT")
	if port == "" {
		port = "5000"
	}

	log.Println("Servidor rodando na porta " + port)
	r.Run(":" + port)
}
