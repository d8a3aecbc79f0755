package controllers

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

type ChatInput struct {
	Message string `json:"message" binding:"required"`
}

const anibotPrompt = `Você é um assistente virtual para a escola "E.E. Profº Aníbal do Prado e Silva". Seu nome é Anibot. Você deve ser cordial, prestativo e informativo. Responda apenas a perguntas relacionadas à escola, como eventos, horários de aulas, história da escola, corpo docente e processo de matrícula. Se os usuários perguntarem sobre outros assuntos (como política, esportes ou tópicos não relacionados), recuse educadamente a resposta, dizendo que seu conhecimento é limitado a tópicos sobre a escola Aníbal.`

// HandleChatMessage repassa a mensagem do visitante para o Gemini com a
// instrução de sistema do Anibot.
func HandleChatMessage(c *gin.Context) {
	var input ChatInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nenhuma mensagem fornecida"})
		return
	}

	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(os.Getenv("GEMINI_API_KEY")))
	if err != nil {
		log.Printf("Erro ao criar cliente Gemini: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Desculpe, não consegui processar sua mensagem no momento"})
		return
	}
	defer client.Close()

	model := client.GenerativeModel("gemini-2.0-flash")

	chat := model.StartChat()
	chat.History = []*genai.Content{
		{Role: "user", Parts: []genai.Part{genai.Text(anibotPrompt)}},
		{Role: "model", Parts: []genai.Part{genai.Text("Olá! Sou o Anibot. Como posso ajudar com informações sobre a escola Aníbal do Prado e Silva?")}},
	}

	resp, err := chat.SendMessage(ctx, genai.Text(input.Message))
	if err != nil {
		log.Printf("Erro ao comunicar com a API do Gemini: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Desculpe, não consegui processar sua mensagem no momento"})
		return
	}
	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Desculpe, não consegui processar sua mensagem no momento"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"reply": fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0])})
}
