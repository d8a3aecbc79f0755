package controllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/anibalps/escola-backend/config"
	"github.com/anibalps/escola-backend/models"
	"github.com/anibalps/escola-backend/services"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// setupTestDB abre um banco em memória isolado e o instala em config.DB.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.New().String())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("abrindo sqlite em memória: %v", err)
	}
	if err := config.Migrate(db); err != nil {
		t.Fatalf("migrando o schema de teste: %v", err)
	}

	previous := config.DB
	config.DB = db
	t.Cleanup(func() { config.DB = previous })
	return db
}

// captureMail troca o envio de e-mail por um stub que grava as mensagens.
type sentMail struct {
	To      string
	Subject string
	Body    string
}

func captureMail(t *testing.T, fail error) *[]sentMail {
	t.Helper()

	var sent []sentMail
	previous := sendMail
	sendMail = func(to, subject, body string) error {
		if fail != nil {
			return fail
		}
		sent = append(sent, sentMail{To: to, Subject: subject, Body: body})
		return nil
	}
	t.Cleanup(func() { sendMail = previous })
	return &sent
}

// asUser simula o AuthMiddleware colocando o usuário direto no contexto.
func asUser(user *models.User) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", user.ID.String())
		c.Set("current_user", user)
		c.Next()
	}
}

func createUser(t *testing.T, db *gorm.DB, email, password string, mutate func(*models.User)) *models.User {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("gerando hash de senha: %v", err)
	}
	user := &models.User{
		Name:       "Usuário de Teste",
		Email:      email,
		Password:   string(hashed),
		Role:       models.RoleProfessor,
		IsVerified: true,
	}
	if mutate != nil {
		mutate(user)
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("criando usuário de teste: %v", err)
	}
	return user
}

func performJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("serializando corpo da requisição: %v", err)
		}
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var out map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decodificando resposta %q: %v", w.Body.String(), err)
	}
	return out
}

// stubClassifier devolve sempre as mesmas predições (ou um erro fixo).
type stubClassifier struct {
	predictions []services.Prediction
	err         error
}

func (s *stubClassifier) Classify(image []byte) ([]services.Prediction, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.predictions, nil
}

func safePredictions() []services.Prediction {
	return []services.Prediction{
		{ClassName: "Neutral", Probability: 0.97},
		{ClassName: "Drawing", Probability: 0.02},
	}
}

func unsafePredictions() []services.Prediction {
	return []services.Prediction{
		{ClassName: "Porn", Probability: 0.83},
		{ClassName: "Neutral", Probability: 0.10},
	}
}

func setupPipeline(t *testing.T, classifier services.Classifier) *services.UploadPipeline {
	t.Helper()

	pipeline, err := services.NewUploadPipeline(t.TempDir(), classifier)
	if err != nil {
		t.Fatalf("criando pipeline de upload: %v", err)
	}
	return pipeline
}

func withUploader(pipeline *services.UploadPipeline) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("uploader", pipeline)
		c.Next()
	}
}

// pngBytes gera uma imagem PNG sólida para os testes de upload.
func pngBytes(t *testing.T, width, height int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.RGBA{R: 30, G: 120, B: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("codificando PNG de teste: %v", err)
	}
	return buf.Bytes()
}

type uploadPart struct {
	Field       string
	Filename    string
	ContentType string
	Data        []byte
}

func performMultipart(t *testing.T, r *gin.Engine, method, path string, fields map[string]string, parts []uploadPart) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			t.Fatalf("escrevendo campo %s: %v", key, err)
		}
	}
	for _, part := range parts {
		header := make(map[string][]string)
		header["Content-Disposition"] = []string{
			fmt.Sprintf(`form-data; name=%q; filename=%q`, part.Field, part.Filename),
		}
		header["Content-Type"] = []string{part.ContentType}
		fw, err := writer.CreatePart(header)
		if err != nil {
			t.Fatalf("criando parte multipart: %v", err)
		}
		if _, err := fw.Write(part.Data); err != nil {
			t.Fatalf("escrevendo parte multipart: %v", err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("fechando corpo multipart: %v", err)
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func countFiles(t *testing.T, dir string) int {
	t.Helper()

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("lendo diretório de uploads: %v", err)
	}
	return len(entries)
}
