package controllers

import (
	"encoding/json"
	"net/http"
	"net/url"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"github.com/anibalps/escola-backend/models"
	"github.com/anibalps/escola-backend/services"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func scheduleRouter(caller *models.User, pipeline *services.UploadPipeline) *gin.Engine {
	r := gin.New()
	r.Use(withUploader(pipeline))
	r.GET("/api/schedules", GetSchedules)
	schedules := r.Group("/api/schedules", asUser(caller))
	schedules.POST("", UploadSchedule)
	schedules.DELETE("/:className", DeleteSchedule)
	return r
}

func xlsxBytes(t *testing.T) []byte {
	t.Helper()
	workbook := excelize.NewFile()
	defer workbook.Close()
	if err := workbook.SetCellValue("Sheet1", "A1", "Segunda-feira"); err != nil {
		t.Fatal(err)
	}
	buf, err := workbook.WriteToBuffer()
	if err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestUploadScheduleCreateAndReplace(t *testing.T) {
	db := setupTestDB(t)
	caller := createUser(t, db, "secretaria@example.com", "senha123", func(u *models.User) {
		u.IsSecretaria = true
	})
	pipeline := setupPipeline(t, &stubClassifier{predictions: safePredictions()})
	r := scheduleRouter(caller, pipeline)

	w := performMultipart(t, r, http.MethodPost, "/api/schedules",
		map[string]string{"className": "6º Ano A"},
		[]uploadPart{{Field: "file", Filename: "horario.xlsx", ContentType: xlsxContentType, Data: xlsxBytes(t)}},
	)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, esperado 200: %s", w.Code, w.Body.String())
	}

	var schedule models.Schedule
	if err := db.Where("class_name = ?", "6º Ano A").First(&schedule).Error; err != nil {
		t.Fatalf("horário não criado: %v", err)
	}
	firstFile := schedule.FileURL

	// Reenvio para a mesma turma substitui o registro e o arquivo
	w = performMultipart(t, r, http.MethodPost, "/api/schedules",
		map[string]string{"className": "6º Ano A"},
		[]uploadPart{{Field: "file", Filename: "horario-novo.xlsx", ContentType: xlsxContentType, Data: xlsxBytes(t)}},
	)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, esperado 200: %s", w.Code, w.Body.String())
	}

	var count int64
	db.Model(&models.Schedule{}).Where("class_name = ?", "6º Ano A").Count(&count)
	if count != 1 {
		t.Fatalf("registros para a turma = %d, esperado 1", count)
	}
	if err := db.Where("class_name = ?", "6º Ano A").First(&schedule).Error; err != nil {
		t.Fatal(err)
	}
	if schedule.FileURL == firstFile {
		t.Fatal("arquivo não foi substituído")
	}
	if countFiles(t, pipeline.Dir) != 1 {
		t.Fatalf("artefatos no diretório = %d, esperado 1 (antigo removido)", countFiles(t, pipeline.Dir))
	}

	// A listagem devolve o mapa turma -> arquivo
	w = performJSON(t, r, http.MethodGet, "/api/schedules", nil)
	var listed map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &listed); err != nil {
		t.Fatalf("decodificando listagem: %v", err)
	}
	if listed["6º Ano A"] != schedule.FileURL {
		t.Fatalf("mapa de horários = %v", listed)
	}
}

func TestUploadScheduleRejectsNonSpreadsheet(t *testing.T) {
	db := setupTestDB(t)
	caller := createUser(t, db, "secretaria@example.com", "senha123", func(u *models.User) {
		u.IsSecretaria = true
	})
	pipeline := setupPipeline(t, &stubClassifier{predictions: safePredictions()})
	r := scheduleRouter(caller, pipeline)

	w := performMultipart(t, r, http.MethodPost, "/api/schedules",
		map[string]string{"className": "6º Ano A"},
		[]uploadPart{{Field: "file", Filename: "horario.png", ContentType: "image/png", Data: pngBytes(t, 10, 10)}},
	)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("imagem aceita como horário: status = %d", w.Code)
	}

	// xlsx de mentira com a extensão certa
	w = performMultipart(t, r, http.MethodPost, "/api/schedules",
		map[string]string{"className": "6º Ano A"},
		[]uploadPart{{Field: "file", Filename: "horario.xlsx", ContentType: xlsxContentType, Data: []byte("não é planilha")}},
	)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("payload inválido aceito: status = %d", w.Code)
	}

	var count int64
	db.Model(&models.Schedule{}).Count(&count)
	if count != 0 {
		t.Fatal("registro criado para upload rejeitado")
	}
}

func TestUploadScheduleRequiresClassName(t *testing.T) {
	db := setupTestDB(t)
	caller := createUser(t, db, "secretaria@example.com", "senha123", func(u *models.User) {
		u.IsSecretaria = true
	})
	pipeline := setupPipeline(t, &stubClassifier{predictions: safePredictions()})
	r := scheduleRouter(caller, pipeline)

	w := performMultipart(t, r, http.MethodPost, "/api/schedules",
		nil,
		[]uploadPart{{Field: "file", Filename: "horario.xlsx", ContentType: xlsxContentType, Data: xlsxBytes(t)}},
	)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, esperado 400", w.Code)
	}
}

func TestDeleteSchedule(t *testing.T) {
	db := setupTestDB(t)
	caller := createUser(t, db, "secretaria@example.com", "senha123", func(u *models.User) {
		u.IsSecretaria = true
	})
	pipeline := setupPipeline(t, &stubClassifier{predictions: safePredictions()})
	r := scheduleRouter(caller, pipeline)

	w := performMultipart(t, r, http.MethodPost, "/api/schedules",
		map[string]string{"className": "9º Ano B"},
		[]uploadPart{{Field: "file", Filename: "horario.xlsx", ContentType: xlsxContentType, Data: xlsxBytes(t)}},
	)
	if w.Code != http.StatusOK {
		t.Fatalf("seed falhou: %s", w.Body.String())
	}

	w = performJSON(t, r, http.MethodDelete, "/api/schedules/"+url.PathEscape("9º Ano B"), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}

	var count int64
	db.Model(&models.Schedule{}).Count(&count)
	if count != 0 {
		t.Fatal("registro permanece após a remoção")
	}
	if countFiles(t, pipeline.Dir) != 0 {
		t.Fatal("planilha permanece após a remoção")
	}

	w = performJSON(t, r, http.MethodDelete, "/api/schedules/"+url.PathEscape("9º Ano B"), nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, esperado 404", w.Code)
	}
}
