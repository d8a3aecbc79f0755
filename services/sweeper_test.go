package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/anibalps/escola-backend/models"
)

func sweepTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.New().String())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("abrindo sqlite em memória: %v", err)
	}
	if err := db.AutoMigrate(&models.Event{}, &models.Notice{}, &models.News{}); err != nil {
		t.Fatalf("migrando: %v", err)
	}
	return db
}

func TestSweepExpiredEvents(t *testing.T) {
	db := sweepTestDB(t)

	// Referência fixa: 15 de março, 10h em São Paulo
	now := time.Date(2026, time.March, 15, 10, 0, 0, 0, saoPaulo)

	yesterday := models.Event{Title: "Ontem", Description: "x", Date: now.AddDate(0, 0, -1), IsActive: true}
	earlierToday := models.Event{Title: "Hoje cedo", Description: "x", Date: now.Add(-3 * time.Hour), IsActive: true}
	tomorrow := models.Event{Title: "Amanhã", Description: "x", Date: now.AddDate(0, 0, 1), IsActive: true}
	alreadyInactive := models.Event{Title: "Inativo", Description: "x", Date: now.AddDate(0, 0, -10), IsActive: false}

	for _, e := range []*models.Event{&yesterday, &earlierToday, &tomorrow, &alreadyInactive} {
		if err := db.Create(e).Error; err != nil {
			t.Fatal(err)
		}
	}

	count, err := SweepExpiredEvents(db, now)
	if err != nil {
		t.Fatalf("SweepExpiredEvents: %v", err)
	}
	if count != 1 {
		t.Fatalf("eventos desativados = %d, esperado 1", count)
	}

	assertActive := func(id uuid.UUID, want bool, label string) {
		t.Helper()
		var e models.Event
		if err := db.First(&e, "id = ?", id).Error; err != nil {
			t.Fatal(err)
		}
		if e.IsActive != want {
			t.Fatalf("%s: is_active = %v, esperado %v", label, e.IsActive, want)
		}
	}

	// Corte por dia: evento de hoje segue ativo mesmo com horário passado
	assertActive(yesterday.ID, false, "evento de ontem")
	assertActive(earlierToday.ID, true, "evento de hoje")
	assertActive(tomorrow.ID, true, "evento de amanhã")
	assertActive(alreadyInactive.ID, false, "evento já inativo")
}

func TestSweepExpiredEventsIdempotent(t *testing.T) {
	db := sweepTestDB(t)
	now := time.Now()

	event := models.Event{Title: "Vencido", Description: "x", Date: now.AddDate(0, 0, -2), IsActive: true}
	if err := db.Create(&event).Error; err != nil {
		t.Fatal(err)
	}

	if count, err := SweepExpiredEvents(db, now); err != nil || count != 1 {
		t.Fatalf("primeira varredura: count = %d, err = %v", count, err)
	}
	if count, err := SweepExpiredEvents(db, now); err != nil || count != 0 {
		t.Fatalf("segunda varredura: count = %d, err = %v", count, err)
	}
}

func TestSweepOldNotices(t *testing.T) {
	db := sweepTestDB(t)
	now := time.Date(2026, time.March, 15, 10, 0, 0, 0, saoPaulo)

	old := models.Notice{Content: "Aviso antigo", Author: "Secretaria", IsActive: true}
	fresh := models.Notice{Content: "Aviso de hoje", Author: "Secretaria", IsActive: true}
	for _, n := range []*models.Notice{&old, &fresh} {
		if err := db.Create(n).Error; err != nil {
			t.Fatal(err)
		}
	}
	// created_at controlado manualmente para o cenário
	db.Model(&old).Update("created_at", now.AddDate(0, 0, -2))
	db.Model(&fresh).Update("created_at", now.Add(-time.Hour))

	count, err := SweepOldNotices(db, now)
	if err != nil {
		t.Fatalf("SweepOldNotices: %v", err)
	}
	if count != 1 {
		t.Fatalf("avisos desativados = %d, esperado 1", count)
	}

	var reloaded models.Notice
	if err := db.First(&reloaded, "id = ?", fresh.ID).Error; err != nil {
		t.Fatal(err)
	}
	if !reloaded.IsActive {
		t.Fatal("aviso publicado hoje foi desativado")
	}
}

func TestSweepOldNews(t *testing.T) {
	db := sweepTestDB(t)
	now := time.Now()

	old := models.News{Title: "Velha", Content: "x", Image: "/uploads/a.jpg", AuthorEmail: "a@b.c", Date: now.AddDate(0, -NewsMaxAge, -1), IsActive: true}
	borderline := models.News{Title: "No limite", Content: "x", Image: "/uploads/b.jpg", AuthorEmail: "a@b.c", Date: now.AddDate(0, -NewsMaxAge, 1), IsActive: true}
	for _, n := range []*models.News{&old, &borderline} {
		if err := db.Create(n).Error; err != nil {
			t.Fatal(err)
		}
	}

	count, err := SweepOldNews(db, now)
	if err != nil {
		t.Fatalf("SweepOldNews: %v", err)
	}
	if count != 1 {
		t.Fatalf("notícias desativadas = %d, esperado 1", count)
	}

	var reloaded models.News
	if err := db.First(&reloaded, "id = ?", borderline.ID).Error; err != nil {
		t.Fatal(err)
	}
	if !reloaded.IsActive {
		t.Fatal("notícia dentro da janela de 3 meses foi desativada")
	}
}
