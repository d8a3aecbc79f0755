package services

import (
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/anibalps/escola-backend/models"
)

// Notícias saem das listagens públicas após 3 meses corridos.
const NewsMaxAge = 3

var saoPaulo = mustLoadLocation("America/Sao_Paulo")

func mustLoadLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Printf("Não foi possível carregar o fuso %s, usando o local: %v", name, err)
		return time.Local
	}
	return loc
}

func startOfDay(now time.Time) time.Time {
	now = now.In(saoPaulo)
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, saoPaulo)
}

// SweepExpiredEvents desativa em lote todo evento ativo cuja data já passou
// (comparação apenas por dia: um evento de ontem expira, um de hoje não).
func SweepExpiredEvents(db *gorm.DB, now time.Time) (int64, error) {
	result := db.Model(&models.Event{}).
		Where("is_active = ? AND date < ?", true, startOfDay(now)).
		Update("is_active", false)
	return result.RowsAffected, result.Error
}

// SweepOldNotices desativa avisos criados antes da meia-noite de hoje.
func SweepOldNotices(db *gorm.DB, now time.Time) (int64, error) {
	result := db.Model(&models.Notice{}).
		Where("is_active = ? AND created_at < ?", true, startOfDay(now)).
		Update("is_active", false)
	return result.RowsAffected, result.Error
}

// SweepOldNews desativa notícias com mais de 3 meses. Chamado no caminho de
// leitura (varredura preguiçosa), não pelo job diário.
func SweepOldNews(db *gorm.DB, now time.Time) (int64, error) {
	result := db.Model(&models.News{}).
		Where("is_active = ? AND date < ?", true, now.AddDate(0, -NewsMaxAge, 0)).
		Update("is_active", false)
	return result.RowsAffected, result.Error
}

func runDailySweeps(db *gorm.DB) {
	now := time.Now()

	if count, err := SweepExpiredEvents(db, now); err != nil {
		log.Printf("Erro ao desativar eventos vencidos: %v", err)
	} else if count > 0 {
		log.Printf("Desativados %d eventos vencidos", count)
	}

	if count, err := SweepOldNotices(db, now); err != nil {
		log.Printf("Erro ao desativar avisos antigos: %v", err)
	} else if count > 0 {
		log.Printf("Desativados %d avisos antigos", count)
	}
}

// StartSweepJob roda a varredura uma vez na subida e depois todo dia à
// meia-noite (horário de São Paulo).
func StartSweepJob(db *gorm.DB) {
	log.Println("Rodando varredura inicial de conteúdo vencido...")
	runDailySweeps(db)

	go func() {
		for {
			now := time.Now().In(saoPaulo)
			next := startOfDay(now).AddDate(0, 0, 1)
			time.Sleep(next.Sub(now))

			log.Println("Iniciando tarefa diária de inativação de conteúdo vencido...")
			runDailySweeps(db)
		}
	}()

	log.Println("Tarefa de varredura agendada (diária, meia-noite America/Sao_Paulo)")
}
