package services

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestHTTPClassifierClassify(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/classify" {
			http.NotFound(w, r)
			return
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/octet-stream" {
			t.Errorf("Content-Type = %s", ct)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"predictions":[{"className":"Neutral","probability":0.95},{"className":"Porn","probability":0.01}]}`))
	}))
	defer server.Close()

	classifier := NewHTTPClassifier(server.URL)
	predictions, err := classifier.Classify([]byte("payload de imagem"))
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if len(predictions) != 2 {
		t.Fatalf("previsões = %d, esperado 2", len(predictions))
	}
	if predictions[0].ClassName != "Neutral" || predictions[0].Probability != 0.95 {
		t.Fatalf("primeira previsão inesperada: %+v", predictions[0])
	}
	if IsUnsafe(predictions) {
		t.Fatal("lote neutro marcado como inseguro")
	}
}

func TestHTTPClassifierErrors(t *testing.T) {
	t.Run("status não-200", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "modelo não carregado", http.StatusServiceUnavailable)
		}))
		defer server.Close()

		if _, err := NewHTTPClassifier(server.URL).Classify([]byte("x")); err == nil {
			t.Fatal("erro do serviço não propagado")
		}
	})

	t.Run("resposta sem previsões", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"predictions":[]}`))
		}))
		defer server.Close()

		if _, err := NewHTTPClassifier(server.URL).Classify([]byte("x")); err == nil {
			t.Fatal("resposta vazia aceita")
		}
	})

	t.Run("serviço fora do ar", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		server.Close()

		if _, err := NewHTTPClassifier(server.URL).Classify([]byte("x")); err == nil {
			t.Fatal("falha de conexão não propagada")
		}
	})
}
