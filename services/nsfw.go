package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Prediction é uma categoria prevista pelo classificador NSFW.
type Prediction struct {
	ClassName   string  `json:"className"`
	Probability float64 `json:"probability"`
}

// Classifier é o modelo de triagem de imagens. A implementação real fala com
// o serviço de classificação; nos testes usamos um stub.
type Classifier interface {
	Classify(image []byte) ([]Prediction, error)
}

// Limiar por categoria: mais rígido para conteúdo explícito.
var unsafeThresholds = map[string]float64{
	"Porn":   0.50,
	"Hentai": 0.50,
	"Sexy":   0.80,
}

// IsUnsafe aplica os limiares por categoria sobre as previsões.
func IsUnsafe(predictions []Prediction) bool {
	for _, p := range predictions {
		if limit, ok := unsafeThresholds[p.ClassName]; ok && p.Probability > limit {
			return true
		}
	}
	return false
}

// HTTPClassifier envia a imagem para o serviço NSFW e decodifica o resultado.
type HTTPClassifier struct {
	BaseURL string
	Client  *http.Client
}

func NewHTTPClassifier(baseURL string) *HTTPClassifier {
	return &HTTPClassifier{
		BaseURL: baseURL,
		Client:  &http.Client{Timeout: 30 * time.Second},
	}
}

func (h *HTTPClassifier) Classify(image []byte) ([]Prediction, error) {
	resp, err := h.Client.Post(h.BaseURL+"/classify", "application/octet-stream", bytes.NewReader(image))
	if err != nil {
		return nil, fmt.Errorf("erro ao chamar o classificador NSFW: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("classificador NSFW retornou %d: %s", resp.StatusCode, string(body))
	}

	var data struct {
		Predictions []Prediction `json:"predictions"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("erro ao ler JSON do classificador: %v", err)
	}
	if len(data.Predictions) == 0 {
		return nil, fmt.Errorf("classificador não retornou previsões")
	}
	return data.Predictions, nil
}
