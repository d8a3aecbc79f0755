package services

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

const (
	// Teto fixo de upload (mesmo limite para imagens e documentos)
	MaxUploadSize = 5 * 1024 * 1024

	// Largura máxima da versão de exibição e da miniatura da galeria
	DisplayMaxWidth = 1600
	ThumbWidth      = 400
	JPEGQuality     = 80
)

var (
	ErrFileTooLarge    = errors.New("o arquivo excede o limite de 5MB")
	ErrUnsupportedType = errors.New("apenas imagens, PDFs e arquivos do Excel são permitidos")
	ErrUnsafeContent   = errors.New("CONTEÚDO BLOQUEADO: imagem imprópria detectada")
)

// Tipo declarado e extensão precisam concordar.
var allowedTypes = map[string][]string{
	".jpeg": {"image/jpeg"},
	".jpg":  {"image/jpeg", "image/jpg"},
	".png":  {"image/png"},
	".gif":  {"image/gif"},
	".pdf":  {"application/pdf"},
	".xlsx": {"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"},
	".xls":  {"application/vnd.ms-excel"},
}

var imageExts = map[string]bool{".jpeg": true, ".jpg": true, ".png": true, ".gif": true}

// UploadPipeline recebe payloads binários, faz a triagem, transforma e
// persiste os artefatos derivados no diretório de uploads. O classificador é
// construído uma única vez no main e injetado aqui.
type UploadPipeline struct {
	Dir          string
	PublicPrefix string
	Classifier   Classifier
}

func NewUploadPipeline(dir string, classifier Classifier) (*UploadPipeline, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("não foi possível criar o diretório de uploads: %v", err)
	}
	return &UploadPipeline{
		Dir:          dir,
		PublicPrefix: "/" + filepath.Base(dir),
		Classifier:   classifier,
	}, nil
}

// CheckConstraints valida tamanho e tipo (content-type declarado E extensão).
func (p *UploadPipeline) CheckConstraints(fh *multipart.FileHeader) error {
	if fh.Size > MaxUploadSize {
		return ErrFileTooLarge
	}

	ext := strings.ToLower(filepath.Ext(fh.Filename))
	mimes, ok := allowedTypes[ext]
	if !ok {
		return ErrUnsupportedType
	}

	declared := fh.Header.Get("Content-Type")
	for _, m := range mimes {
		if declared == m {
			return nil
		}
	}
	return ErrUnsupportedType
}

// IsImage informa se o arquivo é uma imagem pela extensão.
func (p *UploadPipeline) IsImage(fh *multipart.FileHeader) bool {
	return imageExts[strings.ToLower(filepath.Ext(fh.Filename))]
}

// ReadFile carrega o conteúdo do upload em memória.
func (p *UploadPipeline) ReadFile(fh *multipart.FileHeader) ([]byte, error) {
	file, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return io.ReadAll(file)
}

// Screen roda o classificador sobre a imagem. Qualquer falha de
// classificação é tratada como conteúdo inseguro (fail closed).
func (p *UploadPipeline) Screen(image []byte) error {
	predictions, err := p.Classifier.Classify(image)
	if err != nil {
		log.Printf("Erro no classificador NSFW (bloqueando por política): %v", err)
		return ErrUnsafeContent
	}
	if IsUnsafe(predictions) {
		return ErrUnsafeContent
	}
	return nil
}

// SaveImage reencoda a imagem como JPEG comprimido com largura limitada e a
// grava sob um nome gerado. Devolve o caminho público do artefato.
func (p *UploadPipeline) SaveImage(image []byte, baseName string) (string, error) {
	return p.saveResized(image, baseName, DisplayMaxWidth)
}

// SaveImageWithThumb gera a versão de exibição e a miniatura a partir do
// mesmo buffer de origem (uploads da galeria). Se a miniatura falhar, a
// versão de exibição já gravada é removida.
func (p *UploadPipeline) SaveImageWithThumb(image []byte, baseName string) (string, string, error) {
	display, err := p.saveResized(image, baseName, DisplayMaxWidth)
	if err != nil {
		return "", "", err
	}
	thumb, err := p.saveResized(image, baseName+"-thumb", ThumbWidth)
	if err != nil {
		p.Remove(display)
		return "", "", err
	}
	return display, thumb, nil
}

func (p *UploadPipeline) saveResized(image []byte, baseName string, maxWidth int) (string, error) {
	decoded, err := imaging.Decode(bytes.NewReader(image))
	if err != nil {
		return "", fmt.Errorf("não foi possível decodificar a imagem: %v", err)
	}

	if decoded.Bounds().Dx() > maxWidth {
		decoded = imaging.Resize(decoded, maxWidth, 0, imaging.Lanczos)
	}

	name := fmt.Sprintf("%s-%s.jpg", slug.Make(baseName), uuid.New().String())
	if err := imaging.Save(decoded, filepath.Join(p.Dir, name), imaging.JPEGQuality(JPEGQuality)); err != nil {
		return "", fmt.Errorf("não foi possível gravar a imagem: %v", err)
	}
	return p.PublicPrefix + "/" + name, nil
}

// SaveRaw grava o payload sem transformação (PDF do cardápio, planilhas).
func (p *UploadPipeline) SaveRaw(data []byte, baseName, ext string) (string, error) {
	name := fmt.Sprintf("%s-%s%s", slug.Make(baseName), uuid.New().String(), strings.ToLower(ext))
	if err := os.WriteFile(filepath.Join(p.Dir, name), data, 0o644); err != nil {
		return "", fmt.Errorf("não foi possível gravar o arquivo: %v", err)
	}
	return p.PublicPrefix + "/" + name, nil
}

// Remove apaga artefatos pelo caminho público (compensação em caso de falha
// e substituição de arquivos antigos). Melhor esforço: só registra erros.
func (p *UploadPipeline) Remove(publicPaths ...string) {
	for _, publicPath := range publicPaths {
		if publicPath == "" {
			continue
		}
		name := strings.TrimPrefix(publicPath, p.PublicPrefix+"/")
		if name == publicPath || strings.Contains(name, "..") || strings.ContainsRune(name, os.PathSeparator) {
			log.Printf("Caminho de artefato inesperado, ignorando: %s", publicPath)
			continue
		}
		if err := os.Remove(filepath.Join(p.Dir, name)); err != nil && !os.IsNotExist(err) {
			log.Printf("Erro ao remover artefato %s: %v", publicPath, err)
		}
	}
}
