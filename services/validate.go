package services

import (
	"bytes"
	"errors"

	"github.com/ledongthuc/pdf"
	"github.com/xuri/excelize/v2"
)

var (
	ErrInvalidPDF  = errors.New("o arquivo enviado não é um PDF válido")
	ErrInvalidXLSX = errors.New("o arquivo enviado não é uma planilha Excel válida")
)

// ValidatePDF confirma que o payload abre como PDF antes de persistir.
func ValidatePDF(data []byte) error {
	if _, err := pdf.NewReader(bytes.NewReader(data), int64(len(data))); err != nil {
		return ErrInvalidPDF
	}
	return nil
}

// ValidateXLSX confirma que o payload abre como planilha com ao menos uma aba.
func ValidateXLSX(data []byte) error {
	workbook, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return ErrInvalidXLSX
	}
	defer workbook.Close()

	if workbook.SheetCount == 0 {
		return ErrInvalidXLSX
	}
	return nil
}
