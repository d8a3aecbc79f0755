package utils

import (
	"regexp"
	"testing"
)

var sixDigits = regexp.MustCompile(`^[0-9]{6}$`)

func TestGenerateVerificationCode(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 200; i++ {
		code, err := GenerateVerificationCode()
		if err != nil {
			t.Fatalf("GenerateVerificationCode: %v", err)
		}
		if !sixDigits.MatchString(code) {
			t.Fatalf("código fora do formato de 6 dígitos: %q", code)
		}
		seen[code] = true
	}
	// 200 sorteios num espaço de 1 milhão não deveriam colidir sempre
	if len(seen) < 2 {
		t.Fatal("códigos gerados sem variação")
	}
}

func TestGenerateResetToken(t *testing.T) {
	first, err := GenerateResetToken()
	if err != nil {
		t.Fatal(err)
	}
	second, err := GenerateResetToken()
	if err != nil {
		t.Fatal(err)
	}

	if len(first) != 40 {
		t.Fatalf("tamanho do token = %d, esperado 40 caracteres hex", len(first))
	}
	if first == second {
		t.Fatal("dois tokens consecutivos idênticos")
	}
}

func TestHashToken(t *testing.T) {
	hash := HashToken("abc123")
	if len(hash) != 64 {
		t.Fatalf("tamanho do hash = %d, esperado 64 caracteres hex", len(hash))
	}
	if hash != HashToken("abc123") {
		t.Fatal("hash não é determinístico")
	}
	if hash == HashToken("abc124") {
		t.Fatal("entradas diferentes com o mesmo hash")
	}
	if hash == "abc123" {
		t.Fatal("token devolvido sem hash")
	}
}
