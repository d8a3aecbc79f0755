package utils

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math/big"
)

var oneMillion = big.NewInt(1000000)

// GenerateVerificationCode devolve um código decimal de exatamente 6 dígitos,
// uniforme, com zeros à esquerda permitidos.
func GenerateVerificationCode() (string, error) {
	n, err := rand.Int(rand.Reader, oneMillion)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// GenerateResetToken devolve o token em claro (enviado por e-mail): 20 bytes
// aleatórios em hex. Apenas o hash dele é persistido.
func GenerateResetToken() (string, error) {
	raw := make([]byte, 20)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	return hex.EncodeToString(raw), nil
}

// HashToken aplica SHA-256 e devolve o digest em hex, o mesmo formato
// armazenado em users.reset_password_token.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
