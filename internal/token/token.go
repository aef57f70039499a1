package token

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/google/uuid"
)

// New gera um token de confirmação aleatório e o hash SHA-256
// hexadecimal persistido. O link enviado ao cliente carrega o próprio
// hash, que é a chave de lookup na confirmação.
func New() (raw string, hash string) {
	raw = uuid.NewString()
	return raw, Hash(raw)
}

func Hash(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
