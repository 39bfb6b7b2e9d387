// Package secrets cifra en reposo secretos pequeños (la contraseña de
// Apis Perú de cada usuario) con NaCl secretbox. El texto cifrado viaja y se
// persiste en base64, con el nonce antepuesto.
package secrets

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"

	"golang.org/x/crypto/nacl/secretbox"
)

const (
	keySize   = 32
	nonceSize = 24
)

// Box cifra y descifra con una clave simétrica fija (CREDENTIALS_KEY).
type Box struct {
	key [keySize]byte
}

// New construye un Box a partir de la clave en base64 (32 bytes decodificados).
func New(base64Key string) (*Box, error) {
	raw, err := base64.StdEncoding.DecodeString(base64Key)
	if err != nil {
		return nil, fmt.Errorf("secrets: clave no es base64 válido: %w", err)
	}
	if len(raw) != keySize {
		return nil, fmt.Errorf("secrets: la clave debe tener %d bytes, tiene %d", keySize, len(raw))
	}
	b := &Box{}
	copy(b.key[:], raw)
	return b, nil
}

// Encrypt cifra el texto y devuelve base64(nonce || ciphertext).
func (b *Box) Encrypt(plaintext string) (string, error) {
	var nonce [nonceSize]byte
	if _, err := rand.Read(nonce[:]); err != nil {
		return "", fmt.Errorf("secrets: generando nonce: %w", err)
	}
	sealed := secretbox.Seal(nonce[:], []byte(plaintext), &nonce, &b.key)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

// Decrypt revierte Encrypt. Falla si el texto fue manipulado o la clave cambió.
func (b *Box) Decrypt(stored string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(stored)
	if err != nil {
		return "", fmt.Errorf("secrets: texto cifrado no es base64 válido: %w", err)
	}
	if len(raw) < nonceSize+secretbox.Overhead {
		return "", fmt.Errorf("secrets: texto cifrado demasiado corto")
	}
	var nonce [nonceSize]byte
	copy(nonce[:], raw[:nonceSize])
	plain, ok := secretbox.Open(nil, raw[nonceSize:], &nonce, &b.key)
	if !ok {
		return "", fmt.Errorf("secrets: no se pudo descifrar (clave o datos inválidos)")
	}
	return string(plain), nil
}
