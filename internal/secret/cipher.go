// Package secret encrypts portfolio notes at rest with fernet tokens.
package secret

import (
	"fmt"
	"strings"

	"github.com/fernet/fernet-go"

	"github.com/ndewijer/Property-Investment-Calculator-Backend/internal/apperrors"
)

// noExpiry disables the fernet timestamp check; notes never expire.
const noExpiry = -1

// NoteCipher encrypts and decrypts user notes.
//
// Keys are configured as a comma-separated list of base64 fernet keys. The first key
// encrypts; every key is tried on decryption, so a new key can be prepended without
// losing access to older notes. A cipher built from an empty key list is disabled and
// passes text through unchanged.
type NoteCipher struct {
	keys []*fernet.Key
}

// NewNoteCipher parses the configured key list.
func NewNoteCipher(encodedKeys string) (*NoteCipher, error) {
	var parts []string
	for _, k := range strings.Split(encodedKeys, ",") {
		if k = strings.TrimSpace(k); k != "" {
			parts = append(parts, k)
		}
	}
	if len(parts) == 0 {
		return &NoteCipher{}, nil
	}

	keys, err := fernet.DecodeKeys(parts...)
	if err != nil {
		return nil, fmt.Errorf("invalid notes encryption key: %w", err)
	}
	return &NoteCipher{keys: keys}, nil
}

// Enabled reports whether notes are encrypted.
func (c *NoteCipher) Enabled() bool {
	return c != nil && len(c.keys) > 0
}

// Encrypt returns the fernet token for plain, or plain itself when disabled.
func (c *NoteCipher) Encrypt(plain string) (string, error) {
	if !c.Enabled() {
		return plain, nil
	}
	tok, err := fernet.EncryptAndSign([]byte(plain), c.keys[0])
	if err != nil {
		return "", fmt.Errorf("%w: %w", apperrors.ErrFailedToEncryptNotes, err)
	}
	return string(tok), nil
}

// Decrypt reverses Encrypt. A token no configured key can verify yields
// apperrors.ErrFailedToDecryptNotes.
func (c *NoteCipher) Decrypt(stored string) (string, error) {
	if !c.Enabled() {
		return stored, nil
	}
	msg := fernet.VerifyAndDecrypt([]byte(stored), noExpiry, c.keys)
	if msg == nil {
		return "", apperrors.ErrFailedToDecryptNotes
	}
	return string(msg), nil
}

// GenerateKey returns a new random key in the encoding NewNoteCipher accepts.
func GenerateKey() (string, error) {
	var k fernet.Key
	if err := k.Generate(); err != nil {
		return "", fmt.Errorf("generate notes encryption key: %w", err)
	}
	return k.Encode(), nil
}
