package ports

import "github.com/krowno/krowno/pkg/secret"

// CryptoPort derives encryption keys from backup passwords.
type CryptoPort interface {
	// Hash derives a key from a plaintext password and salt.
	Hash(password, salt []byte) ([]byte, error)

	// DeriveKey derives a key from a password held in protected memory.
	DeriveKey(password *secret.Buffer, salt []byte) ([]byte, error)
}
