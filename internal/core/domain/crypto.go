package domain

// HashOptions are the Argon2id parameters for deriving keys from backup
// passwords. The defaults trade roughly half a second of derivation time
// for resistance to offline guessing on commodity hardware.
type HashOptions struct {
	// Iterations is the time parameter (number of passes).
	Iterations uint32

	// MemoryKiB is the memory parameter in KiB.
	MemoryKiB uint32

	// Parallelism is the number of lanes.
	Parallelism uint8

	// SaltLength is the required salt size in bytes. Salts shorter than
	// MinSaltLength are rejected.
	SaltLength uint32

	// KeyLength is the derived key size in bytes. Keys shorter than
	// MinKeyLength are rejected.
	KeyLength uint32
}

const (
	// MinSaltLength is the smallest accepted salt.
	MinSaltLength = 16

	// MinKeyLength is the smallest accepted derived key.
	MinKeyLength = 32
)
