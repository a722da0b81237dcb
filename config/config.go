package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/krowno/krowno/internal/core/domain"
)

type Config struct {
	StoragePath string            `yaml:"storage_path"` // Path for archives and sidecars
	Compression CompressionConfig `yaml:"compression"`
	Checksum    ChecksumConfig    `yaml:"checksum"`
	HTTP        HTTPConfig        `yaml:"http"`
	Command     CommandConfig     `yaml:"command"`
	Hash        HashConfig        `yaml:"hash"`
}

// CompressionConfig holds the archive codec policy.
type CompressionConfig struct {
	Level             int `yaml:"level"`              // Deflate level (-2 to 9)
	MaxAttempts       int `yaml:"max_attempts"`       // Expansion retry budget
	InitialMultiplier int `yaml:"initial_multiplier"` // First guess = multiplier × compressed size
	GrowthFactor      int `yaml:"growth_factor"`      // Capacity growth per retry
}

// ChecksumConfig holds the integrity sidecar settings.
type ChecksumConfig struct {
	Enable    bool   `yaml:"enable"`
	Algorithm string `yaml:"algorithm"` // crc32-ieee or sha256
}

// HTTPConfig holds the remote fetch settings.
type HTTPConfig struct {
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	UserAgent      string `yaml:"user_agent"`
	MaxRedirects   int    `yaml:"max_redirects"`
	MaxBodyBytes   int    `yaml:"max_body_bytes"` // 0 means unbounded
}

// CommandConfig holds the subprocess capture settings.
type CommandConfig struct {
	Shell          string `yaml:"shell"`
	ChunkSize      int    `yaml:"chunk_size"`
	MaxOutputBytes int    `yaml:"max_output_bytes"` // 0 means unbounded
}

// HashConfig holds the Argon2id password hashing parameters.
type HashConfig struct {
	Iterations  uint32 `yaml:"iterations"`
	MemoryKiB   uint32 `yaml:"memory_kib"`
	Parallelism uint8  `yaml:"parallelism"`
	SaltLength  uint32 `yaml:"salt_length"`
	KeyLength   uint32 `yaml:"key_length"`
}

// DefaultConfig returns a Config struct with reasonable default values.
func DefaultConfig() *Config {
	return &Config{
		StoragePath: "/var/lib/krowno/archives",
		Compression: CompressionConfig{
			Level:             6,
			MaxAttempts:       6,
			InitialMultiplier: 4,
			GrowthFactor:      2,
		},
		Checksum: ChecksumConfig{
			Enable:    true,
			Algorithm: "sha256",
		},
		HTTP: HTTPConfig{
			TimeoutSeconds: 30,
			MaxRedirects:   5,
		},
		Command: CommandConfig{
			Shell:     "/bin/sh",
			ChunkSize: 4096,
		},
		Hash: HashConfig{
			Iterations:  3,
			MemoryKiB:   64 * 1024,
			Parallelism: 4,
			SaltLength:  16,
			KeyLength:   32,
		},
	}
}

// LoadConfig loads configuration from a YAML file. Missing fields keep
// their defaults; the merged result is validated before it is returned.
func LoadConfig(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// BackupOptions converts the configuration into the backup service's
// domain options.
func (c *Config) BackupOptions() *domain.BackupOptions {
	return &domain.BackupOptions{
		StorageDirectory: c.StoragePath,
		CompressionOptions: &domain.CompressionOptions{
			DefaultLevel:      c.Compression.Level,
			MaxAttempts:       c.Compression.MaxAttempts,
			InitialMultiplier: c.Compression.InitialMultiplier,
			GrowthFactor:      c.Compression.GrowthFactor,
		},
		ChecksumOptions: &domain.ChecksumOptions{
			Enable:    c.Checksum.Enable,
			Algorithm: domain.ChecksumAlgorithm(c.Checksum.Algorithm),
		},
		CommandOptions: &domain.CommandOptions{
			Shell:          c.Command.Shell,
			ChunkSize:      c.Command.ChunkSize,
			MaxOutputBytes: c.Command.MaxOutputBytes,
		},
		TransportOptions: &domain.TransportOptions{
			TimeoutSeconds: c.HTTP.TimeoutSeconds,
			UserAgent:      c.HTTP.UserAgent,
			MaxRedirects:   c.HTTP.MaxRedirects,
			MaxBodyBytes:   c.HTTP.MaxBodyBytes,
		},
	}
}

// HashOptions converts the configuration into the password hashing
// domain options.
func (c *Config) HashOptions() *domain.HashOptions {
	return &domain.HashOptions{
		Iterations:  c.Hash.Iterations,
		MemoryKiB:   c.Hash.MemoryKiB,
		Parallelism: c.Hash.Parallelism,
		SaltLength:  c.Hash.SaltLength,
		KeyLength:   c.Hash.KeyLength,
	}
}

func validateConfig(config *Config) error {
	if config.StoragePath == "" {
		return fmt.Errorf("storage_path is required")
	}

	if config.Compression.Level < -2 || config.Compression.Level > 9 {
		return fmt.Errorf("compression level must be between -2 and 9")
	}

	if config.Compression.MaxAttempts < 1 {
		return fmt.Errorf("compression max_attempts must be at least 1")
	}

	if config.Compression.InitialMultiplier < 1 {
		return fmt.Errorf("compression initial_multiplier must be at least 1")
	}

	if config.Compression.GrowthFactor < 2 {
		return fmt.Errorf("compression growth_factor must be at least 2")
	}

	if config.HTTP.TimeoutSeconds < 1 {
		return fmt.Errorf("http timeout_seconds must be at least 1")
	}

	if config.HTTP.MaxRedirects < 0 {
		return fmt.Errorf("http max_redirects must not be negative")
	}

	if config.Command.Shell == "" {
		return fmt.Errorf("command shell is required")
	}

	if config.Command.ChunkSize < 1 {
		return fmt.Errorf("command chunk_size must be at least 1")
	}

	return nil
}
