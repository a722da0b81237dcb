package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/krowno/krowno/config"
	"github.com/krowno/krowno/internal/adapters/crypto"
	"github.com/krowno/krowno/internal/core/domain"
	"github.com/krowno/krowno/internal/core/services/backup"
	"github.com/krowno/krowno/pkg/errors"
	"github.com/krowno/krowno/pkg/logger"
	"github.com/krowno/krowno/pkg/secret"
	"github.com/krowno/krowno/pkg/system"
)

func main() {
	configPath := flag.String("config", "", "path to YAML configuration")
	showVersion := flag.Bool("version", false, "print version and exit")
	timeout := flag.Duration("timeout", 2*time.Minute, "wall-clock bound for the whole run")
	flag.Parse()

	if *showVersion {
		fmt.Println(system.BuildInfo())
		return
	}

	log := logger.New("krowno")
	defer log.Sync()

	log.Infow("starting backup tool", "build", system.BuildInfo())

	hostname, _ := system.Hostname()
	username, _ := system.Username()
	host := domain.SystemInfo{
		Hostname:     hostname,
		Username:     username,
		Platform:     system.Platform(),
		Architecture: system.Architecture(),
		IsRoot:       system.IsRoot(),
		Timestamp:    system.Timestamp(),
	}
	log.Infow("host identity",
		"hostname", host.Hostname,
		"username", host.Username,
		"platform", host.Platform,
		"architecture", host.Architecture,
		"root", host.IsRoot,
	)

	cfg := config.DefaultConfig()
	if *configPath != "" {
		loaded, err := config.LoadConfig(*configPath)
		if err != nil {
			log.Errorw("load config error", "path", *configPath, "error", err)
			os.Exit(1)
		}
		cfg = loaded
	}

	// An exported passphrase turns into an encryption key up front so a
	// bad Argon2 configuration fails the run before anything is captured.
	// The env var rather than a flag keeps the passphrase out of ps.
	if passphrase := os.Getenv("KROWNO_PASSPHRASE"); passphrase != "" {
		os.Unsetenv("KROWNO_PASSPHRASE")
		if err := deriveArchiveKey(log, cfg, []byte(passphrase)); err != nil {
			log.Errorw("derive archive key error", "error", err)
			os.Exit(1)
		}
	}

	service, err := backup.New(cfg.BackupOptions())
	if err != nil {
		if errors.IsValidationError(err) {
			ve := errors.AsValidationError(err)
			log.Errorw("create backup service error", "field", ve.Field, "value", ve.Value, "error", ve.Err)
		} else {
			log.Errorw("create backup service error", "error", err)
		}
		os.Exit(1)
	}

	runCtx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	if err := system.RunWithContext(runCtx, func(ctx context.Context) error {
		info, err := service.CaptureCommand(ctx, "system-report", "uname -a")
		if err != nil {
			return err
		}
		log.Infow("archive written",
			"path", info.Path,
			"digest", info.DigestPath,
			"original_bytes", info.OriginalSize,
			"compressed_bytes", info.CompressedSize,
			"level", info.Level,
		)

		restored, err := service.Restore(ctx, info.Path)
		if err != nil {
			return err
		}
		log.Infow("archive verified", "restored_bytes", len(restored))
		return nil
	}); err != nil {
		log.Errorw("backup run error", "error", err)
		os.Exit(1)
	}
}

// deriveArchiveKey moves the passphrase into locked memory, derives the
// archive key with the configured Argon2id parameters, and scrubs both
// before returning. The salt is logged so the same key can be derived
// again at restore time.
func deriveArchiveKey(log *zap.SugaredLogger, cfg *config.Config, passphrase []byte) error {
	hasher, err := crypto.NewPasswordHasher(cfg.HashOptions())
	if err != nil {
		return err
	}

	protected, err := secret.NewFromBytes(passphrase)
	if err != nil {
		return err
	}
	defer protected.Close()

	salt, err := hasher.NewSalt()
	if err != nil {
		return err
	}

	key, err := hasher.DeriveKey(protected, salt)
	if err != nil {
		return err
	}
	defer secret.Zero(key)

	log.Infow("archive key derived", "salt", fmt.Sprintf("%x", salt), "key_bytes", len(key))
	return nil
}
