package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/MKhiriev/vault-keeper/internal/logger"
)

const (
	vaultFileExt  = ".vault"
	vaultFileMode = 0o600
	vaultDirMode  = 0o700

	// TempFilePattern matches the temporary siblings created by Write. A
	// crash between create and rename leaves one behind.
	TempFilePattern = ".vault-*.tmp"
)

// vaultFileStorage keeps every encrypted vault as one file inside dir.
// Writes go to a temporary sibling which is synced and then renamed over
// the target, so readers only ever see a complete old or a complete new
// vault.
type vaultFileStorage struct {
	dir    string
	logger *logger.Logger

	rename func(oldpath, newpath string) error
}

// NewVaultFileStorage returns a [VaultFileStorage] rooted at dir, creating
// the directory when it does not exist.
func NewVaultFileStorage(dir string, log *logger.Logger) (VaultFileStorage, error) {
	if dir == "" {
		return nil, fmt.Errorf("%w: empty vault directory", ErrVaultIO)
	}
	if err := os.MkdirAll(dir, vaultDirMode); err != nil {
		log.Err(err).Str("func", "NewVaultFileStorage").Msg("error creating vault directory")
		return nil, fmt.Errorf("%w: %w", ErrVaultIO, err)
	}
	log.Debug().Str("dir", dir).Msg("creating vault file storage")

	return &vaultFileStorage{
		dir:    dir,
		logger: log,
		rename: os.Rename,
	}, nil
}

func (s *vaultFileStorage) NewVaultPath() string {
	return filepath.Join(s.dir, uuid.NewString()+vaultFileExt)
}

func (s *vaultFileStorage) Read(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	blob, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrVaultNotFound
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*vaultFileStorage.Read").Msg("error reading vault file")
		return nil, fmt.Errorf("%w: %w", ErrVaultIO, err)
	}

	return blob, nil
}

func (s *vaultFileStorage) Write(ctx context.Context, path string, blob []byte) (err error) {
	if err = ctx.Err(); err != nil {
		return err
	}
	log := logger.FromContext(ctx)

	tmp, err := os.CreateTemp(filepath.Dir(path), TempFilePattern)
	if err != nil {
		log.Err(err).Str("func", "*vaultFileStorage.Write").Msg("error creating temp file")
		return fmt.Errorf("%w: %w", ErrVaultIO, err)
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmpName)
		}
	}()

	if _, err = tmp.Write(blob); err != nil {
		log.Err(err).Str("func", "*vaultFileStorage.Write").Msg("error writing temp file")
		return fmt.Errorf("%w: %w", ErrVaultIO, err)
	}
	if err = tmp.Sync(); err != nil {
		log.Err(err).Str("func", "*vaultFileStorage.Write").Msg("error syncing temp file")
		return fmt.Errorf("%w: %w", ErrVaultIO, err)
	}
	if err = tmp.Chmod(vaultFileMode); err != nil {
		log.Err(err).Str("func", "*vaultFileStorage.Write").Msg("error setting vault file mode")
		return fmt.Errorf("%w: %w", ErrVaultIO, err)
	}
	if err = tmp.Close(); err != nil {
		log.Err(err).Str("func", "*vaultFileStorage.Write").Msg("error closing temp file")
		return fmt.Errorf("%w: %w", ErrVaultIO, err)
	}
	if err = s.rename(tmpName, path); err != nil {
		log.Err(err).Str("func", "*vaultFileStorage.Write").Msg("error replacing vault file")
		return fmt.Errorf("%w: %w", ErrVaultIO, err)
	}

	syncDir(filepath.Dir(path))
	return nil
}

func (s *vaultFileStorage) Remove(ctx context.Context, path string) error {
	err := os.Remove(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		logger.FromContext(ctx).Err(err).Str("func", "*vaultFileStorage.Remove").Msg("error removing vault file")
		return fmt.Errorf("%w: %w", ErrVaultIO, err)
	}
	return nil
}

// syncDir flushes the directory entry of a fresh rename. Not every platform
// supports syncing a directory, so failures are ignored.
func syncDir(dir string) {
	d, err := os.Open(dir)
	if err != nil {
		return
	}
	_ = d.Sync()
	d.Close()
}
