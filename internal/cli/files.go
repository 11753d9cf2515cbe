package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/hupe1980/cgmdust/blobstore"
	"github.com/hupe1980/cgmdust/catalog"
	"github.com/hupe1980/cgmdust/internal/config"
)

// stdio is the file name selecting stdin or stdout.
const stdio = "-"

// ErrEphemeralBackend is returned when the CLI is configured with a storage
// backend whose contents vanish when the process exits.
var ErrEphemeralBackend = errors.New("storage backend does not outlive the process")

func openStore(ctx context.Context, cfg *config.Config) (blobstore.Store, error) {
	if cfg.Storage.Backend == "memory" {
		return nil, WrapExitError(ExitCommandError, "unusable storage backend",
			fmt.Errorf("%w: %s", ErrEphemeralBackend, cfg.Storage.Backend))
	}
	store, err := cfg.Storage.OpenStore(ctx)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to open storage", err)
	}
	return store, nil
}

func readCatalog(path string, stdin io.Reader, columns ...string) (*catalog.Table, error) {
	if path == stdio {
		return catalog.ReadCSV(stdin, columns...)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	t, err := catalog.ReadCSV(f, columns...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

func writeCatalog(path string, stdout io.Writer, t *catalog.Table) (err error) {
	if path == stdio {
		return catalog.WriteCSV(stdout, t)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return catalog.WriteCSV(f, t)
}
