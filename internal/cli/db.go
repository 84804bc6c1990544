package cli

import (
	"log/slog"

	"github.com/roach88/exhaustive/internal/store"
)

// openStore opens the database at path. The returned function closes it and
// logs any error.
func openStore(path string, gen store.IDGenerator, logger *slog.Logger) (*store.Store, func(), error) {
	var storeOpts []store.Option
	if gen != nil {
		storeOpts = append(storeOpts, store.WithIDGenerator(gen))
	}
	st, err := store.Open(path, storeOpts...)
	if err != nil {
		return nil, nil, WrapExitError(ExitCommandError, "failed to open database", err)
	}
	return st, func() {
		if err := st.Close(); err != nil {
			logger.Error("error closing database", "error", err)
		}
	}, nil
}
