package guardscan

import (
	"errors"

	"github.com/redactyl/guardscan/internal/config"
)

// pick resolves a setting as CLI > local config > global config, where the
// zero value means "not set" at every level.
func pick[T comparable](cli T, local, global *T) T {
	var zero T
	for _, v := range []*T{&cli, local, global} {
		if v != nil && *v != zero {
			return *v
		}
	}
	return zero
}

func pickString(cli string, local, global *string) string   { return pick(cli, local, global) }
func pickInt(cli int, local, global *int) int               { return pick(cli, local, global) }
func pickInt64(cli int64, local, global *int64) int64       { return pick(cli, local, global) }
func pickFloat(cli float64, local, global *float64) float64 { return pick(cli, local, global) }

// pickBool lets an explicit false in config override a true from the
// global file; only the CLI's true is sticky.
func pickBool(cli bool, local, global *bool) bool {
	if cli {
		return true
	}
	return pickBoolDefault(false, false, local, global)
}

// pickBoolDefault is for flags whose default is true: an explicitly set flag
// wins, then config, then the flag's value.
func pickBoolDefault(cli bool, changed bool, local, global *bool) bool {
	switch {
	case changed:
		return cli
	case local != nil:
		return *local
	case global != nil:
		return *global
	}
	return cli
}

// loadConfigs returns the local and global config for root. Missing files
// are not errors; malformed ones are.
func loadConfigs(root string) (local, global config.FileConfig, err error) {
	global, err = config.LoadGlobal()
	if err != nil && !errors.Is(err, config.ErrNotFound) {
		// No config dir at all is the same as no global config.
		if _, perr := config.GlobalPath(); perr == nil {
			return local, global, err
		}
	}
	local, err = config.LoadLocal(root)
	if err != nil && !errors.Is(err, config.ErrNotFound) {
		return local, global, err
	}
	return local, global, nil
}
