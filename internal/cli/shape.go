package cli

import (
	"github.com/roach88/exhaustive/internal/shape"
)

// shapeFlags selects a shape from a CUE schema instead of an argument.
type shapeFlags struct {
	Schema string
	Def    string
}

// resolveShape returns the shape named by args or by the schema flags.
// Exactly one source must be given.
func resolveShape(args []string, flags shapeFlags) (*shape.Shape, error) {
	switch {
	case len(args) == 1 && flags.Schema != "":
		return nil, NewExitError(ExitCommandError, "give either a shape argument or --schema, not both")
	case len(args) == 1:
		s, err := shape.Parse(args[0])
		if err != nil {
			return nil, WrapExitError(ExitCommandError, "invalid shape", err)
		}
		return s, nil
	case flags.Schema != "":
		s, err := shape.LoadCUE(flags.Schema, flags.Def)
		if err != nil {
			return nil, WrapExitError(ExitCommandError, "invalid schema", err)
		}
		return s, nil
	case flags.Def != "":
		return nil, NewExitError(ExitCommandError, "--def requires --schema")
	}
	return nil, NewExitError(ExitCommandError, "a shape argument or --schema is required")
}
