package cli

import (
	"context"
	"fmt"
	"strings"
)

// resolvePrefix expands an ID prefix, as printed in tables, to the full ID.
// An exact match always wins; an ambiguous prefix is an error.
func resolvePrefix(kind, arg string, ids []string) (string, error) {
	var matches []string
	for _, id := range ids {
		if id == arg {
			return id, nil
		}
		if strings.HasPrefix(id, arg) {
			matches = append(matches, id)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("no %s matches %q", kind, arg)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("%s prefix %q is ambiguous (%d matches)", kind, arg, len(matches))
	}
}

func resolveHoldID(ctx context.Context, app *App, arg string) (string, error) {
	holds, err := app.Holds.List(ctx)
	if err != nil {
		return "", err
	}
	ids := make([]string, len(holds))
	for i, h := range holds {
		ids[i] = h.ID
	}
	return resolvePrefix("hold", arg, ids)
}

func resolveFlagID(ctx context.Context, app *App, arg string) (string, error) {
	flags, err := app.Coaching.ListFlags(ctx, true)
	if err != nil {
		return "", err
	}
	ids := make([]string, len(flags))
	for i, f := range flags {
		ids[i] = f.ID
	}
	return resolvePrefix("flag", arg, ids)
}

// allExerciseIDs lists catalog IDs, used when a plan is not given.
func allExerciseIDs(app *App) []string {
	if app.Catalog == nil {
		return nil
	}
	exercises := app.Catalog.Exercises()
	ids := make([]string, len(exercises))
	for i, ex := range exercises {
		ids[i] = ex.ID
	}
	return ids
}
