// Package cli provides CLI commands for the planvault application.
package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// NewContext creates the context CLI commands pass to services.
func NewContext() context.Context {
	return context.Background()
}

// parseID parses a positional ID argument.
func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q", arg)
	}
	return id, nil
}

// parsePositions parses reorder arguments of the form "id=position".
func parsePositions(args []string) (map[int64]int, error) {
	positions := make(map[int64]int, len(args))
	for _, arg := range args {
		id, pos, ok := strings.Cut(arg, "=")
		if !ok {
			return nil, fmt.Errorf("expected id=position, got %q", arg)
		}
		idVal, err := strconv.ParseInt(id, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid id in %q", arg)
		}
		posVal, err := strconv.Atoi(pos)
		if err != nil {
			return nil, fmt.Errorf("invalid position in %q", arg)
		}
		positions[idVal] = posVal
	}
	return positions, nil
}

// strFlag returns a pointer to the flag value when the flag was set.
func strFlag(changed bool, value string) *string {
	if !changed {
		return nil
	}
	return &value
}

// intFlag returns a pointer to the flag value when the flag was set.
func intFlag(changed bool, value int) *int {
	if !changed {
		return nil
	}
	return &value
}

// truncate shortens s for table display.
func truncate(s string, max int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}

// dash substitutes "-" for empty table cells.
func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
