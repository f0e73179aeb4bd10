package tools

import (
	"fmt"
	"strings"
)

// Arguments arrive as decoded JSON, so numbers are float64 unless a caller
// built the map by hand.

func stringArg(args map[string]any, key string) (string, error) {
	raw, ok := args[key]
	if !ok || raw == nil {
		return "", fmt.Errorf("%s is required", key)
	}

	value, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("%s must be a string", key)
	}

	if strings.TrimSpace(value) == "" {
		return "", fmt.Errorf("%s is required", key)
	}

	return value, nil
}

func numberArg(args map[string]any, key string, fallback float64) float64 {
	switch value := args[key].(type) {
	case float64:
		return value
	case float32:
		return float64(value)
	case int:
		return float64(value)
	case int64:
		return float64(value)
	default:
		return fallback
	}
}

func limitArg(args map[string]any) int {
	limit := int(numberArg(args, "limit", DefaultLimit))

	if limit <= 0 {
		return DefaultLimit
	}

	return limit
}
