// internal/codec/coerce.go
package codec

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// isAbsent reports whether a raw value is missing entirely or an explicit
// JSON null. Both count as absent: unmarshalling null into a float or bool is
// a no-op, which would otherwise smuggle a zero past the defaults.
func isAbsent(raw json.RawMessage) bool {
	return len(raw) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

// coerceFloat parses a raw JSON value as a number, accepting numeric strings.
// On any failure it returns the given default and defaulted=true. It never
// propagates a parse failure.
func coerceFloat(raw json.RawMessage, def float64) (val float64, defaulted bool) {
	if isAbsent(raw) {
		return def, true
	}

	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return f, false
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			return f, false
		}
	}

	return def, true
}

// coerceBool parses a raw JSON value as a truthy flag: boolean true, the
// strings "yes"/"true"/"1" (case-insensitive), or the number 1. Everything
// else, including absence and null, is 0.
func coerceBool(raw json.RawMessage) float64 {
	if isAbsent(raw) {
		return 0
	}

	var b bool
	if err := json.Unmarshal(raw, &b); err == nil {
		if b {
			return 1
		}
		return 0
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		switch strings.ToLower(strings.TrimSpace(s)) {
		case "yes", "true", "1":
			return 1
		}
		return 0
	}

	var f float64
	if err := json.Unmarshal(raw, &f); err == nil && f == 1 {
		return 1
	}

	return 0
}
