package errutil

import (
	"log"
	"strconv"
)

// MustParseFloat parses a float64 or logs error and returns 0.
// The context parameter provides information about where the parse occurred.
func MustParseFloat(s string, context string) float64 {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		log.Printf("ParseFloat error in %s: %v (input: %q)", context, err, s)
		return 0
	}
	return f
}

// LogError logs non-critical errors with context.
func LogError(context string, err error) {
	if err != nil {
		log.Printf("ERROR [%s]: %v", context, err)
	}
}

// LogDegraded logs a query that produced fewer results than it should have.
func LogDegraded(context string, err error) {
	if err != nil {
		log.Printf("DEGRADED [%s]: %v", context, err)
	}
}

// FatalError logs and exits for unrecoverable errors.
func FatalError(context string, err error) {
	log.Fatalf("FATAL [%s]: %v", context, err)
}
