// Package logger provides the DEBUG=1 gated trace log used across the tool.
// Failure diagnostics never go through here; they are printed once at the
// CLI boundary.
package logger

import (
	"log"
	"os"
)

func DebugLog(format string, args ...any) {
	if os.Getenv("DEBUG") == "1" {
		log.Printf("[DEBUG] "+format, args...)
	}
}
