package tui

import "go.withmatt.com/mailflow/internal/log"

func logf(format string, args ...any) {
	log.Printf("tui: "+format, args...)
}
