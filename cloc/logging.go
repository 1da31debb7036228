package cloc

import (
	"io"
	"log"
	"os"
)

var debugLog = log.New(io.Discard, "cloc: ", log.LstdFlags)

// SetVerboseLogging toggles verbose scanner logging.
// When disabled (default), debug output is discarded.
func SetVerboseLogging(enable bool) {
	if enable {
		debugLog.SetOutput(os.Stderr)
	} else {
		debugLog.SetOutput(io.Discard)
	}
}
