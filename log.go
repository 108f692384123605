package studyquiz

import (
	"log"
	"sync/atomic"
)

// Global verbose flag
var verboseMode atomic.Bool

// SetVerbose sets the global verbose mode
func SetVerbose(verbose bool) {
	verboseMode.Store(verbose)
}

// VerboseLog logs only when verbose mode is enabled
func VerboseLog(format string, v ...interface{}) {
	if verboseMode.Load() {
		log.Printf(format, v...)
	}
}
