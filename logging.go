package kdforest

import (
	"sync/atomic"

	"github.com/charmbracelet/log"
)

// activeLogger is the optional sink for BKDTree carry-propagation and
// bulk-insert tracing. It is nil by default, so a program that never calls SetLogger
// pays nothing beyond one atomic load per trace call (grounded on
// syntax-syndicate-plakar-backup-platform/logging.Logger's use of
// github.com/charmbracelet/log, simplified to a single library-wide sink
// appropriate for a package rather than an application).
var activeLogger atomic.Pointer[log.Logger]

// SetLogger installs l as the destination for kdforest's internal trace
// output (BKDTree level carries and bulk-insert recomputation; the
// parallel-build coordinator does not trace). Pass nil to disable tracing.
func SetLogger(l *log.Logger) {
	activeLogger.Store(l)
}

func trace(format string, args ...any) {
	l := activeLogger.Load()
	if l == nil {
		return
	}
	l.Debugf(format, args...)
}
