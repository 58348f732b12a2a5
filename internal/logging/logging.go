package logging

import (
	"fmt"
	"path/filepath"
	"time"
)

// LogFilePath returns the session log path, <logsDir>/<program>.<start>.log,
// with start formatted as YYYYMMDD_HHMMSS. One file is written per run.
func LogFilePath(logsDir, program string, sessionStart time.Time) string {
	return filepath.Join(
		logsDir,
		fmt.Sprintf("%s.%s.log", program, sessionStart.Format("20060102_150405")),
	)
}
