package output

import "os"

// LogFileEnvVar names the environment variable holding the log file path
const LogFileEnvVar = "QUATI_LOG_FILE"

// GetLogFilePath returns the log file path from QUATI_LOG_FILE.
// File logging is disabled when it is unset.
func GetLogFilePath() string {
	return os.Getenv(LogFileEnvVar)
}
