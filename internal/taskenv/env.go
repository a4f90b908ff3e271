package taskenv

import (
	"os"
	"strings"
)

// DataFileEnvVar overrides the task data file location.
const DataFileEnvVar = "DUE_FILE"

// DataFile returns the data file path set in the environment, if any.
func DataFile() (string, bool) {
	path := strings.TrimSpace(os.Getenv(DataFileEnvVar))
	return path, path != ""
}
