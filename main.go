package main

import (
	"log"
	"os"
	"strings"

	"codecollector/cmd"
	"codecollector/pkg/logging"
	"codecollector/pkg/version"

	"go.uber.org/zap"
	"golang.org/x/term"
)

func main() {
	if err := logging.Setup(false, "codecollector", version.Get().Version); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	// Execute the root command
	if err := cmd.Execute(); err != nil {
		logging.Logger.Error("codecollector execution failed", zap.Error(err))
		syncLogger()
		os.Exit(1)
	}

	syncLogger()
}

// syncLogger flushes the logger when stderr can be synced; terminals and
// pipes on some platforms reject fsync with "invalid argument".
func syncLogger() {
	if !term.IsTerminal(int(os.Stderr.Fd())) && !isRegularFile(os.Stderr) {
		return
	}
	if syncErr := logging.Sync(); syncErr != nil {
		lowerErr := strings.ToLower(syncErr.Error())
		if !strings.Contains(lowerErr, "invalid argument") && !strings.Contains(lowerErr, "inappropriate ioctl") {
			log.Printf("Logger sync failed: %v", syncErr)
		}
	}
}

// isRegularFile checks if the given file is a regular file.
func isRegularFile(f *os.File) bool {
	fileInfo, err := f.Stat()
	if err != nil {
		return false
	}
	return fileInfo.Mode().IsRegular()
}
