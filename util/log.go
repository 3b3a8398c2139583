package util

import (
	"fmt"
	"io"
	"os"
	"sync"
)

var (
	outputLock           = sync.Mutex{}
	output     io.Writer = os.Stdout
)

// SetOutput redirects friendly output, returning the previous writer.
func SetOutput(w io.Writer) io.Writer {
	outputLock.Lock()
	defer outputLock.Unlock()

	prev := output
	output = w

	return prev
}

func log(msg string) {
	outputLock.Lock()
	defer outputLock.Unlock()

	fmt.Fprintln(output, msg)
}

// LogInfo logs information.
func LogInfo(msg string) {
	log(fmt.Sprintf("ℹ️ %s", msg))
}

// LogStart logs the start of something.
func LogStart(msg string) {
	log(fmt.Sprintf("⏩ START: %s", msg))
}

// LogDone logs the success of something.
func LogDone(msg string) {
	log(fmt.Sprintf("✅ DONE: %s", msg))
}

// LogFail logs the failure of something.
func LogFail(msg string) {
	log(fmt.Sprintf("🚫 FAILED: %s", msg))
}

// LogWarn logs a warning from something.
func LogWarn(msg string) {
	log(fmt.Sprintf("⚠️ WARNING: %s", msg))
}
