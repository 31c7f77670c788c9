// Command mantle reconciles a target's live platform state toward the
// description in a project file: "diff" reports the plan, "deploy" runs it.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"go.uber.org/zap"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loggerFromFlags builds the concrete zap-backed logr.Logger. Only this
// file ever imports zap directly; every core package depends on logr.Logger
// alone, carried through context by pkg/logging.
func loggerFromFlags() logr.Logger {
	zapLog, err := zap.NewProduction()
	if err != nil {
		zapLog = zap.NewNop()
	}
	return zapr.NewLogger(zapLog)
}

// projectDir resolves relative file-backed inputs against the project
// file's own directory, so a project file can be invoked from anywhere.
func projectDir() string {
	return filepath.Dir(projectPath)
}
