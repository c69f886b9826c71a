package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"github.com/zensorleap/sensordesc/logging"
)

const (
	loggerMetadataKey  = "logger"
	logFileMetadataKey = "logFileAppender"
	logFileMaxSizeMB   = 10
)

// setupLogger attaches a logger writing to the app's ErrWriter so that stdout only carries
// command output.
func setupLogger(c *cli.Context) error {
	logger := logging.NewWriterLogger("sensordesc", c.App.ErrWriter)
	if c.Bool(generalFlagDebug) {
		logger.SetLevel(logging.DEBUG)
	}
	if c.App.Metadata == nil {
		c.App.Metadata = map[string]interface{}{}
	}
	if logFile := c.Path(generalFlagLogFile); logFile != "" {
		fileAppender := logging.NewFileAppender(logFile, logFileMaxSizeMB)
		logger.AddAppender(fileAppender)
		c.App.Metadata[logFileMetadataKey] = fileAppender
	}
	c.App.Metadata[loggerMetadataKey] = logger
	return nil
}

// closeLogger closes the log file opened by setupLogger, if any.
func closeLogger(c *cli.Context) error {
	fileAppender, ok := c.App.Metadata[logFileMetadataKey].(*logging.ConsoleAppender)
	if !ok {
		return nil
	}
	delete(c.App.Metadata, logFileMetadataKey)
	return errors.Wrap(fileAppender.Close(), "cannot close log file")
}

func loggerFromContext(c *cli.Context) logging.Logger {
	if logger, ok := c.App.Metadata[loggerMetadataKey].(logging.Logger); ok {
		return logger
	}
	return logging.Global()
}

// printf prints a message with no prefix.
func printf(w io.Writer, format string, a ...interface{}) {
	//nolint:errcheck
	fmt.Fprintf(w, format+"\n", a...)
}

var (
	warningPrefix = color.New(color.Bold, color.FgYellow).Sprint("Warning:")
	errorPrefix   = color.New(color.Bold, color.FgRed).Sprint("Error:")
)

// warningf prints a message prefixed with a bold yellow "Warning: ".
func warningf(w io.Writer, format string, a ...interface{}) {
	//nolint:errcheck
	fmt.Fprintf(w, warningPrefix+" "+format+"\n", a...)
}

// Errorf prints a message prefixed with a bold red "Error: " and exits with code 1.
func Errorf(w io.Writer, format string, a ...interface{}) {
	//nolint:errcheck
	fmt.Fprintf(w, errorPrefix+" "+format+"\n", a...)
	os.Exit(1)
}

func printJSON(w io.Writer, v interface{}) error {
	out, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		return errors.Wrap(err, "cannot encode output")
	}
	printf(w, "%s", out)
	return nil
}

// samePath returns true if abs(path1) and abs(path2) are the same.
func samePath(path1, path2 string) (bool, error) {
	abs1, err := filepath.Abs(path1)
	if err != nil {
		return false, err
	}
	abs2, err := filepath.Abs(path2)
	if err != nil {
		return false, err
	}
	return abs1 == abs2, nil
}
