package logger

import (
	"fmt"
	"io"
	"log"
	"os"
)

var (
	InfoLog  *log.Logger
	ErrorLog *log.Logger
	WarnLog  *log.Logger
	DebugLog *log.Logger
	logFile  *os.File
	level    = INFO
)

const (
	INFO = iota
	DEBUG
)

// InitLogger initializes the logger with console output and, when filename
// is set, a file copy of every line.
func InitLogger(filename string, lvl int) error {
	level = lvl
	if filename == "" {
		Init()
		return nil
	}

	var err error
	logFile, err = os.OpenFile(filename, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return err
	}

	out := io.MultiWriter(os.Stderr, logFile)

	InfoLog = log.New(out, "INFO: ", log.Ldate|log.Ltime|log.Lshortfile)
	ErrorLog = log.New(out, "ERROR: ", log.Ldate|log.Ltime|log.Lshortfile)
	WarnLog = log.New(out, "WARN: ", log.Ldate|log.Ltime|log.Lshortfile)
	DebugLog = log.New(out, "DEBUG: ", log.Ldate|log.Ltime|log.Lshortfile)

	return nil
}

// Close closes the log file, if any, and falls back to console output.
func Close() {
	if logFile != nil {
		logFile.Close()
		logFile = nil
		Init()
	}
}

// FileName returns the path of the open log file, or "" when logging only
// to the console.
func FileName() string {
	if logFile == nil {
		return ""
	}
	return logFile.Name()
}

// Init sets up console-only loggers. Log lines go to stderr so command
// output on stdout stays machine readable.
func Init() {
	InfoLog = log.New(os.Stderr, "INFO: ", log.Ldate|log.Ltime|log.Lshortfile)
	ErrorLog = log.New(os.Stderr, "ERROR: ", log.Ldate|log.Ltime|log.Lshortfile)
	WarnLog = log.New(os.Stderr, "WARN: ", log.Ldate|log.Ltime|log.Lshortfile)
	DebugLog = log.New(os.Stderr, "DEBUG: ", log.Ldate|log.Ltime|log.Lshortfile)
}

func Infof(format string, v ...interface{}) {
	if InfoLog == nil {
		Init()
	}
	InfoLog.Output(2, sprintf(format, v...))
}

func Warnf(format string, v ...interface{}) {
	if WarnLog == nil {
		Init()
	}
	WarnLog.Output(2, sprintf(format, v...))
}

func Errorf(format string, v ...interface{}) {
	if ErrorLog == nil {
		Init()
	}
	ErrorLog.Output(2, sprintf(format, v...))
}

// Debugf only writes when the logger was initialized at DEBUG level.
func Debugf(format string, v ...interface{}) {
	if level < DEBUG {
		return
	}
	if DebugLog == nil {
		Init()
	}
	DebugLog.Output(2, sprintf(format, v...))
}

func sprintf(format string, v ...interface{}) string {
	if len(v) == 0 {
		return format
	}
	return fmt.Sprintf(format, v...)
}
