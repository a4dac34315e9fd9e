package observability

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"
	"time"
)

// StdoutLogger implements Logger by writing structured entries to stdout.
type StdoutLogger struct {
	fields map[string]interface{}
	logger *log.Logger
	json   bool
}

// NewStdoutLogger creates a new stdout logger. When jsonOutput is true every
// entry is emitted as a single JSON object, otherwise as a formatted line.
func NewStdoutLogger(jsonOutput bool) Logger {
	return &StdoutLogger{
		fields: make(map[string]interface{}),
		logger: log.New(os.Stdout, "", 0), // No prefix, we format ourselves
		json:   jsonOutput,
	}
}

// Info logs informational messages
func (l *StdoutLogger) Info(msg string, fields ...interface{}) {
	l.log("INFO", msg, fields...)
}

// Warn logs warning messages
func (l *StdoutLogger) Warn(msg string, fields ...interface{}) {
	l.log("WARN", msg, fields...)
}

// Error logs error messages
func (l *StdoutLogger) Error(msg string, fields ...interface{}) {
	l.log("ERROR", msg, fields...)
}

// Debug logs debug messages
func (l *StdoutLogger) Debug(msg string, fields ...interface{}) {
	l.log("DEBUG", msg, fields...)
}

// WithFields returns a new Logger with additional fields
func (l *StdoutLogger) WithFields(fields map[string]interface{}) Logger {
	newFields := make(map[string]interface{}, len(l.fields)+len(fields))
	for k, v := range l.fields {
		newFields[k] = v
	}
	for k, v := range fields {
		newFields[k] = v
	}

	return &StdoutLogger{
		fields: newFields,
		logger: l.logger,
		json:   l.json,
	}
}

func (l *StdoutLogger) log(level string, msg string, fields ...interface{}) {
	entry := l.createLogEntry(level, msg, fields...)

	if l.json {
		l.logJSON(entry)
	} else {
		l.logText(entry)
	}
}

// createLogEntry builds the log entry
func (l *StdoutLogger) createLogEntry(level string, msg string, fields ...interface{}) map[string]interface{} {
	entry := make(map[string]interface{})

	entry["timestamp"] = time.Now().UTC().Format(time.RFC3339)
	entry["level"] = level
	entry["message"] = msg

	for k, v := range l.fields {
		entry[k] = v
	}

	// Parse variadic fields (key1, value1, key2, value2, ...)
	for i := 0; i < len(fields)-1; i += 2 {
		key, ok := fields[i].(string)
		if !ok {
			continue
		}

		// Special handling for error type
		if key == "error" && fields[i+1] != nil {
			if err, ok := fields[i+1].(error); ok {
				entry[key] = err.Error()
			} else {
				entry[key] = fields[i+1]
			}
		} else {
			entry[key] = fields[i+1]
		}
	}

	return entry
}

func (l *StdoutLogger) logJSON(entry map[string]interface{}) {
	jsonBytes, err := json.Marshal(entry)
	if err != nil {
		l.logger.Printf("Failed to marshal log entry: %v", err)
		return
	}
	l.logger.Println(string(jsonBytes))
}

func (l *StdoutLogger) logText(entry map[string]interface{}) {
	timestamp := entry["timestamp"]
	level := entry["level"]
	message := entry["message"]
	delete(entry, "timestamp")
	delete(entry, "level")
	delete(entry, "message")

	var fieldStrs []string
	for k, v := range entry {
		fieldStrs = append(fieldStrs, fmt.Sprintf("%s=%v", k, v))
	}

	logLine := fmt.Sprintf("%s [%s] %s", timestamp, level, message)
	if len(fieldStrs) > 0 {
		logLine += " | " + strings.Join(fieldStrs, " ")
	}

	l.logger.Println(logLine)
}
