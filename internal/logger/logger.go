package logger

import (
	"encoding/json"
	"log"
	"os"
	"regexp"
	"strings"
)

// PIIFields are the field names whose values never reach a log line.
var PIIFields = []string{"email", "password", "reset_token", "session_id"}

const (
	redaction = "***"

	// separator delimits `field=value` pairs inside free-form messages.
	separator = ";"
)

func Init() {
	log.SetOutput(os.Stdout)
	log.SetFlags(0)

	log.Printf(`{"level":"INFO","msg":"logger initialized"}`)
}

// FilterDatum obfuscates `field=value<separator>` pairs inside a message.
func FilterDatum(fields []string, redacted, message, separator string) string {
	for _, field := range fields {
		re := regexp.MustCompile(field + `=[^` + regexp.QuoteMeta(separator) + `]*` + regexp.QuoteMeta(separator))
		message = re.ReplaceAllString(message, field+"="+redacted+separator)
	}
	return message
}

func redactFields(fields map[string]any) map[string]any {
	out := make(map[string]any, len(fields))
	for k, v := range fields {
		out[k] = v
	}
	for _, field := range PIIFields {
		if _, ok := out[field]; ok {
			out[field] = redaction
		}
	}
	return out
}

func emit(level, msg string, fields map[string]any) {
	// the appended separator lets FilterDatum catch a trailing pair
	msg = strings.TrimSuffix(
		FilterDatum(PIIFields, redaction, msg+separator, separator),
		separator,
	)
	if fields == nil {
		log.Printf(`{"level":%q,"msg":%q}`, level, msg)
		return
	}
	data, err := json.Marshal(redactFields(fields))
	if err != nil {
		log.Printf(`{"level":%q,"msg":%q}`, level, msg)
		return
	}
	log.Printf(`{"level":%q,"msg":%q,"fields":%s}`, level, msg, data)
}

func Info(msg string, fields map[string]any) {
	emit("INFO", msg, fields)
}

func Warn(msg string, fields map[string]any) {
	emit("WARN", msg, fields)
}

func Error(msg string, fields map[string]any) {
	emit("ERROR", msg, fields)
}

func Fatal(msg string, fields map[string]any) {
	emit("FATAL", msg, fields)
	os.Exit(1)
}
