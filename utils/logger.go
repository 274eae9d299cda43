package utils

import "log"

// Logger is a thin leveled wrapper over the standard logger.
type Logger struct {
	Prefix string
}

func (l *Logger) Info(msg string, args ...interface{}) {
	log.Printf("[INFO] "+l.Prefix+msg, args...)
}

func (l *Logger) Warn(msg string, args ...interface{}) {
	log.Printf("[WARN] "+l.Prefix+msg, args...)
}

func (l *Logger) Error(msg string, args ...interface{}) {
	log.Printf("[ERROR] "+l.Prefix+msg, args...)
}
