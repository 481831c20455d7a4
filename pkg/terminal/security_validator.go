package terminal

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/antibyte/nxterm/pkg/configuration"
)

// SecurityValidator prüft Inhalte von Client-Nachrichten
type SecurityValidator struct{}

// NewSecurityValidator erstellt einen neuen SecurityValidator
func NewSecurityValidator() *SecurityValidator {
	return &SecurityValidator{}
}

// ValidateSource prüft ein Programm vor dem Kompilieren. Erlaubt sind
// druckbares ASCII und Zeilenumbrüche; alles andere meldet der Tokenizer
// mit Position, hier werden nur Steuerzeichen abgewiesen.
func (sv *SecurityValidator) ValidateSource(source string) error {
	maxSize := configuration.GetInt("Console", "max_source_kb", 128) * 1024
	if len(source) > maxSize {
		return fmt.Errorf("program too large: maximum %d bytes allowed", maxSize)
	}
	for i, r := range source {
		if unicode.IsControl(r) && r != '\n' && r != '\r' && r != '\t' {
			return fmt.Errorf("program contains control character at %d", i)
		}
	}
	return nil
}

// ValidateDiskName prüft den Namen einer Diskette
func (sv *SecurityValidator) ValidateDiskName(name string) error {
	if name == "" {
		return fmt.Errorf("disk name is empty")
	}
	if len(name) > 64 {
		return fmt.Errorf("disk name too long")
	}
	if strings.Trim(name, "._-") == "" {
		return fmt.Errorf("disk name contains no letters")
	}
	for _, r := range name {
		if r > unicode.MaxASCII || (!unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '-' && r != '_' && r != '.') {
			return fmt.Errorf("disk name contains invalid characters")
		}
	}
	return nil
}

// ValidateKey prüft den Tastennamen einer Eingabe-Nachricht
func (sv *SecurityValidator) ValidateKey(key string) error {
	if len(key) > 16 {
		return fmt.Errorf("key name too long")
	}
	for _, r := range key {
		if unicode.IsControl(r) {
			return fmt.Errorf("key name contains control characters")
		}
	}
	return nil
}

// ValidateSessionID prüft die Gültigkeit einer Session-ID
func (sv *SecurityValidator) ValidateSessionID(sessionID string) error {
	if len(sessionID) == 0 {
		return fmt.Errorf("session ID is empty")
	}

	if len(sessionID) > 128 {
		return fmt.Errorf("session ID too long")
	}

	// Nur alphanumerische Zeichen und Bindestriche erlauben
	for _, r := range sessionID {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '-' && r != '_' {
			return fmt.Errorf("session ID contains invalid characters")
		}
	}

	return nil
}
