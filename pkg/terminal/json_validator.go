package terminal

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/antibyte/nxterm/pkg/shared"
)

// JSONValidator validiert eingehende Nachrichten, bevor sie dekodiert werden
type JSONValidator struct {
	MaxDepth     int
	MaxKeys      int
	MaxStringLen int
	MaxArraySize int
	MaxSize      int
}

// Grenzen für Client-Nachrichten. Programme kommen als ein String,
// deshalb ist die String-Länge großzügig.
const (
	MaxJSONDepth     = 4
	MaxJSONKeys      = 16
	MaxJSONStringLen = 256 * 1024
	MaxJSONArraySize = 64
	MaxJSONSize      = 512 * 1024
)

var (
	ErrJSONTooLarge      = errors.New("JSON payload too large")
	ErrJSONTooDeep       = errors.New("JSON nesting too deep")
	ErrJSONTooManyKeys   = errors.New("too many keys in JSON object")
	ErrJSONStringTooLong = errors.New("JSON string too long")
	ErrJSONArrayTooLarge = errors.New("JSON array too large")
	ErrUnknownMessage    = errors.New("unknown message type")
)

// NewJSONValidator erstellt einen Validator mit den Standardgrenzen
func NewJSONValidator() *JSONValidator {
	return &JSONValidator{
		MaxDepth:     MaxJSONDepth,
		MaxKeys:      MaxJSONKeys,
		MaxStringLen: MaxJSONStringLen,
		MaxArraySize: MaxJSONArraySize,
		MaxSize:      MaxJSONSize,
	}
}

// ValidateJSON prüft Größe und Struktur von data
func (v *JSONValidator) ValidateJSON(data []byte) error {
	if len(data) > v.MaxSize {
		return ErrJSONTooLarge
	}
	var obj interface{}
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	return v.validateStructure(obj, 0)
}

// ValidateMessage prüft data und dekodiert es als Client-Nachricht.
// Unbekannte Felder und Typen werden abgelehnt.
func (v *JSONValidator) ValidateMessage(data []byte) (*shared.Message, error) {
	if err := v.ValidateJSON(data); err != nil {
		return nil, err
	}

	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	var msg shared.Message
	if err := decoder.Decode(&msg); err != nil {
		return nil, fmt.Errorf("invalid message: %w", err)
	}

	switch msg.Type {
	case shared.MessageTypeRun, shared.MessageTypeInput, shared.MessageTypeDisk, shared.MessageTypeStop:
		return &msg, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownMessage, msg.Type)
}

// validateStructure validiert die JSON-Struktur rekursiv
func (v *JSONValidator) validateStructure(obj interface{}, depth int) error {
	if depth > v.MaxDepth {
		return ErrJSONTooDeep
	}

	switch val := obj.(type) {
	case map[string]interface{}:
		if len(val) > v.MaxKeys {
			return ErrJSONTooManyKeys
		}
		for key, value := range val {
			if len(key) > v.MaxStringLen {
				return ErrJSONStringTooLong
			}
			if err := v.validateStructure(value, depth+1); err != nil {
				return err
			}
		}
	case []interface{}:
		if len(val) > v.MaxArraySize {
			return ErrJSONArrayTooLarge
		}
		for _, item := range val {
			if err := v.validateStructure(item, depth+1); err != nil {
				return err
			}
		}
	case string:
		if len(val) > v.MaxStringLen {
			return ErrJSONStringTooLong
		}
	}
	return nil
}
