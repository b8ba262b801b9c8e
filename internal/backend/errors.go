package backend

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Kind classifies a failed backend call.
type Kind string

const (
	// KindUnauthenticated means no token was present; no request was sent.
	KindUnauthenticated Kind = "unauthenticated"
	// KindSessionExpired means the backend rejected the token with 401.
	KindSessionExpired Kind = "session_expired"
	// KindNetwork means the request never produced a response.
	KindNetwork Kind = "network"
	// KindServer means the backend answered outside the 2xx range.
	KindServer Kind = "server"
	// KindDecode means a 2xx body could not be parsed.
	KindDecode Kind = "decode"
	// KindSessionStorage means the token could not be persisted after login.
	KindSessionStorage Kind = "session_storage"
)

// Error is the only error type returned by Client methods.
type Error struct {
	Kind    Kind
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("backend %s (%d): %s", e.Kind, e.Status, e.Message)
	}
	return fmt.Sprintf("backend %s: %s", e.Kind, e.Message)
}

// LocalizationKey names the catalog message for kinds whose text is not
// supplied by the backend.
func (e *Error) LocalizationKey() string {
	switch e.Kind {
	case KindUnauthenticated, KindSessionExpired, KindNetwork, KindDecode, KindSessionStorage:
		return "backend." + string(e.Kind)
	default:
		return ""
	}
}

// KindOf returns the kind of err, or "" when err is not a backend error.
func KindOf(err error) Kind {
	var be *Error
	if errors.As(err, &be) {
		return be.Kind
	}
	return ""
}

// Message returns the user-facing text for err.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var be *Error
	if errors.As(err, &be) {
		return be.Message
	}
	return err.Error()
}

// IsAuthFailure reports whether err means the caller must sign in again.
func IsAuthFailure(err error) bool {
	kind := KindOf(err)
	return kind == KindUnauthenticated || kind == KindSessionExpired
}

// fallbackMessage is used when a failed response carries no readable message.
func fallbackMessage(status int) string {
	text := http.StatusText(status)
	if text == "" {
		text = fmt.Sprintf("status %d", status)
	}
	return fmt.Sprintf("request failed (%s)", text)
}

// extractMessage reads error, message and detail, then the first field error
// in document order.
func extractMessage(body []byte, status int) string {
	body = bytes.TrimSpace(body)
	if len(body) == 0 || body[0] != '{' {
		return fallbackMessage(status)
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return fallbackMessage(status)
	}
	for _, key := range []string{"error", "message", "detail"} {
		if msg := textOf(fields[key]); msg != "" {
			return msg
		}
	}
	for _, key := range objectKeys(body) {
		msg := textOf(fields[key])
		if msg == "" {
			continue
		}
		if key == "non_field_errors" {
			return msg
		}
		return key + ": " + msg
	}
	return fallbackMessage(status)
}

// textOf returns a string value, or the first string of an array value.
func textOf(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s)
	}
	var list []json.RawMessage
	if err := json.Unmarshal(raw, &list); err == nil {
		for _, item := range list {
			if msg := textOf(item); msg != "" {
				return msg
			}
		}
	}
	return ""
}

// objectKeys lists the top-level keys of a JSON object in document order.
func objectKeys(body []byte) []string {
	dec := json.NewDecoder(bytes.NewReader(body))
	if tok, err := dec.Token(); err != nil || tok != json.Delim('{') {
		return nil
	}
	var keys []string
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return keys
		}
		key, ok := tok.(string)
		if !ok {
			return keys
		}
		keys = append(keys, key)
		var skip json.RawMessage
		if err := dec.Decode(&skip); err != nil {
			return keys
		}
	}
	return keys
}
