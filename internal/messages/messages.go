// Package messages holds the user-facing string bundles. A Bundle is loaded once at
// startup and passed to whatever needs to render text for the user.
package messages

import (
	"embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed locales/*.yaml
var localesFS embed.FS

// DefaultLocale is used when a requested locale has no bundle.
const DefaultLocale = "en"

// Message keys
const (
	ErrNotFound         = "errors.not_found"
	ErrPermissionDenied = "errors.permission_denied"
	ErrUnavailable      = "errors.unavailable"
	ErrValidation       = "errors.validation"
	ErrUnknown          = "errors.unknown"

	RemindersOverdue   = "reminders.overdue"
	RemindersDueSoon   = "reminders.due_soon"
	RemindersUpcoming  = "reminders.upcoming"
	RemindersInactive  = "reminders.inactive"
	RemindersEmpty     = "reminders.empty"
	RemindersCompleted = "reminders.completed"
	RemindersSnoozed   = "reminders.snoozed"

	LogsSaved = "logs.saved"

	AccountConfirm = "account.confirm"
	AccountDeleted = "account.deleted"
)

// Bundle is an immutable set of flattened message keys for one locale.
type Bundle struct {
	locale string
	msgs   map[string]string
}

// Load returns the bundle for locale, falling back to DefaultLocale for any key the
// locale does not define. If overridePath is non-empty its YAML is layered on top.
func Load(locale, overridePath string) (*Bundle, error) {
	base, err := readEmbedded(DefaultLocale)
	if err != nil {
		return nil, err
	}

	if locale != "" && locale != DefaultLocale {
		localized, err := readEmbedded(locale)
		if err != nil {
			return nil, err
		}
		for k, v := range localized {
			base[k] = v
		}
	} else {
		locale = DefaultLocale
	}

	if overridePath != "" {
		data, err := os.ReadFile(overridePath)
		if err != nil {
			return nil, fmt.Errorf("failed to read message overrides: %w", err)
		}
		override, err := parse(data)
		if err != nil {
			return nil, fmt.Errorf("failed to parse message overrides: %w", err)
		}
		for k, v := range override {
			base[k] = v
		}
	}

	return &Bundle{locale: locale, msgs: base}, nil
}

// MustDefault returns the embedded default bundle and panics if it is malformed.
func MustDefault() *Bundle {
	b, err := Load(DefaultLocale, "")
	if err != nil {
		panic(err)
	}
	return b
}

// Locale returns the locale the bundle was loaded for.
func (b *Bundle) Locale() string {
	return b.locale
}

// Get returns the message for key formatted with args. Unknown keys render as the key
// itself so missing translations are visible rather than silent.
func (b *Bundle) Get(key string, args ...interface{}) string {
	msg, ok := b.msgs[key]
	if !ok {
		return key
	}
	if len(args) == 0 {
		return msg
	}
	return fmt.Sprintf(msg, args...)
}

// Has reports whether key is defined.
func (b *Bundle) Has(key string) bool {
	_, ok := b.msgs[key]
	return ok
}

func readEmbedded(locale string) (map[string]string, error) {
	data, err := localesFS.ReadFile("locales/" + locale + ".yaml")
	if err != nil {
		return nil, fmt.Errorf("unsupported locale %q", locale)
	}
	return parse(data)
}

func parse(data []byte) (map[string]string, error) {
	var raw map[string]interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	out := make(map[string]string)
	flatten("", raw, out)
	return out, nil
}

func flatten(prefix string, in map[string]interface{}, out map[string]string) {
	for k, v := range in {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		switch val := v.(type) {
		case map[string]interface{}:
			flatten(key, val, out)
		case string:
			out[key] = val
		default:
			out[key] = strings.TrimSpace(fmt.Sprint(val))
		}
	}
}
