package logging

import (
	"regexp"
	"strings"
)

// Redactor scrubs upstream credentials from log fields. The relay appends
// the LastFM API key as a query parameter and sends the Discord bot token
// in an Authorization header, so both can leak through logged URLs and
// errors if left unfiltered.
type Redactor struct {
	patterns []*redactPattern
}

// redactPattern contains a compiled regex and replacement string.
type redactPattern struct {
	name        string
	regex       *regexp.Regexp
	replacement string
}

// NewRedactor creates a Redactor with the built-in credential patterns.
func NewRedactor() *Redactor {
	return &Redactor{
		patterns: []*redactPattern{
			// api_key query parameter in logged URLs
			{
				name:        "api_key_param",
				regex:       regexp.MustCompile(`(api_key=)[^&\s"]+`),
				replacement: "${1}***",
			},
			// Discord bot authorization header values
			{
				name:        "bot_token",
				regex:       regexp.MustCompile(`Bot\s+[a-zA-Z0-9\-._~+/]+=*`),
				replacement: "Bot ***",
			},
			// Bearer tokens
			{
				name:        "bearer_token",
				regex:       regexp.MustCompile(`Bearer\s+[a-zA-Z0-9\-._~+/]+=*`),
				replacement: "Bearer ***",
			},
		},
	}
}

// RedactString redacts credentials from a string value.
func (r *Redactor) RedactString(value string) string {
	if value == "" {
		return value
	}

	redacted := value
	for _, pattern := range r.patterns {
		redacted = pattern.regex.ReplaceAllString(redacted, pattern.replacement)
	}

	return redacted
}

// RedactArgs redacts credentials from variadic log arguments.
// Args are in the form: key1, value1, key2, value2, ...
func (r *Redactor) RedactArgs(args ...any) []any {
	if len(args) == 0 {
		return args
	}

	redacted := make([]any, len(args))
	copy(redacted, args)

	for i := 1; i < len(redacted); i += 2 {
		key, ok := redacted[i-1].(string)
		if ok && r.isSensitiveKey(key) {
			redacted[i] = redactValue(redacted[i])
			continue
		}

		if str, ok := redacted[i].(string); ok {
			redacted[i] = r.RedactString(str)
		}
		if err, ok := redacted[i].(error); ok && err != nil {
			redacted[i] = r.RedactString(err.Error())
		}
	}

	return redacted
}

// isSensitiveKey checks if a key name indicates credential data.
func (r *Redactor) isSensitiveKey(key string) bool {
	lowerKey := strings.ToLower(key)

	sensitiveKeys := []string{
		"api_key", "apikey",
		"token", "secret",
		"auth", "authorization",
	}

	for _, sensitive := range sensitiveKeys {
		if strings.Contains(lowerKey, sensitive) {
			return true
		}
	}

	return false
}

// redactValue redacts a sensitive value completely, keeping a short prefix
// for identification when the value is long enough.
func redactValue(value any) any {
	switch v := value.(type) {
	case string:
		if v == "" {
			return ""
		}
		if len(v) <= 4 {
			return "***"
		}
		return v[:4] + "***"
	default:
		return "***"
	}
}
