package logging

import (
	"log/slog"
	"regexp"

	"github.com/m-mizutani/masq"
)

// sensitiveKeys are attribute and struct field names whose values are
// always masked. Matching is exact.
var sensitiveKeys = []string{
	"authorization", "Authorization",
	"cookie", "Cookie", "set_cookie",
	"password", "secret", "token",
	"apiKey", "api_key",
	"accessToken", "access_token",
	"refreshToken", "refresh_token",
	"credentials", "private_key",
}

// sensitivePrefixes mask any key starting with them, such as secret_store.
var sensitivePrefixes = []string{"secret", "private"}

// credentialValue matches bearer/basic header values and bare JWTs, which
// may turn up under any key.
var credentialValue = regexp.MustCompile(`(?i)^(?:bearer|basic)\s+\S+$|^eyJ[\w-]*\.eyJ[\w-]*\.[\w-]*$`)

// RedactOptions returns the masq options every logger from New applies,
// followed by extra.
func RedactOptions(extra ...masq.Option) []masq.Option {
	opts := make([]masq.Option, 0, len(sensitiveKeys)+len(sensitivePrefixes)+1+len(extra))

	for _, k := range sensitiveKeys {
		opts = append(opts, masq.WithFieldName(k))
	}

	for _, p := range sensitivePrefixes {
		opts = append(opts, masq.WithFieldPrefix(p))
	}

	opts = append(opts, masq.WithRegex(credentialValue))

	return append(opts, extra...)
}

// NewReplaceAttr returns a slog ReplaceAttr func that masks sensitive
// values using RedactOptions(extra...).
func NewReplaceAttr(extra ...masq.Option) func(groups []string, a slog.Attr) slog.Attr {
	return masq.New(RedactOptions(extra...)...)
}
