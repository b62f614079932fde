package log

import (
	"log/slog"
	"net/url"
)

// ScrubbedURL returns an attribute holding the URL with its password masked.
func ScrubbedURL(name string, rawURL string) slog.Attr {
	u, err := url.Parse(rawURL)
	if err != nil {
		return slog.String(name, rawURL)
	}

	if u.User == nil {
		return slog.String(name, u.String())
	}

	scrubbed := *u
	if _, hasPassword := u.User.Password(); hasPassword {
		scrubbed.User = url.UserPassword(u.User.Username(), "xxx")
	}

	return slog.String(name, scrubbed.String())
}
