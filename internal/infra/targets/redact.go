package targets

import (
	"net/url"
	"strings"
)

const mask = "****"

var secretKeys = map[string]bool{"password": true, "pass": true, "pwd": true}

// RedactDSN masks credentials in a DSN before it is logged. URL DSNs keep
// their user name; keyword DSNs keep every non-secret pair. Anything else,
// such as a bare SQLite path, is masked entirely.
func RedactDSN(dsn string) string {
	dsn = strings.TrimSpace(dsn)
	switch {
	case dsn == "":
		return ""
	case strings.Contains(dsn, "://"):
		if out, ok := redactURL(dsn); ok {
			return out
		}
	case strings.Contains(dsn, "="):
		if out, ok := redactKeywords(dsn); ok {
			return out
		}
	}
	return mask
}

func redactURL(dsn string) (string, bool) {
	u, err := url.Parse(dsn)
	if err != nil || u.Host == "" {
		return "", false
	}
	if u.User != nil {
		u.User = url.UserPassword(u.User.Username(), mask)
	}
	q := u.Query()
	for k := range q {
		if secretKeys[strings.ToLower(k)] {
			q.Set(k, mask)
		}
	}
	u.RawQuery = q.Encode()
	return u.String(), true
}

func redactKeywords(dsn string) (string, bool) {
	pairs := strings.Fields(dsn)
	hit := false
	for i, p := range pairs {
		k, _, ok := strings.Cut(p, "=")
		if ok && secretKeys[strings.ToLower(k)] {
			pairs[i] = k + "=" + mask
			hit = true
		}
	}
	return strings.Join(pairs, " "), hit
}
