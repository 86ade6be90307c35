package pathutil

import (
	"net/url"
	"regexp"
	"strings"
)

var (
	repeatedSlashes = regexp.MustCompile(`/{2,}`)
	// placeholderPrefix matches a leading business placeholder segment such
	// as "/TENANT/" or "/API_V2/".
	placeholderPrefix = regexp.MustCompile(`^/[A-Z][A-Z0-9_]*/`)
)

// HasRepeatedSlash reports whether p contains "//".
func HasRepeatedSlash(p string) bool {
	return strings.Contains(p, "//")
}

// CollapseSlashes replaces every run of "/" with a single "/".
func CollapseSlashes(p string) string {
	return repeatedSlashes.ReplaceAllString(p, "/")
}

// EnsureLeadingSlash prefixes "/" when p does not already start with one.
func EnsureLeadingSlash(p string) string {
	if strings.HasPrefix(p, "/") {
		return p
	}
	return "/" + p
}

// Clean applies the path hygiene repairs: repeated separators are collapsed
// and a missing leading "/" is added. Placeholder segments are left alone.
func Clean(p string) string {
	if p == "" {
		return p
	}
	return EnsureLeadingSlash(CollapseSlashes(p))
}

// Normalize returns the form used to correlate one endpoint across two
// snapshots: separators collapsed, a leading placeholder segment stripped,
// and a leading "/" guaranteed.
func Normalize(p string) string {
	p = CollapseSlashes(p)
	p = placeholderPrefix.ReplaceAllString(p, "/")
	return EnsureLeadingSlash(p)
}

// Join concatenates a base path (or server prefix) and a path key, dropping
// the trailing "/" of base so that "/" + "/users" stays "/users".
func Join(base, p string) string {
	if base == "" {
		return p
	}
	return strings.TrimSuffix(base, "/") + p
}

// ServerPrefix extracts the path part of a server URL. Relative URLs are
// returned as-is; absolute ones lose their scheme and host.
func ServerPrefix(serverURL string) string {
	if !strings.Contains(serverURL, "://") {
		return serverURL
	}
	u, err := url.Parse(serverURL)
	if err != nil {
		// Templated hosts ("https://{env}.example.com/v1") may not parse.
		rest := serverURL[strings.Index(serverURL, "://")+3:]
		if i := strings.Index(rest, "/"); i >= 0 {
			return rest[i:]
		}
		return ""
	}
	return u.EscapedPath()
}

// CleanServerURL collapses repeated separators in the path part of a server
// URL while leaving the scheme's "//" intact.
func CleanServerURL(serverURL string) string {
	i := strings.Index(serverURL, "://")
	if i < 0 {
		return CollapseSlashes(serverURL)
	}
	head, rest := serverURL[:i+3], serverURL[i+3:]
	return head + CollapseSlashes(rest)
}
