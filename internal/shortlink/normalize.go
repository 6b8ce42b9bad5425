package shortlink

import "strings"

// DefaultScheme is prepended to input URLs that carry no accepted scheme.
const DefaultScheme = "https://"

var acceptedSchemes = []string{"http://", "https://", "ftp://", "ftps://"}

// NormalizeURL prepends DefaultScheme when the input does not start with
// one of the accepted scheme prefixes (case-insensitive). Inputs that
// already carry a scheme are returned unchanged.
func NormalizeURL(rawURL string) string {
	trimmed := strings.TrimSpace(rawURL)
	lower := strings.ToLower(trimmed)

	for _, scheme := range acceptedSchemes {
		if strings.HasPrefix(lower, scheme) {
			return trimmed
		}
	}

	return DefaultScheme + trimmed
}
