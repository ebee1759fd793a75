package catalog

import (
	"fmt"
	"net/url"
	"sort"
	"strings"
)

// _regions maps the supported region codes to the cloud API base URLs.
var _regions = map[string]string{
	"US": "https://api.solace.cloud",
	"EU": "https://api.solacecloud.eu",
	"AU": "https://api.solacecloud.com.au",
	"SG": "https://api.solacecloud.sg",
}

// Regions returns the supported region codes.
func Regions() []string {
	codes := make([]string, 0, len(_regions))
	for code := range _regions {
		codes = append(codes, code)
	}

	sort.Strings(codes)

	return codes
}

// ValidRegion reports whether the region code is supported.
func ValidRegion(region string) bool {
	_, ok := _regions[strings.ToUpper(region)]
	return ok
}

// ResolveURL returns the API base URL. A non-empty override takes
// precedence over the region.
func ResolveURL(region, override string) (string, error) {
	if override != "" {
		u, err := url.Parse(override)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return "", fmt.Errorf("invalid url override %q", override)
		}

		return strings.TrimRight(override, "/"), nil
	}

	base, ok := _regions[strings.ToUpper(region)]
	if !ok {
		return "", fmt.Errorf("unknown region %q", region)
	}

	return base, nil
}
