// Package urlmatch decides whether the filter runs on a given feed page.
package urlmatch

import (
	"regexp"
	"strings"

	"github.com/bnema/activity-feed-filter/internal/models"
)

// Page identifies one kind of feed page
type Page string

const (
	PageHome      Page = "home"
	PageProfile   Page = "profile"
	PageSocial    Page = "social"
	PageGuestHome Page = "guest_home"
)

// Page URL patterns; * matches any run of characters
var patterns = map[Page]string{
	PageHome:      "https://anilist.co/home",
	PageProfile:   "https://anilist.co/user/*/",
	PageSocial:    "https://anilist.co/*/social",
	PageGuestHome: "https://anilist.co/social",
}

var (
	// Characters to escape in regex (except *)
	rePlainChars = regexp.MustCompile(`[.+?^${}()|[\]\\]`)
	// Asterisks in pattern
	reAsterisks = regexp.MustCompile(`\*+`)
)

var compiled = func() map[Page]*regexp.Regexp {
	m := make(map[Page]*regexp.Regexp, len(patterns))
	for page, pattern := range patterns {
		m[page] = regexp.MustCompile(PatternToRegex(pattern))
	}
	return m
}()

// PatternToRegex converts a wildcard URL pattern to an unanchored regex
func PatternToRegex(pattern string) string {
	if pattern == "" || pattern == "*" {
		return ".*"
	}

	reStr := rePlainChars.ReplaceAllString(pattern, `\$0`)
	return reAsterisks.ReplaceAllString(reStr, `.*`)
}

// Pattern returns the URL pattern of page
func Pattern(page Page) string {
	return patterns[page]
}

// Match reports whether url contains a match of page's pattern
func Match(page Page, url string) bool {
	re, ok := compiled[page]
	if !ok {
		return false
	}
	return re.MatchString(url)
}

// EnabledPages returns the pages switched on in runOn
func EnabledPages(runOn models.RunOnConfig) []Page {
	var pages []Page
	if runOn.Home {
		pages = append(pages, PageHome)
	}
	if runOn.Social {
		pages = append(pages, PageSocial)
	}
	if runOn.Profile {
		pages = append(pages, PageProfile)
	}
	if runOn.GuestHome {
		pages = append(pages, PageGuestHome)
	}
	return pages
}

// Allowed reports whether the filter should run on url
func Allowed(url string, runOn models.RunOnConfig) bool {
	url = strings.TrimSpace(url)
	for _, page := range EnabledPages(runOn) {
		if Match(page, url) {
			return true
		}
	}
	return false
}
