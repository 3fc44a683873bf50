package report

import (
	"strings"
	"time"
)

const maxTitleLen = 100

// DeriveTitle builds a short title from the first line of an assessment,
// stripping markdown heading and bold markers. Results shorter than 3
// characters are replaced with a dated default.
func DeriveTitle(assessment string) string {
	title := assessment
	if i := strings.IndexByte(title, '\n'); i >= 0 {
		title = title[:i]
	}

	title = stripHeading(title)
	title = strings.TrimPrefix(title, "**")
	title = strings.TrimSuffix(title, "**")
	title = strings.TrimSuffix(title, "__")
	title = strings.TrimSpace(title)

	if runes := []rune(title); len(runes) > maxTitleLen {
		title = string(runes[:maxTitleLen-3]) + "..."
	}

	if len([]rune(title)) < 3 {
		title = "Health Assessment - " + time.Now().Format("1/2/2006")
	}

	return title
}

// stripHeading removes one leading run of '#' characters and the whitespace
// that follows it. A bare "##" with no trailing whitespace is not a heading
// marker and is left alone.
func stripHeading(s string) string {
	i := 0
	for i < len(s) && s[i] == '#' {
		i++
	}
	if i == 0 {
		return s
	}
	j := i
	for j < len(s) && (s[j] == ' ' || s[j] == '\t') {
		j++
	}
	if j == i {
		return s
	}
	return s[j:]
}
