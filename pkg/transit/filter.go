package transit

import "strings"

// MatchesLineFilter reports whether any of the labels contains the filter,
// case-insensitively. An empty filter matches everything
func MatchesLineFilter(filter string, labels ...string) bool {
	if filter == "" {
		return true
	}

	filter = strings.ToLower(filter)

	for _, label := range labels {
		if strings.Contains(strings.ToLower(label), filter) {
			return true
		}
	}

	return false
}
