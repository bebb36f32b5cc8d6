package common

import (
	"regexp"
	"strconv"
)

var (
	mentionPattern = regexp.MustCompile(`<@!?(\d+)>`)
	bareIDPattern  = regexp.MustCompile(`\b\d{17,19}\b`)
)

// ParseUserIDs extracts user IDs from free text. Both mention tokens
// (<@123>, <@!123>) and bare 17-19 digit IDs are recognized. The result is
// de-duplicated and ordered by first appearance, mention matches before
// bare-ID matches. Returns an empty slice when nothing matches.
func ParseUserIDs(text string) []int64 {
	seen := make(map[int64]struct{})
	var ids []int64

	add := func(raw string) {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return
		}
		if _, ok := seen[id]; ok {
			return
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}

	for _, m := range mentionPattern.FindAllStringSubmatch(text, -1) {
		add(m[1])
	}
	for _, m := range bareIDPattern.FindAllString(text, -1) {
		add(m)
	}

	return ids
}
