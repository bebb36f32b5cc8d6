package common

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// FormatBalance formats a point amount with thousand separators
func FormatBalance(balance int64) string {
	str := fmt.Sprintf("%d", balance)
	if balance < 0 {
		str = str[1:]
	}

	n := len(str)
	if n > 3 {
		var result strings.Builder
		for i, digit := range str {
			if i > 0 && (n-i)%3 == 0 {
				result.WriteRune(',')
			}
			result.WriteRune(digit)
		}
		str = result.String()
	}

	if balance < 0 {
		return "-" + str
	}
	return str
}

// FormatWait renders a remaining cooldown as "H hours, M minutes", rounded
// up to the next whole minute so a nearly-expired cooldown never reads as
// zero wait.
func FormatWait(d time.Duration) string {
	minutes := int(math.Ceil(d.Minutes()))
	if minutes < 1 {
		minutes = 1
	}
	return fmt.Sprintf("%d hours, %d minutes", minutes/60, minutes%60)
}

// FormatDiscordTimestamp formats a time as a Discord timestamp that displays
// in the reader's local timezone. Format types: "t" short time, "F" long
// date/time, "R" relative time, etc.
func FormatDiscordTimestamp(t time.Time, format string) string {
	return fmt.Sprintf("<t:%d:%s>", t.Unix(), format)
}
