package session

import "fmt"

// SecondsText renders a countdown as (h:)m:ss, such as "1:59" or "1:00:05".
func SecondsText(sec int) string {
	if sec < 0 {
		sec = 0
	}
	if sec >= 3600 {
		return fmt.Sprintf("%d:%02d:%02d", sec/3600, (sec%3600)/60, sec%60)
	}
	return fmt.Sprintf("%d:%02d", sec/60, sec%60)
}
