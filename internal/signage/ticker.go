package signage

import "strings"

// TickerSeparator sits between consecutive notices on the ticker line.
const TickerSeparator = "   •   "

// Ticker joins notices, newest first as given, into the single line the
// ticker scrolls. ok is false when there is nothing to show, in which case
// the ticker takes no space.
func Ticker(notices []string) (line string, ok bool) {
	msgs := make([]string, 0, len(notices))
	for _, n := range notices {
		if n = strings.TrimSpace(n); n != "" {
			msgs = append(msgs, n)
		}
	}
	if len(msgs) == 0 {
		return "", false
	}
	return strings.Join(msgs, TickerSeparator), true
}
