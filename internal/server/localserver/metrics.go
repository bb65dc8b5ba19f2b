package localserver

import "strings"

var knownCommands = map[string]bool{
	"PING":    true,
	"RESOLVE": true,
	"INFO":    true,
	"QUIT":    true,
}

// commandName returns the metric label for a command line. Unknown
// commands share one label to bound cardinality.
func commandName(line string) string {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "EMPTY"
	}
	cmd := strings.ToUpper(fields[0])
	if !knownCommands[cmd] {
		return "UNKNOWN"
	}
	return cmd
}

// replyStatus returns the metric label for a reply line: its first word,
// plus the error code for ERR replies.
func replyStatus(reply string) string {
	fields := strings.Fields(reply)
	if len(fields) == 0 {
		return ""
	}
	if fields[0] == "ERR" && len(fields) > 1 {
		return fields[1]
	}
	return fields[0]
}
