package output

import (
	"fmt"
	"strings"
)

// CommandHints maps command names to related commands users might want to run next
var CommandHints = map[string][]string{
	"login":           {"whoami", "dashboard"},
	"logout":          {"login"},
	"signup":          {"login"},
	"dashboard":       {"tasks list", "report"},
	"tasks create":    {"tasks list", "dashboard"},
	"tasks status":    {"tasks list", "dashboard"},
	"users add":       {"users list"},
	"users delete":    {"users list", "audit"},
	"pending approve": {"pending list", "users list"},
	"pending reject":  {"pending list"},
	"files upload":    {"files list"},
	"messages post":   {"messages list"},
	"report":          {"dashboard"},
}

// PrintHints prints "See also" hints for a command. No-op if command has no hints.
func (p *Printer) PrintHints(command string) {
	if p.quiet {
		return
	}
	hints, ok := CommandHints[command]
	if !ok || len(hints) == 0 {
		return
	}

	cmds := make([]string, len(hints))
	for i, h := range hints {
		cmds[i] = "taskflowctl " + h
	}
	fmt.Fprintf(p.out, "\nSee also: %s\n", strings.Join(cmds, ", "))
}
