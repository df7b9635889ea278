package mcpserver

import (
	"strings"

	"github.com/starford/rolodex/internal/command"
	"github.com/starford/rolodex/internal/models"
)

const referenceIntro = `# Rolodex Command Reference

Every change to the address book goes through one command line, exactly as a
user would type it. Send it with the run_command tool.

## Argument prefixes

| prefix | field  | notes |
|--------|--------|-------|
| n:     | name   | letters, digits and spaces |
| p:     | phone  | digits only, at least 3 |
| e:     | email  | local-part@domain |
| s:     | status | one of: %STATUSES% |
| t:     | tag    | repeatable; letters, digits, '-' and '_' |
| r:     | remark | free text, may be empty |

A prefix only counts at the start of the arguments or after whitespace.

## Indices

INDEX is the 1-based position in the list displayed after the last command.
Run list or find first, then use positions from that result.

## Matching

find compares whole words, ignoring case. Keywords inside one field are ORed;
different fields are ANDed. Bare keywords (no prefix) search names.

## Commands

`

// CommandReference returns the Markdown reference of the command language
// served to MCP clients.
func CommandReference() string {
	var b strings.Builder
	b.WriteString(strings.Replace(referenceIntro, "%STATUSES%", strings.Join(models.StatusNames(), ", "), 1))
	for _, usage := range strings.Split(command.HelpText(), "\n\n") {
		word, rest, _ := strings.Cut(usage, ":")
		b.WriteString("### " + word + "\n\n")
		b.WriteString(strings.TrimSpace(rest))
		b.WriteString("\n\n")
	}
	return b.String()
}
