// Package desktop resolves intents against freedesktop.org desktop entries
// and launches the programs they describe.
package desktop

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

const (
	groupEntry        = "Desktop Entry"
	groupActionPrefix = "Desktop Action "

	keyDistractionOptimized = "X-Distraction-Optimized"
)

// Action is a desktop action declared by an entry.
type Action struct {
	ID   string
	Name string
	Exec string
}

// Entry is a parsed desktop entry.
type Entry struct {
	// ID is the desktop file ID without the .desktop suffix.
	ID                   string
	Name                 string
	Exec                 string
	Icon                 string
	NoDisplay            bool
	Hidden               bool
	DistractionOptimized bool
	Actions              map[string]Action
}

// Exported reports whether the entry is visible to other applications.
func (e *Entry) Exported() bool {
	return !e.NoDisplay && !e.Hidden
}

// ParseFile parses the desktop entry at path.
func ParseFile(path string) (*Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	id := strings.TrimSuffix(filepath.Base(path), ".desktop")
	entry, err := Parse(f, id)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return entry, nil
}

// Parse reads a desktop entry. Localized keys are ignored; only actions
// listed in the Actions key are kept.
func Parse(r io.Reader, id string) (*Entry, error) {
	groups := make(map[string]map[string]string)
	var current map[string]string

	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		if strings.HasPrefix(text, "[") {
			if !strings.HasSuffix(text, "]") {
				return nil, fmt.Errorf("line %d: malformed group header", line)
			}
			name := text[1 : len(text)-1]
			current = make(map[string]string)
			groups[name] = current
			continue
		}
		key, value, ok := strings.Cut(text, "=")
		if !ok {
			return nil, fmt.Errorf("line %d: expected key=value", line)
		}
		if current == nil {
			return nil, fmt.Errorf("line %d: key outside group", line)
		}
		key = strings.TrimSpace(key)
		if strings.Contains(key, "[") {
			continue
		}
		current[key] = strings.TrimSpace(value)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	root, ok := groups[groupEntry]
	if !ok {
		return nil, fmt.Errorf("missing [%s] group", groupEntry)
	}

	entry := &Entry{
		ID:                   id,
		Name:                 root["Name"],
		Exec:                 root["Exec"],
		Icon:                 root["Icon"],
		NoDisplay:            parseBool(root["NoDisplay"]),
		Hidden:               parseBool(root["Hidden"]),
		DistractionOptimized: parseBool(root[keyDistractionOptimized]),
		Actions:              make(map[string]Action),
	}
	for _, actionID := range splitList(root["Actions"]) {
		group, ok := groups[groupActionPrefix+actionID]
		if !ok {
			continue
		}
		entry.Actions[actionID] = Action{
			ID:   actionID,
			Name: group["Name"],
			Exec: group["Exec"],
		}
	}
	return entry, nil
}

func parseBool(v string) bool {
	return v == "true"
}

func splitList(v string) []string {
	var out []string
	for _, s := range strings.Split(v, ";") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// CommandLine splits an Exec value into arguments. Field codes are
// dropped, double quotes group arguments and %% yields a literal percent.
func CommandLine(exec string) []string {
	var (
		args    []string
		cur     strings.Builder
		inQuote bool
		started bool
	)
	flush := func() {
		if started {
			args = append(args, cur.String())
		}
		cur.Reset()
		started = false
	}

	runes := []rune(exec)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch {
		case r == '"':
			inQuote = !inQuote
			started = true
		case r == '\\' && inQuote && i+1 < len(runes):
			i++
			cur.WriteRune(runes[i])
		case r == '%' && i+1 < len(runes):
			i++
			if runes[i] == '%' {
				cur.WriteRune('%')
				started = true
			}
		case (r == ' ' || r == '\t') && !inQuote:
			flush()
		default:
			cur.WriteRune(r)
			started = true
		}
	}
	flush()
	return args
}
