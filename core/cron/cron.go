// Package cron inventories scheduled jobs and the shell scripts they run.
package cron

import (
	"fmt"
	"path"
	"regexp"
	"slices"
	"strings"
)

var (
	cronLine     = regexp.MustCompile(`^(\S+)\s+(\S+)\s+(\S+)\s+(\S+)\s+(\S+)\s+(.+)$`)
	cronFileName = []string{"crontab", "cron", "crontab.txt"}

	// interpreters whose first argument names the real command
	interpreters = []string{"python", "python3", "bash", "sh", "/bin/bash", "/bin/sh", "perl", "php"}
	// shells whose first non-flag argument may be a script
	shells = []string{"bash", "sh", "/bin/bash", "/bin/sh", "/usr/bin/bash", "/usr/bin/sh"}

	scriptExtensions = []string{".sh", ".bash", ".zsh", ".ksh", ".csh"}
	scriptWords      = []string{"script", "backup", "maintenance", "cleanup", "monitor", "deploy"}
	scriptDirs       = []string{"/usr/local/bin/", "/opt/", "/home/", "/root/", "./"}
	shebangShells    = []string{"sh", "bash", "zsh", "ksh", "csh"}

	timingFields = []string{"minute", "hour", "day", "month", "weekday"}
)

// Entry is one parsed crontab line.
type Entry struct {
	Line     int
	Fields   [5]string
	Command  string
	Schedule string
}

// ScriptRef is a shell script detected inside a command.
type ScriptRef struct {
	Path string
	Name string
}

// IsCronFile reports whether a file name looks like a crontab.
func IsCronFile(name string) bool {
	lower := strings.ToLower(name)
	return slices.Contains(cronFileName, lower) || strings.Contains(lower, "cron")
}

// IsShellScript reports whether a file is a shell script by extension or shebang.
func IsShellScript(name, firstLine string) bool {
	if slices.Contains(scriptExtensions, strings.ToLower(suffix(name))) {
		return true
	}
	firstLine = strings.TrimSpace(firstLine)
	if !strings.HasPrefix(firstLine, "#!") {
		return false
	}
	return slices.ContainsFunc(shebangShells, func(sh string) bool { return strings.Contains(firstLine, sh) })
}

// ParseCrontab extracts scheduled entries, skipping blanks, comments and malformed lines.
func ParseCrontab(text string) []Entry {
	var entries []Entry
	text = strings.ReplaceAll(text, "\r\n", "\n")
	for i, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		m := cronLine.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		e := Entry{Line: i + 1, Command: strings.TrimSpace(m[6])}
		copy(e.Fields[:], m[1:6])
		e.Schedule = strings.Join(e.Fields[:], " ")
		entries = append(entries, e)
	}
	return entries
}

// NormalizeCommand reduces a command to the part that identifies it:
// interpreter plus script name, a script's base name, or the bare command.
func NormalizeCommand(command string) string {
	parts := strings.Fields(command)
	if len(parts) == 0 {
		return strings.TrimSpace(command)
	}
	first := parts[0]
	switch {
	case slices.Contains(interpreters, strings.ToLower(first)):
		if len(parts) > 1 {
			return first + " " + baseName(parts[1])
		}
		return strings.Join(parts, " ")
	case strings.HasPrefix(first, "/") || strings.HasPrefix(first, "./"):
		return baseName(first)
	default:
		return first
	}
}

// ExtractShellScript finds the shell script a command runs, if any.
func ExtractShellScript(command string) (ScriptRef, bool) {
	parts := strings.Fields(command)
	if len(parts) == 0 {
		return ScriptRef{}, false
	}
	first := parts[0]
	if IsScriptFile(first) {
		return newScriptRef(first), true
	}
	if slices.Contains(shells, strings.ToLower(first)) && len(parts) > 1 {
		candidate := parts[1]
		for _, p := range parts[1:] {
			if !strings.HasPrefix(p, "-") {
				candidate = p
				break
			}
		}
		if IsScriptFile(candidate) {
			return newScriptRef(candidate), true
		}
	}
	if (strings.Contains(first, "/sh") || strings.Contains(first, "/bash")) && len(parts) > 1 {
		if IsScriptFile(parts[1]) {
			return newScriptRef(parts[1]), true
		}
	}
	for _, p := range parts {
		if IsScriptFile(p) {
			return newScriptRef(p), true
		}
	}
	return ScriptRef{}, false
}

// IsScriptFile reports whether a path looks like a shell script.
func IsScriptFile(p string) bool {
	if p == "" {
		return false
	}
	ext := strings.ToLower(suffix(p))
	if slices.Contains(scriptExtensions, ext) {
		return true
	}
	if ext != "" {
		return false
	}
	name := strings.ToLower(baseName(p))
	if slices.ContainsFunc(scriptWords, func(w string) bool { return strings.Contains(name, w) }) {
		return true
	}
	return slices.ContainsFunc(scriptDirs, func(d string) bool { return strings.HasPrefix(p, d) })
}

// DescribeTiming renders the five schedule fields as text, omitting wildcards.
func DescribeTiming(fields [5]string) string {
	var parts []string
	for i, v := range fields {
		if v == "*" {
			continue
		}
		unit := timingFields[i]
		switch {
		case strings.Contains(v, "/"):
			parts = append(parts, fmt.Sprintf("every %s %ss", strings.SplitN(v, "/", 3)[1], unit))
		case strings.Contains(v, "-"), strings.Contains(v, ","):
			parts = append(parts, fmt.Sprintf("%ss %s", unit, v))
		default:
			parts = append(parts, fmt.Sprintf("%s %s", unit, v))
		}
	}
	if len(parts) == 0 {
		return "every minute"
	}
	return strings.Join(parts, ", ")
}

// DescribeSchedule is DescribeTiming for a space-joined schedule string.
func DescribeSchedule(schedule string) string {
	var fields [5]string
	copy(fields[:], strings.Fields(schedule))
	return DescribeTiming(fields)
}

func newScriptRef(p string) ScriptRef {
	return ScriptRef{Path: p, Name: baseName(p)}
}

// baseName returns the final path element, ignoring trailing slashes.
func baseName(p string) string {
	trimmed := strings.TrimRight(p, "/")
	if trimmed == "" {
		return ""
	}
	return path.Base(trimmed)
}

// suffix returns the extension of the final path element. Dot files such as
// ".profile" have no extension.
func suffix(p string) string {
	name := baseName(p)
	i := strings.LastIndex(name, ".")
	if i <= 0 || i == len(name)-1 {
		return ""
	}
	return name[i:]
}
