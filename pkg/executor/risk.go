package executor

import (
	"fmt"
	"path/filepath"
	"strings"
)

// destructiveCommands are executables that can destroy data or stop the machine.
var destructiveCommands = map[string]struct{}{
	"rm":       {},
	"rmdir":    {},
	"dd":       {},
	"mkfs":     {},
	"fdisk":    {},
	"shutdown": {},
	"reboot":   {},
	"halt":     {},
	"poweroff": {},
	"init":     {},
	"killall":  {},
	"kill":     {},
	"pkill":    {},
	"killall5": {},
	"chmod":    {},
	"chown":    {},
	"chgrp":    {},
	"mount":    {},
	"umount":   {},
	"parted":   {},
	"sfdisk":   {},
	"wipefs":   {},
	"shred":    {},
	"truncate": {},
}

// wrappers run the next word as the actual command.
var wrappers = map[string]struct{}{
	"sudo":    {},
	"doas":    {},
	"env":     {},
	"nohup":   {},
	"time":    {},
	"xargs":   {},
	"command": {},
	"exec":    {},
}

// Risky returns the destructive executables invoked anywhere in command,
// in order of first appearance. Pipelines, command lists and sudo-style
// wrappers are looked through.
func Risky(command string) []string {
	var found []string
	seen := map[string]bool{}
	for _, segment := range splitSegments(command) {
		argv, err := parseCommandLine(segment)
		if err != nil {
			argv = strings.Fields(segment)
		}
		name, ok := executableOf(argv)
		if !ok || seen[name] || !isDestructive(name) {
			continue
		}
		seen[name] = true
		found = append(found, name)
	}
	return found
}

// splitSegments breaks a command line at control operators.
func splitSegments(command string) []string {
	replacer := strings.NewReplacer("&&", "\n", "||", "\n", ";", "\n", "|", "\n", "&", "\n", "$(", "\n", "`", "\n", ")", "\n")
	var out []string
	for _, seg := range strings.Split(replacer.Replace(command), "\n") {
		if seg = strings.TrimSpace(seg); seg != "" {
			out = append(out, seg)
		}
	}
	return out
}

// executableOf skips variable assignments and wrappers and returns the
// base name of the command actually run.
func executableOf(argv []string) (string, bool) {
	for _, arg := range argv {
		if strings.HasPrefix(arg, "-") || isAssignment(arg) {
			continue
		}
		name := strings.ToLower(filepath.Base(arg))
		if _, wrap := wrappers[name]; wrap {
			continue
		}
		return name, true
	}
	return "", false
}

func isAssignment(arg string) bool {
	eq := strings.IndexByte(arg, '=')
	return eq > 0 && !strings.ContainsAny(arg[:eq], "/.")
}

func isDestructive(name string) bool {
	if _, ok := destructiveCommands[name]; ok {
		return true
	}
	return strings.HasPrefix(name, "mkfs.")
}

// parseCommandLine splits a command segment into argv without shell expansion.
func parseCommandLine(input string) ([]string, error) {
	var (
		args     []string
		current  strings.Builder
		inSingle bool
		inDouble bool
		escaped  bool
	)

	flush := func() {
		if current.Len() == 0 {
			return
		}
		args = append(args, current.String())
		current.Reset()
	}

	for _, r := range input {
		switch {
		case escaped:
			current.WriteRune(r)
			escaped = false
		case r == '\\' && !inSingle:
			escaped = true
		case r == '\'' && !inDouble:
			inSingle = !inSingle
		case r == '"' && !inSingle:
			inDouble = !inDouble
		case (r == ' ' || r == '\t') && !inSingle && !inDouble:
			flush()
		default:
			current.WriteRune(r)
		}
	}

	if escaped {
		return nil, fmt.Errorf("unterminated escape in command")
	}
	if inSingle || inDouble {
		return nil, fmt.Errorf("unterminated quote in command")
	}
	flush()

	return args, nil
}
