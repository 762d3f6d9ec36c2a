// Package keybind binds shortcut strings to callbacks and dispatches bubbletea key messages to them.
package keybind

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// keyAliases maps shortcut key names as written in action catalogs to bubbletea key strings.
var keyAliases = map[string]string{
	"space":      " ",
	"spacebar":   " ",
	"return":     "enter",
	"escape":     "esc",
	"del":        "delete",
	"ins":        "insert",
	"pageup":     "pgup",
	"page_up":    "pgup",
	"pagedown":   "pgdown",
	"page_down":  "pgdown",
	"arrowup":    "up",
	"arrowdown":  "down",
	"arrowleft":  "left",
	"arrowright": "right",
	"plus":       "+",
	"minus":      "-",
}

// modifierAliases maps modifier spellings to canonical names.
var modifierAliases = map[string]string{
	"ctrl":             "ctrl",
	"control":          "ctrl",
	"commandorcontrol": "ctrl",
	"cmdorctrl":        "ctrl",
	"command":          "ctrl",
	"cmd":              "ctrl",
	"meta":             "alt",
	"alt":              "alt",
	"option":           "alt",
	"shift":            "shift",
}

// Normalize converts a shortcut such as "CommandOrControl+Shift+Up" into the
// string bubbletea reports for the same key press ("ctrl+shift+up").
// Modifiers are emitted in bubbletea's order: alt, ctrl, shift.
func Normalize(shortcut string) string {
	shortcut = strings.TrimSpace(shortcut)
	if shortcut == "" {
		return ""
	}
	// A lone "+" is the plus key, not a separator.
	if shortcut == "+" {
		return "+"
	}

	parts := strings.Split(shortcut, "+")
	// "ctrl++" splits into ["ctrl", "", ""]
	key := parts[len(parts)-1]
	mods := parts[:len(parts)-1]
	if key == "" && len(parts) >= 2 && parts[len(parts)-2] == "" {
		key = "+"
		mods = parts[:len(parts)-2]
	}

	var alt, ctrl, shift bool
	for _, m := range mods {
		switch modifierAliases[strings.ToLower(strings.TrimSpace(m))] {
		case "alt":
			alt = true
		case "ctrl":
			ctrl = true
		case "shift":
			shift = true
		}
	}

	key = normalizeKey(strings.TrimSpace(key))

	// bubbletea reports shift+letter as the upper-case rune.
	if shift && !ctrl && isSingleLetter(key) {
		key = strings.ToUpper(key)
		shift = false
	}

	var b strings.Builder
	if alt {
		b.WriteString("alt+")
	}
	if ctrl {
		b.WriteString("ctrl+")
	}
	if shift {
		b.WriteString("shift+")
	}
	b.WriteString(key)
	return b.String()
}

func normalizeKey(key string) string {
	if utf8.RuneCountInString(key) == 1 {
		// Single characters keep their case unless they are letters typed
		// without shift, which catalogs write upper-case ("Ctrl+J").
		r, _ := utf8.DecodeRuneInString(key)
		if unicode.IsLetter(r) {
			return string(unicode.ToLower(r))
		}
		return key
	}
	lower := strings.ToLower(key)
	if alias, ok := keyAliases[lower]; ok {
		return alias
	}
	return lower
}

func isSingleLetter(key string) bool {
	if utf8.RuneCountInString(key) != 1 {
		return false
	}
	r, _ := utf8.DecodeRuneInString(key)
	return unicode.IsLetter(r)
}
