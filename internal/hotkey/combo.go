// Package hotkey binds a global key combination and turns raw key events into
// toggle or hold-to-record triggers.
package hotkey

import (
	"fmt"
	"strings"

	"golang.design/x/hotkey"
)

// Combo is a parsed key combination: zero or more modifiers plus one key.
type Combo struct {
	Modifiers []hotkey.Modifier
	Key       hotkey.Key

	spec string
}

func (c Combo) String() string {
	return c.spec
}

// keyNames maps normalized key tokens to hotkey codes. Modifier tokens live
// in the per-platform modifierNames tables.
var keyNames = map[string]hotkey.Key{
	"space":  hotkey.KeySpace,
	"return": hotkey.KeyReturn,
	"enter":  hotkey.KeyReturn,
	"escape": hotkey.KeyEscape,
	"esc":    hotkey.KeyEscape,
	"tab":    hotkey.KeyTab,
	"delete": hotkey.KeyDelete,
	"up":     hotkey.KeyUp,
	"down":   hotkey.KeyDown,
	"left":   hotkey.KeyLeft,
	"right":  hotkey.KeyRight,

	"a": hotkey.KeyA, "b": hotkey.KeyB, "c": hotkey.KeyC, "d": hotkey.KeyD,
	"e": hotkey.KeyE, "f": hotkey.KeyF, "g": hotkey.KeyG, "h": hotkey.KeyH,
	"i": hotkey.KeyI, "j": hotkey.KeyJ, "k": hotkey.KeyK, "l": hotkey.KeyL,
	"m": hotkey.KeyM, "n": hotkey.KeyN, "o": hotkey.KeyO, "p": hotkey.KeyP,
	"q": hotkey.KeyQ, "r": hotkey.KeyR, "s": hotkey.KeyS, "t": hotkey.KeyT,
	"u": hotkey.KeyU, "v": hotkey.KeyV, "w": hotkey.KeyW, "x": hotkey.KeyX,
	"y": hotkey.KeyY, "z": hotkey.KeyZ,

	"0": hotkey.Key0, "1": hotkey.Key1, "2": hotkey.Key2, "3": hotkey.Key3,
	"4": hotkey.Key4, "5": hotkey.Key5, "6": hotkey.Key6, "7": hotkey.Key7,
	"8": hotkey.Key8, "9": hotkey.Key9,

	"f1": hotkey.KeyF1, "f2": hotkey.KeyF2, "f3": hotkey.KeyF3,
	"f4": hotkey.KeyF4, "f5": hotkey.KeyF5, "f6": hotkey.KeyF6,
	"f7": hotkey.KeyF7, "f8": hotkey.KeyF8, "f9": hotkey.KeyF9,
	"f10": hotkey.KeyF10, "f11": hotkey.KeyF11, "f12": hotkey.KeyF12,
}

// ParseCombo parses a spec like "<ctrl>+<shift>+<space>". Tokens are split on
// "+", angle brackets are optional, and left/right modifier variants collapse
// to one modifier. Exactly one non-modifier key is required, listed last.
func ParseCombo(spec string) (Combo, error) {
	trimmed := strings.TrimSpace(spec)
	if trimmed == "" {
		return Combo{}, fmt.Errorf("hotkey spec is empty")
	}

	var (
		mods []hotkey.Modifier
		seen = map[hotkey.Modifier]bool{}
		key  hotkey.Key
		have bool
	)

	for _, raw := range strings.Split(trimmed, "+") {
		token := normalizeToken(raw)
		if token == "" {
			return Combo{}, fmt.Errorf("hotkey spec %q has an empty token", spec)
		}

		if mod, ok := modifierNames[token]; ok {
			if have {
				return Combo{}, fmt.Errorf("hotkey spec %q lists modifier %q after the key", spec, token)
			}
			if !seen[mod] {
				seen[mod] = true
				mods = append(mods, mod)
			}
			continue
		}

		k, ok := keyNames[token]
		if !ok {
			return Combo{}, fmt.Errorf("hotkey spec %q has unknown key %q", spec, token)
		}
		if have {
			return Combo{}, fmt.Errorf("hotkey spec %q lists more than one key", spec)
		}
		key = k
		have = true
	}

	if !have {
		return Combo{}, fmt.Errorf("hotkey spec %q has no key", spec)
	}

	return Combo{Modifiers: mods, Key: key, spec: trimmed}, nil
}

func normalizeToken(raw string) string {
	token := strings.ToLower(strings.TrimSpace(raw))
	token = strings.TrimPrefix(token, "<")
	token = strings.TrimSuffix(token, ">")
	return strings.ReplaceAll(token, "_", "")
}
