//go:build linux

package hotkey

import "golang.design/x/hotkey"

// modifierNames collapses left/right variants and platform aliases. On X11,
// alt is Mod1 and super is Mod4.
var modifierNames = map[string]hotkey.Modifier{
	"ctrl":    hotkey.ModCtrl,
	"control": hotkey.ModCtrl,
	"lctrl":   hotkey.ModCtrl,
	"rctrl":   hotkey.ModCtrl,
	"ctrll":   hotkey.ModCtrl,
	"ctrlr":   hotkey.ModCtrl,
	"shift":   hotkey.ModShift,
	"lshift":  hotkey.ModShift,
	"rshift":  hotkey.ModShift,
	"shiftl":  hotkey.ModShift,
	"shiftr":  hotkey.ModShift,
	"alt":     hotkey.Mod1,
	"lalt":    hotkey.Mod1,
	"ralt":    hotkey.Mod1,
	"option":  hotkey.Mod1,
	"super":   hotkey.Mod4,
	"cmd":     hotkey.Mod4,
	"command": hotkey.Mod4,
	"win":     hotkey.Mod4,
	"meta":    hotkey.Mod4,
}
