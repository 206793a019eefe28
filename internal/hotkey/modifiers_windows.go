//go:build windows

package hotkey

import "golang.design/x/hotkey"

// modifierNames collapses left/right variants and platform aliases.
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
	"alt":     hotkey.ModAlt,
	"lalt":    hotkey.ModAlt,
	"ralt":    hotkey.ModAlt,
	"option":  hotkey.ModAlt,
	"super":   hotkey.ModWin,
	"cmd":     hotkey.ModWin,
	"command": hotkey.ModWin,
	"win":     hotkey.ModWin,
	"meta":    hotkey.ModWin,
}
