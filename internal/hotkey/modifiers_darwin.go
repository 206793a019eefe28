//go:build darwin

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
	"alt":     hotkey.ModOption,
	"lalt":    hotkey.ModOption,
	"ralt":    hotkey.ModOption,
	"option":  hotkey.ModOption,
	"super":   hotkey.ModCmd,
	"cmd":     hotkey.ModCmd,
	"command": hotkey.ModCmd,
	"win":     hotkey.ModCmd,
	"meta":    hotkey.ModCmd,
}
