package hotkey

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	xhotkey "golang.design/x/hotkey"
)

func TestParseComboBracketedSpec(t *testing.T) {
	combo, err := ParseCombo("<ctrl>+<shift>+<space>")
	require.NoError(t, err)
	assert.Equal(t, xhotkey.KeySpace, combo.Key)
	assert.Len(t, combo.Modifiers, 2)
	assert.Equal(t, "<ctrl>+<shift>+<space>", combo.String())
}

func TestParseComboBareTokens(t *testing.T) {
	combo, err := ParseCombo("ctrl+shift+r")
	require.NoError(t, err)
	assert.Equal(t, xhotkey.KeyR, combo.Key)
	assert.Len(t, combo.Modifiers, 2)
}

func TestParseComboNormalizesModifierVariants(t *testing.T) {
	left, err := ParseCombo("<lctrl>+<space>")
	require.NoError(t, err)
	right, err := ParseCombo("<rctrl>+<space>")
	require.NoError(t, err)
	plain, err := ParseCombo("<ctrl>+<space>")
	require.NoError(t, err)

	assert.Equal(t, plain.Modifiers, left.Modifiers)
	assert.Equal(t, plain.Modifiers, right.Modifiers)

	// Duplicates collapse to a single modifier.
	dup, err := ParseCombo("ctrl+lctrl+s")
	require.NoError(t, err)
	assert.Len(t, dup.Modifiers, 1)
}

func TestParseComboModifierFreeKey(t *testing.T) {
	combo, err := ParseCombo("<f9>")
	require.NoError(t, err)
	assert.Equal(t, xhotkey.KeyF9, combo.Key)
	assert.Empty(t, combo.Modifiers)
}

func TestParseComboErrors(t *testing.T) {
	cases := map[string]string{
		"empty":              "",
		"blank":              "   ",
		"unknown key":        "<ctrl>+<flux>",
		"modifiers only":     "<ctrl>+<shift>",
		"two keys":           "<ctrl>+a+b",
		"modifier after key": "<space>+<ctrl>",
		"empty token":        "<ctrl>++<space>",
	}
	for name, spec := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseCombo(spec)
			require.Error(t, err)
		})
	}
}
