package character_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/KirkDiggler/charsheet/internal/character"
	charerr "github.com/KirkDiggler/charsheet/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildRogue(t *testing.T) *character.Character {
	t.Helper()

	c := character.New("Rogue")
	c.AddAttribute("class", "thief")
	require.NoError(t, c.AddStat("agility", 5))
	require.NoError(t, c.AddStat("strength", 2))

	gloves := character.NewModifier("gloves", "thief's gloves", "agility")
	gloves.SetDelta("agility", 1)
	require.NoError(t, c.AddModifier(gloves))
	require.NoError(t, c.AddModifier(character.NewModifier("cloak", "elven cloak")))

	return c
}

func TestEncode(t *testing.T) {
	c := buildRogue(t)

	want := strings.Join([]string{
		"attributes",
		"\tname|Rogue",
		"\tclass|thief",
		"stats",
		"\tagility|5",
		"\tstrength|2",
		"modifiers",
		"\tgloves|thief's gloves|agility:1",
		"\tcloak|elven cloak",
	}, "\n")

	assert.Equal(t, want, c.Encode())
	assert.Equal(t, want, c.String())
}

func TestEncode_EmptySectionsKeepHeaders(t *testing.T) {
	c := character.New("Nobody")

	assert.Equal(t, "attributes\n\tname|Nobody\nstats\nmodifiers", c.Encode())
}

func TestEncode_IsDeterministic(t *testing.T) {
	c := character.New("Rogue")
	for _, stat := range []string{"a", "b", "c", "d", "e", "f", "g", "h"} {
		require.NoError(t, c.AddStat(stat, 1))
	}

	first := c.Encode()
	for i := 0; i < 20; i++ {
		assert.Equal(t, first, c.Encode())
	}
}

func TestWriteTo(t *testing.T) {
	c := buildRogue(t)
	var buf bytes.Buffer

	n, err := c.WriteTo(&buf)

	require.NoError(t, err)
	assert.Equal(t, int64(len(c.Encode())), n)
	assert.Equal(t, c.Encode(), buf.String())
}

func TestRoundTrip(t *testing.T) {
	c := buildRogue(t)

	decoded, err := character.Unmarshal(c.Encode())

	require.NoError(t, err)
	assert.Equal(t, c.Attributes(), decoded.Attributes())
	assert.Equal(t, c.Stats(), decoded.Stats())
	require.Len(t, decoded.Modifiers(), 2)
	for i, m := range c.Modifiers() {
		got := decoded.Modifiers()[i]
		assert.Equal(t, m.Name, got.Name)
		assert.Equal(t, m.Description, got.Description)
		assert.Equal(t, m.Stats(), got.Stats())
	}
	assert.Equal(t, c.Encode(), decoded.Encode())
	assert.False(t, decoded.HasPlaceholderName())
}

func TestRoundTrip_BareModifiers(t *testing.T) {
	c := character.New("Rogue")
	require.NoError(t, c.AddModifier(character.NewModifier("cloak", "")))
	require.NoError(t, c.AddModifier(character.NewModifier("ring", "", "luck")))
	require.NoError(t, c.AddModifier(character.NewModifier("boots", "")))

	decoded, err := character.Unmarshal(c.Encode())

	require.NoError(t, err)
	require.Len(t, decoded.Modifiers(), 3)
	assert.Equal(t, c.Encode(), decoded.Encode())
}

func TestRoundTrip_NamedLikePlaceholder(t *testing.T) {
	c := character.New(character.PlaceholderName)

	decoded, err := character.Unmarshal(c.Encode())

	require.NoError(t, err)
	assert.Equal(t, character.PlaceholderName, decoded.Name())
	assert.False(t, decoded.HasPlaceholderName())
}

func TestRoundTrip_Rogue(t *testing.T) {
	c := character.New("Rogue")
	require.NoError(t, c.AddStat("agility", 5))
	c.AddAttribute("class", "thief")

	decoded, err := character.Unmarshal(c.Encode())
	require.NoError(t, err)

	agility, err := decoded.Stat("agility")
	require.NoError(t, err)
	assert.Equal(t, 5, agility)

	class, err := decoded.Attribute("class")
	require.NoError(t, err)
	assert.Equal(t, "thief", class)

	name, err := decoded.Attribute("name")
	require.NoError(t, err)
	assert.Equal(t, "Rogue", name)
}

func TestDecode_MissingNameKeepsPlaceholder(t *testing.T) {
	c, err := character.Unmarshal("stats\n\tagility|5")

	require.NoError(t, err)
	assert.Equal(t, character.PlaceholderName, c.Name())
	assert.True(t, c.HasPlaceholderName())
	agility, err := c.Stat("agility")
	require.NoError(t, err)
	assert.Equal(t, 5, agility)

	c.AddAttribute(character.NameAttribute, "Rogue")
	assert.False(t, c.HasPlaceholderName())
}

func TestDecode_PaddedStatValue(t *testing.T) {
	c, err := character.Unmarshal("stats\n\tagility|5 \n\tluck| -2")

	require.NoError(t, err)
	assert.Equal(t, map[string]int{"agility": 5, "luck": -2}, c.Stats())
}

func TestDecode_Headers(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "lower case", input: "attributes\n\tname|Rogue"},
		{name: "upper case", input: "ATTRIBUTES\n\tname|Rogue"},
		{name: "title case", input: "Attributes\n\tname|Rogue"},
		{name: "surrounding spaces", input: "  attributes  \n\tname|Rogue"},
		{name: "crlf line endings", input: "attributes\r\n\tname|Rogue\r\n"},
		{name: "blank lines", input: "\nattributes\n\n\tname|Rogue\n\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := character.Unmarshal(tt.input)

			require.NoError(t, err)
			assert.Equal(t, "Rogue", c.Name())
		})
	}
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantCode charerr.Code
		wantLine int
	}{
		{
			name:     "record before any header",
			input:    "\tname|Rogue\nattributes",
			wantCode: charerr.CodeMissingSetter,
			wantLine: 1,
		},
		{
			name:     "unknown section",
			input:    "attributes\n\tname|Rogue\ninventory\n\trope|1",
			wantCode: charerr.CodeUnknownSection,
			wantLine: 3,
		},
		{
			name:     "record without indentation is a header",
			input:    "stats\nagility|5",
			wantCode: charerr.CodeUnknownSection,
			wantLine: 2,
		},
		{
			name:     "bad stat record",
			input:    "attributes\n\tname|Rogue\nstats\n\tagility",
			wantCode: charerr.CodeParseError,
			wantLine: 4,
		},
		{
			name:     "bad stat value",
			input:    "stats\n\tagility|fast",
			wantCode: charerr.CodeParseError,
			wantLine: 2,
		},
		{
			name:     "tab-only modifier record",
			input:    "modifiers\n\t\n\tcloak",
			wantCode: charerr.CodeParseError,
			wantLine: 2,
		},
		{
			name:     "tab-only stat record",
			input:    "stats\n\t",
			wantCode: charerr.CodeParseError,
			wantLine: 2,
		},
		{
			name:     "bad modifier record",
			input:    "modifiers\n\tring|gold|luck",
			wantCode: charerr.CodeParseError,
			wantLine: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := character.Unmarshal(tt.input)

			require.Error(t, err)
			assert.Nil(t, c)
			assert.Equal(t, tt.wantCode, charerr.GetCode(err), "got %v", err)
			assert.Equal(t, tt.wantLine, charerr.GetMeta(err)["line"])
		})
	}
}

func TestDecode_SectionsInAnyOrder(t *testing.T) {
	input := "modifiers\n\tcloak|elven cloak\nstats\n\tagility|5\nattributes\n\tname|Rogue"

	c, err := character.Unmarshal(input)

	require.NoError(t, err)
	assert.Equal(t, "Rogue", c.Name())
	require.Len(t, c.Modifiers(), 1)
	assert.Equal(t, "attributes\n\tname|Rogue\nstats\n\tagility|5\nmodifiers\n\tcloak|elven cloak", c.Encode())
}

func TestDecode_OnlyOneTabIsStripped(t *testing.T) {
	c, err := character.Unmarshal("attributes\n\t\tname|Rogue")

	require.NoError(t, err)
	value, err := c.Attribute("\tname")
	require.NoError(t, err)
	assert.Equal(t, "Rogue", value)
	assert.True(t, c.HasPlaceholderName())
}
