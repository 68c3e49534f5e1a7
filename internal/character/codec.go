package character

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	charerr "github.com/KirkDiggler/charsheet/internal/errors"
)

// PlaceholderName is the name a decoded character carries until its name attribute is read
const PlaceholderName = "Error"

// Section header lines of the .char format, in encoding order
const (
	SectionAttributes = "attributes"
	SectionStats      = "stats"
	SectionModifiers  = "modifiers"
)

const (
	recordIndent  = "\t"
	maxRecordSize = 1024 * 1024
)

// setter consumes one serialized record of the active section
type setter func(record string) error

// sectionSetters maps a title-cased header to the record handler of that section
var sectionSetters = map[string]func(c *Character) setter{
	"Attributes": func(c *Character) setter { return c.AddAttributeFromSerialized },
	"Stats":      func(c *Character) setter { return c.AddStatFromSerialized },
	"Modifiers":  func(c *Character) setter { return c.AddModifierFromSerialized },
}

// Encode returns the canonical .char text of the character
func (c *Character) Encode() string {
	c.ensure()
	var b strings.Builder

	b.WriteString(SectionAttributes + "\n")
	for _, name := range c.attributes.keys {
		writeRecord(&b, name+fieldSeparator+c.attributes.values[name])
	}

	b.WriteString(SectionStats + "\n")
	for _, name := range c.stats.keys {
		writeRecord(&b, name+fieldSeparator+strconv.Itoa(c.stats.values[name]))
	}

	b.WriteString(SectionModifiers + "\n")
	for _, m := range c.modifiers {
		writeRecord(&b, m.String())
	}

	return strings.TrimRight(b.String(), " \t\r\n")
}

// String implements fmt.Stringer with the encoded form
func (c *Character) String() string {
	return c.Encode()
}

// WriteTo writes the encoded character to w
func (c *Character) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, c.Encode())
	return int64(n), err
}

// HasPlaceholderName reports whether the character was decoded without a name record
// and has not been named since
func (c *Character) HasPlaceholderName() bool {
	return c.placeholder
}

// Unmarshal decodes .char text
func Unmarshal(text string) (*Character, error) {
	return Decode(strings.NewReader(text))
}

// Decode reads a character from .char text line by line.
//
// Header lines select the active section; tab-indented lines are records fed to it.
// If the input never sets the name attribute the character keeps PlaceholderName.
func Decode(r io.Reader) (*Character, error) {
	c := New(PlaceholderName)
	c.placeholder = true
	caser := cases.Title(language.Und)

	var active setter
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), maxRecordSize)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Text()

		if record, ok := strings.CutPrefix(line, recordIndent); ok {
			if active == nil {
				return nil, charerr.MissingSetterf("record on line %d appears before any section header", lineNum).
					WithMeta("line", lineNum)
			}
			if err := active(record); err != nil {
				return nil, charerr.Wrapf(err, "line %d", lineNum).WithMeta("line", lineNum)
			}
			continue
		}

		header := strings.TrimSpace(line)
		if header == "" {
			continue
		}
		newSetter, ok := sectionSetters[caser.String(header)]
		if !ok {
			return nil, charerr.UnknownSectionf("unknown section '%s' on line %d", header, lineNum).
				WithMeta("line", lineNum).
				WithMeta("section", header)
		}
		active = newSetter(c)
	}
	if err := scanner.Err(); err != nil {
		return nil, charerr.Wrap(err, "failed to read character")
	}

	return c, nil
}

func writeRecord(b *strings.Builder, record string) {
	b.WriteString(recordIndent)
	b.WriteString(record)
	b.WriteString("\n")
}
