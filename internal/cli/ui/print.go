package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// Report palette. Styling is presentation only; every printer writes the
// same text with colors disabled via color.NoColor.
var (
	PluginName    = color.New(color.FgBlue)
	ElementName   = color.New(color.FgGreen)
	Heading       = color.New(color.FgYellow)
	PropName      = color.New(color.FgBlue)
	PropValue     = color.New(color.FgYellow)
	DataType      = color.New(color.FgGreen)
	ChildLink     = color.New(color.FgMagenta)
	CapsType      = color.New(color.FgYellow)
	StructName    = color.New(color.FgYellow)
	CapsFeature   = color.New(color.FgGreen)
	FieldName     = color.New(color.FgCyan)
	FieldValue    = color.New(color.FgBlue)
	PropAttrValue = color.New(color.FgCyan)
)

// PrintHeading writes a section heading line, with or without a trailing
// colon depending on how the section body attaches to it.
func PrintHeading(w io.Writer, text string) {
	fmt.Fprintln(w, Heading.Sprint(text))
}

// PrintProperty writes one aligned `name: value` report line. The name is
// padded to width before coloring so ANSI escapes never skew the columns.
func PrintProperty(w io.Writer, name, value string, width, indent int, colon bool) {
	padded := name
	if width > 0 {
		padded = fmt.Sprintf("%-*s", width, name)
	}
	sep := ""
	if colon {
		sep = ": "
	}
	fmt.Fprintf(w, "%s%s%s%s\n", strings.Repeat(" ", indent), PropName.Sprint(padded), sep, value)
}

// PrintDetail writes one 25-column detail line at indent 2, the layout used
// by the factory and plugin sections.
func PrintDetail(w io.Writer, name, value string) {
	PrintProperty(w, name, value, 25, 2, false)
}
