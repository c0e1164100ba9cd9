package ui

import (
	"bytes"
	"os"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

func TestPrintProperty_Alignment(t *testing.T) {
	var buf bytes.Buffer
	PrintProperty(&buf, "Rank", "none (0)", 25, 2, false)
	assert.Equal(t, "  Rank                     none (0)\n", buf.String())
}

func TestPrintProperty_ColonAndIndent(t *testing.T) {
	var buf bytes.Buffer
	PrintProperty(&buf, "Availability", "Always", 0, 4, true)
	assert.Equal(t, "    Availability: Always\n", buf.String())
}

func TestPrintProperty_ZeroWidthKeepsName(t *testing.T) {
	var buf bytes.Buffer
	PrintProperty(&buf, "Clocking interaction", "", 0, 0, true)
	assert.Equal(t, "Clocking interaction: \n", buf.String())
}

func TestPrintDetail(t *testing.T) {
	var buf bytes.Buffer
	PrintDetail(&buf, "Long name", "Fake Source")
	assert.Equal(t, "  Long name                Fake Source\n", buf.String())
}

func TestPrintHeading(t *testing.T) {
	var buf bytes.Buffer
	PrintHeading(&buf, "Factory details:")
	assert.Equal(t, "Factory details:\n", buf.String())
}
