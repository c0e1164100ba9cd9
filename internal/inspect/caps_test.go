package inspect

import (
	"bytes"
	"os"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"

	"github.com/fluxline/inspect/internal/registry"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

func render(caps registry.Caps) string {
	var buf bytes.Buffer
	renderCaps(&buf, caps)
	return buf.String()
}

func str(s string) *string { return &s }

func TestRenderCaps_Sentinels(t *testing.T) {
	// ANY and EMPTY are constant single lines; structures are ignored.
	assert.Equal(t, "      ANY\n", render(registry.Caps{Any: true}))
	assert.Equal(t, "      EMPTY\n", render(registry.Caps{Empty: true}))
}

func TestRenderCaps_SystemMemoryFeatureSuppressed(t *testing.T) {
	caps := registry.Caps{Structures: []registry.Structure{{
		Name:    "video/x-raw",
		Feature: registry.FeatureSystemMemory,
		Fields: []registry.StructField{
			{Name: "width", Value: registry.Value{Tag: registry.TagString, Str: str("640")}},
		},
	}}}

	want := "      video/x-raw\n" +
		"                  width: 640\n"
	assert.Equal(t, want, render(caps))
}

func TestRenderCaps_NonDefaultFeatureShown(t *testing.T) {
	caps := registry.Caps{Structures: []registry.Structure{{
		Name:    "video/x-raw",
		Feature: "memory:GLMemory",
	}}}
	assert.Equal(t, "      video/x-raw(memory:GLMemory)\n", render(caps))
}

func TestRenderCaps_AnyFeatureShown(t *testing.T) {
	caps := registry.Caps{Structures: []registry.Structure{{
		Name:    "audio/x-raw",
		Feature: registry.FeatureAny,
	}}}
	assert.Equal(t, "      audio/x-raw(ANY)\n", render(caps))
}

func TestRenderCaps_UnserializableFieldSkipped(t *testing.T) {
	caps := registry.Caps{Structures: []registry.Structure{{
		Name: "video/x-raw",
		Fields: []registry.StructField{
			{Name: "width", Value: registry.Value{Tag: registry.TagString, Str: str("640")}},
			{Name: "broken", Value: registry.Value{Tag: registry.TagUnknown}},
			{Name: "height", Value: registry.Value{Tag: registry.TagInt, Int: 480}},
		},
	}}}

	out := render(caps)
	assert.Contains(t, out, "width: 640\n")
	assert.Contains(t, out, "height: 480\n")
	assert.NotContains(t, out, "broken")
}

func TestRenderCaps_StructuresKeepSetOrder(t *testing.T) {
	caps := registry.Caps{Structures: []registry.Structure{
		{Name: "video/x-raw"},
		{Name: "audio/x-raw"},
	}}

	want := "      video/x-raw\n      audio/x-raw\n"
	assert.Equal(t, want, render(caps))
}
