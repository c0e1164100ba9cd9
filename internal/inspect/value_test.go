package inspect

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fluxline/inspect/internal/registry"
)

func format(spec *registry.PropertySpec, value registry.Value) string {
	var buf bytes.Buffer
	formatValue(&buf, spec, value, "")
	return buf.String()
}

func TestFormatValue_String(t *testing.T) {
	spec := &registry.PropertySpec{Name: "location", Tag: registry.TagString}

	assert.Equal(t, "\"/tmp/out\"\n", format(spec, registry.Value{Tag: registry.TagString, Str: str("/tmp/out")}))
	assert.Equal(t, "null\n", format(spec, registry.Value{Tag: registry.TagString}))
}

func TestFormatValue_Bool(t *testing.T) {
	spec := &registry.PropertySpec{Name: "silent", Tag: registry.TagBool}

	assert.Equal(t, "true\n", format(spec, registry.Value{Tag: registry.TagBool, Bool: true}))
	assert.Equal(t, "false\n", format(spec, registry.Value{Tag: registry.TagBool}))
}

func TestFormatValue_IntRange(t *testing.T) {
	// Range always comes from the spec, never from the value.
	spec := &registry.PropertySpec{
		Name: "volume",
		Tag:  registry.TagInt,
		Min:  registry.Value{Tag: registry.TagInt, Int: 0},
		Max:  registry.Value{Tag: registry.TagInt, Int: 100},
	}

	out := format(spec, registry.Value{Tag: registry.TagInt, Int: 50})
	assert.Equal(t, "Integer. Range: 0 - 100. Default: 50\n", out)
}

func TestFormatValue_NumericLabels(t *testing.T) {
	cases := []struct {
		tag  registry.TypeTag
		want string
	}{
		{registry.TagInt, "Integer"},
		{registry.TagUint, "Unsigned Integer"},
		{registry.TagInt64, "Integer64"},
		{registry.TagUint64, "Unsigned Integer64"},
		{registry.TagLong, "Long"},
		{registry.TagULong, "Unsigned Long"},
		{registry.TagFloat, "Float"},
		{registry.TagDouble, "Double"},
	}
	for _, tc := range cases {
		spec := &registry.PropertySpec{
			Name: "p",
			Tag:  tc.tag,
			Min:  registry.Value{Tag: tc.tag},
			Max:  registry.Value{Tag: tc.tag},
		}
		out := format(spec, registry.Value{Tag: tc.tag})
		assert.Contains(t, out, tc.want+". Range: ", "tag %d", tc.tag)
	}
}

func TestFormatValue_Enum(t *testing.T) {
	spec := &registry.PropertySpec{
		Name: "priority",
		Tag:  registry.TagEnum,
		Enum: []registry.EnumValue{
			{Value: 0, Nick: "low", Name: "Low priority"},
			{Value: 1, Nick: "high", Name: "High priority"},
		},
	}

	out := format(spec, registry.Value{Tag: registry.TagEnum, Enum: 1})
	lines := bytes.Split([]byte(out), []byte("\n"))
	require.GreaterOrEqual(t, len(lines), 3)

	assert.Equal(t, "Default: 1, \"high\"", string(lines[0]))
	assert.Equal(t, "   (0): low              - Low priority", string(lines[1]))
	assert.Equal(t, "   (1): high             - High priority", string(lines[2]))
}

func TestFormatValue_FlagsIsReservedNoOp(t *testing.T) {
	spec := &registry.PropertySpec{Name: "events", Tag: registry.TagFlags}
	assert.Empty(t, format(spec, registry.Value{Tag: registry.TagFlags, Enum: 3}))
}

func TestFormatValue_CapsNull(t *testing.T) {
	spec := &registry.PropertySpec{Name: "caps", Tag: registry.TagCaps}
	assert.Equal(t, "Caps (NULL)\n", format(spec, registry.Value{Tag: registry.TagCaps}))
}

func TestFormatValue_CapsDelegates(t *testing.T) {
	spec := &registry.PropertySpec{Name: "caps", Tag: registry.TagCaps}
	value := registry.Value{Tag: registry.TagCaps, Caps: &registry.Caps{Any: true}}
	assert.Equal(t, "      ANY\n", format(spec, value))
}

func TestFormatValue_UnknownEmitsNothing(t *testing.T) {
	spec := &registry.PropertySpec{Name: "opaque", Tag: registry.TagUnknown}
	assert.Empty(t, format(spec, registry.Value{Tag: registry.TagUnknown}))
}

func TestPropertyValue_Selection(t *testing.T) {
	cache := `{
	  "types": [{"name": "FluxObject"}, {"name": "FluxThing", "parent": "FluxObject"}],
	  "plugins": [{"name": "p", "features": [{
	    "name": "thing", "kind": "element",
	    "factory": {
	      "type": "FluxThing",
	      "properties": [
	        {"name": "level", "type": "int", "flags": ["readable", "writable"], "owner": "FluxThing", "min": 0, "max": 100, "default": 50},
	        {"name": "target", "type": "int", "flags": ["writable"], "owner": "FluxThing", "min": 0, "max": 100, "default": 25}
	      ],
	      "instance": {"values": {
	        "level": {"type": "int", "value": 75},
	        "target": {"type": "int", "value": 99}
	      }}
	    }
	  }]}]
	}`
	reg, err := registry.Parse([]byte(cache))
	require.NoError(t, err)

	factory, err := reg.FindFeature("thing", registry.FeatureElement).Load()
	require.NoError(t, err)
	element, err := factory.Create()
	require.NoError(t, err)
	defer element.Release()

	var level, target *registry.PropertySpec
	for _, spec := range factory.Properties {
		switch spec.Name {
		case "level":
			level = spec
		case "target":
			target = spec
		}
	}
	require.NotNil(t, level)
	require.NotNil(t, target)

	// Readable property uses the live bound value.
	assert.Equal(t, int64(75), propertyValue(level, element).Int)

	// Unreadable property falls back to the declared default even when a
	// live value exists.
	assert.Equal(t, int64(25), propertyValue(target, element).Int)

	// No instance at all also falls back to the default.
	assert.Equal(t, int64(50), propertyValue(level, nil).Int)
}
