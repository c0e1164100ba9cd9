package inspect

import (
	"fmt"
	"io"
	"strconv"

	"github.com/fluxline/inspect/internal/registry"
)

// propertyValue picks the value a property renders with: the live bound
// value when the property is readable, its declared default otherwise. The
// selection happens once, before type dispatch.
func propertyValue(spec *registry.PropertySpec, element *registry.Element) registry.Value {
	if spec.Flags.Has(registry.FlagReadable) && element != nil {
		if live, ok := element.Value(spec.Name); ok {
			return live
		}
	}
	return spec.Default
}

// formatValue writes the human description of one property value, dispatching
// on the closed set of type tags. Unknown kinds emit nothing; the flags kind
// is a reserved branch with no rendering convention yet.
func formatValue(w io.Writer, spec *registry.PropertySpec, value registry.Value, prefix string) {
	switch spec.Tag {
	case registry.TagString:
		if value.Str == nil {
			fmt.Fprintf(w, "%snull\n", prefix)
		} else {
			fmt.Fprintf(w, "%s%q\n", prefix, *value.Str)
		}

	case registry.TagBool:
		fmt.Fprintf(w, "%s%s\n", prefix, strconv.FormatBool(value.Bool))

	case registry.TagInt, registry.TagUint, registry.TagInt64, registry.TagUint64,
		registry.TagLong, registry.TagULong, registry.TagFloat, registry.TagDouble:
		min, _ := spec.Min.Serialize()
		max, _ := spec.Max.Serialize()
		def, _ := value.Serialize()
		fmt.Fprintf(w, "%s%s. Range: %s - %s. Default: %s\n",
			prefix, numericLabel(spec.Tag), min, max, def)

	case registry.TagEnum:
		fmt.Fprintf(w, "%sDefault: %d, %q\n", prefix, value.Enum, enumNick(spec, value.Enum))
		for _, alt := range spec.Enum {
			fmt.Fprintf(w, "%s   (%d): %-16s - %s\n", prefix, alt.Value, alt.Nick, alt.Name)
		}

	case registry.TagFlags:
		// No rendering convention exists for flag sets yet.

	case registry.TagCaps:
		if value.Caps == nil {
			fmt.Fprintf(w, "%sCaps (NULL)\n", prefix)
		} else {
			renderCaps(w, *value.Caps)
		}
	}
}

func numericLabel(tag registry.TypeTag) string {
	switch tag {
	case registry.TagInt:
		return "Integer"
	case registry.TagUint:
		return "Unsigned Integer"
	case registry.TagInt64:
		return "Integer64"
	case registry.TagUint64:
		return "Unsigned Integer64"
	case registry.TagLong:
		return "Long"
	case registry.TagULong:
		return "Unsigned Long"
	case registry.TagFloat:
		return "Float"
	default:
		return "Double"
	}
}

func enumNick(spec *registry.PropertySpec, value int) string {
	for _, alt := range spec.Enum {
		if alt.Value == value {
			return alt.Nick
		}
	}
	return ""
}
