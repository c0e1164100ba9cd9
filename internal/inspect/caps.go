package inspect

import (
	"fmt"
	"io"

	"github.com/fluxline/inspect/internal/cli/ui"
	"github.com/fluxline/inspect/internal/registry"
)

const (
	capsIndent     = "      "
	fieldNameWidth = 23
)

// renderCaps writes the display form of a caps set. ANY and EMPTY are
// single-line sentinels; otherwise each structure emits a header followed by
// its fields in native order. A field whose value fails to serialize is
// skipped; partial data never aborts the render.
func renderCaps(w io.Writer, caps registry.Caps) {
	if caps.Any {
		fmt.Fprintf(w, "%s%s\n", capsIndent, ui.CapsType.Sprint("ANY"))
		return
	}
	if caps.Empty {
		fmt.Fprintf(w, "%s%s\n", capsIndent, ui.CapsType.Sprint("EMPTY"))
		return
	}

	for _, s := range caps.Structures {
		if showFeature(s.Feature) {
			fmt.Fprintf(w, "%s%s(%s)\n", capsIndent,
				ui.StructName.Sprint(s.Name), ui.CapsFeature.Sprint(s.Feature))
		} else {
			fmt.Fprintf(w, "%s%s\n", capsIndent, ui.StructName.Sprint(s.Name))
		}
		for _, field := range s.Fields {
			text, err := field.Value.Serialize()
			if err != nil {
				continue
			}
			name := fmt.Sprintf("%*s", fieldNameWidth, field.Name)
			fmt.Fprintf(w, "%s: %s\n", ui.FieldName.Sprint(name), ui.FieldValue.Sprint(text))
		}
	}
}

// showFeature reports whether a caps feature belongs in the structure
// header. The system-memory default is framework noise and stays hidden;
// the ANY marker is always shown.
func showFeature(feature string) bool {
	if feature == registry.FeatureAny {
		return true
	}
	return feature != "" && feature != registry.FeatureSystemMemory
}
