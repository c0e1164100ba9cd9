package inspect

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/fluxline/inspect/internal/cli/ui"
	"github.com/fluxline/inspect/internal/registry"
)

// Reporter renders element reports from a registry onto a single output
// stream. One Reporter serves one process run; output is append-only text.
type Reporter struct {
	reg registry.Registry
	out io.Writer
	log *zap.Logger
}

// NewReporter creates a Reporter. A nil logger disables logging.
func NewReporter(reg registry.Registry, out io.Writer, log *zap.Logger) *Reporter {
	if log == nil {
		log = zap.NewNop()
	}
	return &Reporter{reg: reg, out: out, log: log}
}

// ListElements prints one line per element factory, grouped by plugin.
// Plugins and features are sorted by name regardless of registry order.
func (r *Reporter) ListElements() {
	plugins := r.reg.Plugins()
	sort.Slice(plugins, func(i, j int) bool { return plugins[i].Name < plugins[j].Name })

	for _, plugin := range plugins {
		features := r.reg.FeaturesByPlugin(plugin.Name)
		sort.Slice(features, func(i, j int) bool { return features[i].Name < features[j].Name })

		for _, feature := range features {
			if feature.Kind != registry.FeatureElement || feature.Factory == nil {
				continue
			}
			fmt.Fprintf(r.out, "%s:  %s: %s\n",
				ui.PluginName.Sprint(plugin.Name),
				ui.ElementName.Sprint(feature.Name),
				feature.Factory.LongName)
		}
	}
}

// InspectFeature resolves a name against the registry and prints the full
// detail report. The throwaway instance is released on every exit path.
func (r *Reporter) InspectFeature(name string) error {
	feature := r.reg.FindFeature(name, registry.FeatureElement)
	if feature == nil {
		return fmt.Errorf("%w '%s'", ErrNotFound, name)
	}

	factory, err := feature.Load()
	if err != nil {
		return &LoadError{Feature: name, Err: err}
	}

	element, err := factory.Create()
	if err != nil {
		return &ConstructError{Factory: name, Err: err}
	}
	defer element.Release()
	r.log.Debug("constructed element", zap.String("factory", name), zap.String("instance", element.Name))

	r.printFactoryDetails(feature, factory)
	if feature.Plugin != nil {
		r.printPluginDetails(feature.Plugin)
	}
	r.printHierarchy(element.Type)
	r.printInterfaces(element.Type)
	r.printPadTemplates(factory)
	r.printClocking(element)
	r.printURIHandler(element)
	r.printPads(element)
	r.printProperties(factory, element)
	return nil
}

func (r *Reporter) printFactoryDetails(feature *registry.Feature, factory *registry.ElementFactory) {
	ui.PrintHeading(r.out, "Factory details:")
	ui.PrintDetail(r.out, "Rank", fmt.Sprintf("%s (%d)", feature.Rank.Name(), int(feature.Rank)))
	ui.PrintDetail(r.out, "Long name", factory.LongName)
	ui.PrintDetail(r.out, "Klass", factory.Klass)
	ui.PrintDetail(r.out, "Description", factory.Description)
	ui.PrintDetail(r.out, "Author", factory.Author)
	fmt.Fprintln(r.out)
}

func (r *Reporter) printPluginDetails(plugin *registry.Plugin) {
	filename := plugin.Filename
	if filename == "" {
		filename = "(null)"
	}

	ui.PrintHeading(r.out, "Plugin details:")
	ui.PrintDetail(r.out, "Name", plugin.Name)
	ui.PrintDetail(r.out, "Description", plugin.Description)
	ui.PrintDetail(r.out, "Filename", filename)
	ui.PrintDetail(r.out, "Version", plugin.Version)
	ui.PrintDetail(r.out, "License", plugin.License)
	ui.PrintDetail(r.out, "Source module", plugin.Source)
	if plugin.ReleaseDate != "" {
		ui.PrintDetail(r.out, "Source release date", plugin.ReleaseDate)
	}
	ui.PrintDetail(r.out, "Binary package", plugin.Package)
	ui.PrintDetail(r.out, "Origin URL", plugin.Origin)
	fmt.Fprintln(r.out)
}

func (r *Reporter) printHierarchy(leaf *registry.TypeNode) {
	for level, node := range Linearize(leaf) {
		if level > 0 {
			fmt.Fprint(r.out, strings.Repeat("     ", level-1))
			fmt.Fprintf(r.out, " %s", ui.ChildLink.Sprint("+----"))
		}
		fmt.Fprintln(r.out, ui.DataType.Sprint(node.Name))
	}
	fmt.Fprintln(r.out)
}

func (r *Reporter) printInterfaces(leaf *registry.TypeNode) {
	if leaf == nil || len(leaf.Interfaces) == 0 {
		return
	}
	ui.PrintHeading(r.out, "Implemented Interfaces:")
	for _, iface := range leaf.Interfaces {
		fmt.Fprintf(r.out, "  %s\n", ui.DataType.Sprint(iface))
	}
	fmt.Fprintln(r.out)
}

func (r *Reporter) printPadTemplates(factory *registry.ElementFactory) {
	ui.PrintHeading(r.out, "Pad Templates:")
	if len(factory.PadTemplates) == 0 {
		fmt.Fprintln(r.out, " none")
		return
	}

	templates := make([]*registry.PadTemplate, len(factory.PadTemplates))
	copy(templates, factory.PadTemplates)
	sort.Slice(templates, func(i, j int) bool {
		return templates[i].NameTemplate < templates[j].NameTemplate
	})

	for _, tmpl := range templates {
		ui.PrintProperty(r.out, directionLabel(tmpl.Direction)+" template",
			fmt.Sprintf("'%s'", tmpl.NameTemplate), 0, 2, true)
		ui.PrintProperty(r.out, "Availability", presenceLabel(tmpl.Presence), 0, 4, true)
		ui.PrintProperty(r.out, "Capabilities", "", 0, 4, true)
		renderCaps(r.out, tmpl.Caps)
		fmt.Fprintln(r.out)
	}
}

func (r *Reporter) printClocking(element *registry.Element) {
	if !element.RequiresClock && !element.ProvidesClock {
		fmt.Fprintln(r.out, "Element has no clocking capabilities.")
		return
	}

	fmt.Fprintln(r.out)
	ui.PrintProperty(r.out, "Clocking interaction", "", 0, 0, true)
	if element.RequiresClock {
		fmt.Fprintln(r.out, "  element requires a clock")
	}
	if element.ProvidesClock {
		if element.ClockName != "" {
			fmt.Fprintf(r.out, "  %s: %s\n",
				ui.PropValue.Sprint("element provides a clock"),
				ui.DataType.Sprint(element.ClockName))
		} else {
			fmt.Fprintf(r.out, "  %s\n",
				ui.PropValue.Sprint("element is supposed to provide a clock but returned NULL"))
		}
	}
}

func (r *Reporter) printURIHandler(element *registry.Element) {
	handler := element.URIHandler
	if handler == nil {
		fmt.Fprintln(r.out, "Element has no URI handling capabilities.")
		fmt.Fprintln(r.out)
		return
	}

	fmt.Fprintln(r.out)
	ui.PrintHeading(r.out, "URI handling capabilities:")
	fmt.Fprintf(r.out, "  Element can act as %s.\n", uriDirectionLabel(handler.Direction))
	if len(handler.Protocols) == 0 {
		fmt.Fprintf(r.out, "  %s\n", ui.PropValue.Sprint("No supported URI protocols"))
	} else {
		fmt.Fprintln(r.out, "  Supported URI protocols:")
		for _, proto := range handler.Protocols {
			fmt.Fprintf(r.out, "    %s\n", ui.PropAttrValue.Sprint(proto))
		}
	}
	fmt.Fprintln(r.out)
}

// printPads lists the live pads of the instance in creation order, with
// their template binding and negotiated caps when present.
func (r *Reporter) printPads(element *registry.Element) {
	ui.PrintHeading(r.out, "Pads:")
	if len(element.Pads) == 0 {
		fmt.Fprintln(r.out, "  none")
		fmt.Fprintln(r.out)
		return
	}

	for _, pad := range element.Pads {
		fmt.Fprintf(r.out, "  %s: '%s'\n", padDirectionLabel(pad.Direction), pad.Name)
		if pad.Template != nil {
			fmt.Fprintf(r.out, "    Pad Template: '%s'\n", pad.Template.NameTemplate)
		}
		if pad.Caps != nil {
			ui.PrintProperty(r.out, "Capabilities", "", 0, 4, true)
			renderCaps(r.out, *pad.Caps)
		}
	}
	fmt.Fprintln(r.out)
}

// valuePrefix aligns property value lines under the blurb column.
const valuePrefix = "                        "

func (r *Reporter) printProperties(factory *registry.ElementFactory, element *registry.Element) {
	specs := make([]*registry.PropertySpec, 0, len(factory.Properties))
	for _, spec := range factory.Properties {
		if spec.OwnerType == registry.BaseObjectType || spec.OwnerType == registry.BasePadType {
			continue
		}
		specs = append(specs, spec)
	}
	sort.Slice(specs, func(i, j int) bool { return specs[i].Name < specs[j].Name })

	ui.PrintHeading(r.out, "Element Properties:")
	if len(specs) == 0 {
		fmt.Fprintln(r.out, "  none")
		return
	}

	for _, spec := range specs {
		ui.PrintProperty(r.out, spec.Name, spec.Blurb, 20, 2, true)
		fmt.Fprintf(r.out, "%sflags: %s\n", valuePrefix, strings.Join(flagNames(spec.Flags), ", "))
		formatValue(r.out, spec, propertyValue(spec, element), valuePrefix)
	}
}

func flagNames(flags registry.PropFlags) []string {
	var names []string
	for _, f := range []struct {
		flag registry.PropFlags
		name string
	}{
		{registry.FlagReadable, "readable"},
		{registry.FlagWritable, "writable"},
		{registry.FlagDeprecated, "deprecated"},
		{registry.FlagControllable, "controllable"},
		{registry.FlagMutablePlaying, "changeable in PLAYING state"},
		{registry.FlagMutablePaused, "changeable in PAUSED state"},
		{registry.FlagMutableReady, "changeable in READY state"},
	} {
		if flags.Has(f.flag) {
			names = append(names, f.name)
		}
	}
	return names
}

func directionLabel(d registry.Direction) string {
	switch d {
	case registry.DirSrc:
		return "SOURCE"
	case registry.DirSink:
		return "SINK"
	default:
		return "UNKNOWN"
	}
}

func padDirectionLabel(d registry.Direction) string {
	switch d {
	case registry.DirSrc:
		return "SRC"
	case registry.DirSink:
		return "SINK"
	default:
		return "UNKNOWN"
	}
}

func presenceLabel(p registry.Presence) string {
	switch p {
	case registry.PresenceSometimes:
		return "Sometimes"
	case registry.PresenceRequest:
		return "On request"
	default:
		return "Always"
	}
}

func uriDirectionLabel(d registry.URIDirection) string {
	switch d {
	case registry.URISource:
		return "source"
	case registry.URISink:
		return "sink"
	default:
		return "unknown"
	}
}
