package registry

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
)

// builtinCache is the registry snapshot shipped with the binary so the tool
// works without a framework installation or an explicit cache path.
//
//go:embed builtin.json
var builtinCache []byte

// Wire format of a registry cache file. The cache is written once by the
// framework's scanner; this package only ever reads it.
type cacheFile struct {
	Version string        `json:"version"`
	Types   []typeEntry   `json:"types"`
	Plugins []pluginEntry `json:"plugins"`
}

type typeEntry struct {
	Name       string   `json:"name"`
	Parent     string   `json:"parent,omitempty"`
	Interfaces []string `json:"interfaces,omitempty"`
}

type pluginEntry struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Filename    string         `json:"filename"`
	Version     string         `json:"version"`
	License     string         `json:"license"`
	Source      string         `json:"source"`
	ReleaseDate string         `json:"release_date,omitempty"`
	Package     string         `json:"package"`
	Origin      string         `json:"origin"`
	Loadable    *bool          `json:"loadable,omitempty"`
	Features    []featureEntry `json:"features"`
}

type featureEntry struct {
	Name    string        `json:"name"`
	Kind    string        `json:"kind"`
	Rank    int           `json:"rank"`
	Factory *factoryEntry `json:"factory,omitempty"`
}

type factoryEntry struct {
	LongName      string          `json:"longname"`
	Klass         string          `json:"klass"`
	Description   string          `json:"description"`
	Author        string          `json:"author"`
	Type          string          `json:"type"`
	Constructible *bool           `json:"constructible,omitempty"`
	PadTemplates  []padTmplEntry  `json:"pad_templates,omitempty"`
	Properties    []propertyEntry `json:"properties,omitempty"`
	Instance      *instanceEntry  `json:"instance,omitempty"`
}

type padTmplEntry struct {
	NameTemplate string    `json:"name_template"`
	Direction    string    `json:"direction"`
	Presence     string    `json:"presence"`
	Caps         capsEntry `json:"caps"`
}

type capsEntry struct {
	Any        bool             `json:"any,omitempty"`
	Empty      bool             `json:"empty,omitempty"`
	Structures []structureEntry `json:"structures,omitempty"`
}

type structureEntry struct {
	Name    string       `json:"name"`
	Feature string       `json:"feature,omitempty"`
	Fields  []fieldEntry `json:"fields,omitempty"`
}

type fieldEntry struct {
	Name  string          `json:"name"`
	Type  string          `json:"type"`
	Value json.RawMessage `json:"value"`
}

type propertyEntry struct {
	Name    string          `json:"name"`
	Blurb   string          `json:"blurb,omitempty"`
	Type    string          `json:"type"`
	Flags   []string        `json:"flags,omitempty"`
	Owner   string          `json:"owner"`
	Min     json.RawMessage `json:"min,omitempty"`
	Max     json.RawMessage `json:"max,omitempty"`
	Default json.RawMessage `json:"default,omitempty"`
	Enum    []enumEntry     `json:"enum,omitempty"`
}

type enumEntry struct {
	Value int    `json:"value"`
	Nick  string `json:"nick"`
	Name  string `json:"name"`
}

type instanceEntry struct {
	RequiresClock bool                  `json:"requires_clock,omitempty"`
	ProvidesClock bool                  `json:"provides_clock,omitempty"`
	ClockName     string                `json:"clock_name,omitempty"`
	URIHandler    *uriHandlerEntry      `json:"uri_handler,omitempty"`
	Pads          []padEntry            `json:"pads,omitempty"`
	Values        map[string]valueEntry `json:"values,omitempty"`
}

type uriHandlerEntry struct {
	Direction string   `json:"direction"`
	Protocols []string `json:"protocols,omitempty"`
}

type padEntry struct {
	Name      string     `json:"name"`
	Direction string     `json:"direction"`
	Template  string     `json:"template,omitempty"`
	Caps      *capsEntry `json:"caps,omitempty"`
}

type valueEntry struct {
	Type  string          `json:"type"`
	Value json.RawMessage `json:"value"`
}

// Load reads and parses a registry cache file.
func Load(path string) (*Cache, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read registry cache: %w", err)
	}
	return Parse(data)
}

// Builtin returns the registry snapshot embedded in the binary.
func Builtin() (*Cache, error) {
	return Parse(builtinCache)
}

// Parse decodes a registry cache and builds the name indexes.
func Parse(data []byte) (*Cache, error) {
	var file cacheFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to unmarshal registry cache: %w", err)
	}

	c := &Cache{types: make(map[string]*TypeNode)}

	// Types first: factories reference them by name. Two passes so parent
	// links resolve regardless of declaration order.
	for _, t := range file.Types {
		if _, dup := c.types[t.Name]; dup {
			return nil, fmt.Errorf("duplicate type %q in registry cache", t.Name)
		}
		c.types[t.Name] = &TypeNode{Name: t.Name, Interfaces: t.Interfaces}
	}
	for _, t := range file.Types {
		if t.Parent == "" {
			continue
		}
		parent, ok := c.types[t.Parent]
		if !ok {
			return nil, fmt.Errorf("type %q references unknown parent %q", t.Name, t.Parent)
		}
		c.types[t.Name].Parent = parent
	}

	for _, pe := range file.Plugins {
		plugin := &Plugin{
			Name:        pe.Name,
			Description: pe.Description,
			Filename:    pe.Filename,
			Version:     pe.Version,
			License:     pe.License,
			Source:      pe.Source,
			ReleaseDate: pe.ReleaseDate,
			Package:     pe.Package,
			Origin:      pe.Origin,
			Loadable:    pe.Loadable == nil || *pe.Loadable,
		}
		for _, fe := range pe.Features {
			feature, err := c.buildFeature(fe)
			if err != nil {
				return nil, fmt.Errorf("plugin %q: %w", pe.Name, err)
			}
			feature.Plugin = plugin
			plugin.Features = append(plugin.Features, feature)
		}
		c.plugins = append(c.plugins, plugin)
	}

	c.buildIndexes()
	return c, nil
}

func (c *Cache) buildFeature(fe featureEntry) (*Feature, error) {
	feature := &Feature{
		Name: fe.Name,
		Kind: parseFeatureKind(fe.Kind),
		Rank: Rank(fe.Rank),
	}
	if fe.Factory == nil {
		return feature, nil
	}

	node, ok := c.types[fe.Factory.Type]
	if !ok {
		return nil, fmt.Errorf("feature %q references unknown type %q", fe.Name, fe.Factory.Type)
	}
	factory := &ElementFactory{
		Name:          fe.Name,
		LongName:      fe.Factory.LongName,
		Klass:         fe.Factory.Klass,
		Description:   fe.Factory.Description,
		Author:        fe.Factory.Author,
		Type:          node,
		Constructible: fe.Factory.Constructible == nil || *fe.Factory.Constructible,
	}

	for _, te := range fe.Factory.PadTemplates {
		caps, err := decodeCaps(te.Caps)
		if err != nil {
			return nil, fmt.Errorf("feature %q, template %q: %w", fe.Name, te.NameTemplate, err)
		}
		factory.PadTemplates = append(factory.PadTemplates, &PadTemplate{
			NameTemplate: te.NameTemplate,
			Direction:    parseDirection(te.Direction),
			Presence:     parsePresence(te.Presence),
			Caps:         caps,
		})
	}

	for _, pe := range fe.Factory.Properties {
		spec, err := decodeProperty(pe)
		if err != nil {
			return nil, fmt.Errorf("feature %q, property %q: %w", fe.Name, pe.Name, err)
		}
		factory.Properties = append(factory.Properties, spec)
	}

	if inst := fe.Factory.Instance; inst != nil {
		if err := factory.decodeInstance(inst); err != nil {
			return nil, fmt.Errorf("feature %q: %w", fe.Name, err)
		}
	}

	feature.Factory = factory
	return feature, nil
}

func (f *ElementFactory) decodeInstance(inst *instanceEntry) error {
	f.instance = instanceSpec{
		RequiresClock: inst.RequiresClock,
		ProvidesClock: inst.ProvidesClock,
		ClockName:     inst.ClockName,
	}
	if inst.URIHandler != nil {
		f.instance.URIHandler = &URIHandler{
			Direction: parseURIDirection(inst.URIHandler.Direction),
			Protocols: inst.URIHandler.Protocols,
		}
	}
	for _, pe := range inst.Pads {
		pad := &Pad{
			Name:      pe.Name,
			Direction: parseDirection(pe.Direction),
		}
		if pe.Template != "" {
			for _, t := range f.PadTemplates {
				if t.NameTemplate == pe.Template {
					pad.Template = t
					break
				}
			}
			if pad.Template == nil {
				return fmt.Errorf("pad %q references unknown template %q", pe.Name, pe.Template)
			}
		}
		if pe.Caps != nil {
			caps, err := decodeCaps(*pe.Caps)
			if err != nil {
				return fmt.Errorf("pad %q: %w", pe.Name, err)
			}
			pad.Caps = &caps
		}
		f.instance.Pads = append(f.instance.Pads, pad)
	}
	if len(inst.Values) > 0 {
		f.instance.Values = make(map[string]Value, len(inst.Values))
		for name, ve := range inst.Values {
			v, err := decodeValue(ve.Type, ve.Value)
			if err != nil {
				return fmt.Errorf("value for property %q: %w", name, err)
			}
			f.instance.Values[name] = v
		}
	}
	return nil
}

func decodeProperty(pe propertyEntry) (*PropertySpec, error) {
	tag := parseTypeTag(pe.Type)
	spec := &PropertySpec{
		Name:      pe.Name,
		Blurb:     pe.Blurb,
		Tag:       tag,
		OwnerType: pe.Owner,
	}
	for _, fl := range pe.Flags {
		spec.Flags |= parsePropFlag(fl)
	}
	for _, ee := range pe.Enum {
		spec.Enum = append(spec.Enum, EnumValue{Value: ee.Value, Nick: ee.Nick, Name: ee.Name})
	}

	var err error
	if len(pe.Default) > 0 {
		if spec.Default, err = decodeValue(pe.Type, pe.Default); err != nil {
			return nil, fmt.Errorf("default: %w", err)
		}
	} else {
		spec.Default = Value{Tag: tag}
	}
	if tag.IsNumeric() {
		if len(pe.Min) == 0 || len(pe.Max) == 0 {
			return nil, fmt.Errorf("ranged type %q is missing min/max", pe.Type)
		}
		if spec.Min, err = decodeValue(pe.Type, pe.Min); err != nil {
			return nil, fmt.Errorf("min: %w", err)
		}
		if spec.Max, err = decodeValue(pe.Type, pe.Max); err != nil {
			return nil, fmt.Errorf("max: %w", err)
		}
	}
	return spec, nil
}

func decodeCaps(ce capsEntry) (Caps, error) {
	caps := Caps{Any: ce.Any, Empty: ce.Empty}
	if caps.Any && caps.Empty {
		return Caps{}, fmt.Errorf("caps cannot be both ANY and EMPTY")
	}
	if (caps.Any || caps.Empty) && len(ce.Structures) > 0 {
		return Caps{}, fmt.Errorf("ANY/EMPTY caps cannot carry structures")
	}
	for _, se := range ce.Structures {
		s := Structure{Name: se.Name, Feature: se.Feature}
		for _, fe := range se.Fields {
			v, err := decodeValue(fe.Type, fe.Value)
			if err != nil {
				return Caps{}, fmt.Errorf("structure %q, field %q: %w", se.Name, fe.Name, err)
			}
			s.Fields = append(s.Fields, StructField{Name: fe.Name, Value: v})
		}
		caps.Structures = append(caps.Structures, s)
	}
	return caps, nil
}

// decodeValue parses one typed value from its wire form. Unknown type names
// decode to a TagUnknown value rather than failing: the cache may describe
// value kinds newer than this tool, and rendering already treats unknown
// kinds as unserializable.
func decodeValue(typ string, raw json.RawMessage) (Value, error) {
	tag := parseTypeTag(typ)
	v := Value{Tag: tag}
	if len(raw) == 0 {
		return v, nil
	}

	var err error
	switch tag {
	case TagString:
		var s string
		if err = json.Unmarshal(raw, &s); err == nil {
			v.Str = &s
		}
	case TagBool:
		err = json.Unmarshal(raw, &v.Bool)
	case TagInt, TagInt64, TagLong:
		err = json.Unmarshal(raw, &v.Int)
	case TagUint, TagUint64, TagULong:
		err = json.Unmarshal(raw, &v.Uint)
	case TagFloat, TagDouble:
		err = json.Unmarshal(raw, &v.Float)
	case TagEnum, TagFlags:
		err = json.Unmarshal(raw, &v.Enum)
	case TagCaps:
		var ce capsEntry
		if err = json.Unmarshal(raw, &ce); err == nil {
			var caps Caps
			if caps, err = decodeCaps(ce); err == nil {
				v.Caps = &caps
			}
		}
	case TagUnknown:
		// Keep the tag; the raw payload is intentionally dropped.
	}
	if err != nil {
		return Value{}, fmt.Errorf("invalid %s value: %w", typ, err)
	}
	return v, nil
}

func parseTypeTag(s string) TypeTag {
	switch s {
	case "string":
		return TagString
	case "bool", "boolean":
		return TagBool
	case "int":
		return TagInt
	case "uint":
		return TagUint
	case "int64":
		return TagInt64
	case "uint64":
		return TagUint64
	case "long":
		return TagLong
	case "ulong":
		return TagULong
	case "float":
		return TagFloat
	case "double":
		return TagDouble
	case "enum":
		return TagEnum
	case "flags":
		return TagFlags
	case "caps":
		return TagCaps
	default:
		return TagUnknown
	}
}

func parseFeatureKind(s string) FeatureKind {
	switch s {
	case "typefind":
		return FeatureTypeFind
	case "tracer":
		return FeatureTracer
	case "device":
		return FeatureDevice
	default:
		return FeatureElement
	}
}

func parseDirection(s string) Direction {
	switch s {
	case "src", "source":
		return DirSrc
	case "sink":
		return DirSink
	default:
		return DirUnknown
	}
}

func parsePresence(s string) Presence {
	switch s {
	case "sometimes":
		return PresenceSometimes
	case "request":
		return PresenceRequest
	default:
		return PresenceAlways
	}
}

func parseURIDirection(s string) URIDirection {
	switch s {
	case "src", "source":
		return URISource
	case "sink":
		return URISink
	default:
		return URIUnknown
	}
}

func parsePropFlag(s string) PropFlags {
	switch s {
	case "readable":
		return FlagReadable
	case "writable":
		return FlagWritable
	case "deprecated":
		return FlagDeprecated
	case "controllable":
		return FlagControllable
	case "mutable-playing":
		return FlagMutablePlaying
	case "mutable-paused":
		return FlagMutablePaused
	case "mutable-ready":
		return FlagMutableReady
	default:
		return 0
	}
}
