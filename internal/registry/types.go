package registry

import (
	"fmt"
	"strconv"
)

// TypeNode is one node in the framework's single-inheritance type graph.
// Nodes are supplied read-only by the registry; the parent chain is finite,
// acyclic, and terminates at a root node with a nil Parent.
type TypeNode struct {
	Name       string
	Parent     *TypeNode
	Interfaces []string
}

// Base type names whose properties are framework plumbing rather than part of
// an element's own configuration surface.
const (
	BaseObjectType = "FluxObject"
	BasePadType    = "FluxPad"
)

// Rank expresses how strongly the framework favors a factory during
// automatic element selection.
type Rank int

const (
	RankNone      Rank = 0
	RankMarginal  Rank = 64
	RankSecondary Rank = 128
	RankPrimary   Rank = 256
)

// Name returns the lowercase rank name used in reports.
func (r Rank) Name() string {
	switch r {
	case RankNone:
		return "none"
	case RankMarginal:
		return "marginal"
	case RankSecondary:
		return "secondary"
	case RankPrimary:
		return "primary"
	default:
		return "unknown"
	}
}

// Direction of a pad or pad template.
type Direction int

const (
	DirUnknown Direction = iota
	DirSrc
	DirSink
)

// Presence describes when a templated pad exists on an instance.
type Presence int

const (
	PresenceAlways Presence = iota
	PresenceSometimes
	PresenceRequest
)

// URIDirection describes which end of a URI an element can service.
type URIDirection int

const (
	URIUnknown URIDirection = iota
	URISource
	URISink
)

// FeatureKind discriminates registry feature types. Only element factories
// are inspectable; other kinds still appear in plugin listings internally.
type FeatureKind int

const (
	FeatureElement FeatureKind = iota
	FeatureTypeFind
	FeatureTracer
	FeatureDevice
)

// FeatureSystemMemory is the distinguished default caps feature. A structure
// carrying it (or no feature at all) renders without a feature suffix.
// FeatureAny matches any feature and is always shown when present.
const (
	FeatureSystemMemory = "memory:SystemMemory"
	FeatureAny          = "ANY"
)

// StructField is a single named field of a caps structure. Serialization of
// the value may fail independently of sibling fields.
type StructField struct {
	Name  string
	Value Value
}

// Structure is one alternative format description inside a caps set.
type Structure struct {
	Name    string
	Feature string
	Fields  []StructField
}

// Caps describes the set of data formats a pad can carry. Exactly one of
// Any, Empty, or a non-empty Structures slice holds.
type Caps struct {
	Any        bool
	Empty      bool
	Structures []Structure
}

// PropFlags is the access/mutability flag set of a property.
type PropFlags uint

const (
	FlagReadable PropFlags = 1 << iota
	FlagWritable
	FlagDeprecated
	FlagControllable
	FlagMutablePlaying
	FlagMutablePaused
	FlagMutableReady
)

// Has reports whether all bits in f are set.
func (p PropFlags) Has(f PropFlags) bool { return p&f == f }

// TypeTag discriminates the closed set of property value kinds the
// framework's type system exposes.
type TypeTag int

const (
	TagUnknown TypeTag = iota
	TagString
	TagBool
	TagInt
	TagUint
	TagInt64
	TagUint64
	TagLong
	TagULong
	TagFloat
	TagDouble
	TagEnum
	TagFlags
	TagCaps
)

// IsNumeric reports whether the tag is one of the ranged numeric kinds.
func (t TypeTag) IsNumeric() bool {
	switch t {
	case TagInt, TagUint, TagInt64, TagUint64, TagLong, TagULong, TagFloat, TagDouble:
		return true
	}
	return false
}

// Value is a tagged union over the framework's primitive value kinds.
// The field matching Tag is authoritative; the rest are zero.
type Value struct {
	Tag   TypeTag
	Str   *string
	Bool  bool
	Int   int64
	Uint  uint64
	Float float64
	Enum  int
	Caps  *Caps
}

// Serialize renders the value as the framework's canonical field text.
// Kinds without a canonical text form (flags, caps, unknown) fail; callers
// rendering caps fields treat that as "skip this field", not as an error.
func (v Value) Serialize() (string, error) {
	switch v.Tag {
	case TagString:
		if v.Str == nil {
			return "", fmt.Errorf("string value is unset")
		}
		return *v.Str, nil
	case TagBool:
		return strconv.FormatBool(v.Bool), nil
	case TagInt, TagInt64, TagLong:
		return strconv.FormatInt(v.Int, 10), nil
	case TagUint, TagUint64, TagULong:
		return strconv.FormatUint(v.Uint, 10), nil
	case TagFloat, TagDouble:
		return strconv.FormatFloat(v.Float, 'g', -1, 64), nil
	case TagEnum:
		return strconv.Itoa(v.Enum), nil
	default:
		return "", fmt.Errorf("value of kind %d has no serialized form", v.Tag)
	}
}

// EnumValue is one declared alternative of an enum-typed property.
type EnumValue struct {
	Value int
	Nick  string
	Name  string
}

// PropertySpec describes one configurable property of an element type.
type PropertySpec struct {
	Name      string
	Blurb     string
	Tag       TypeTag
	Flags     PropFlags
	OwnerType string
	Min       Value
	Max       Value
	Enum      []EnumValue
	Default   Value
}

// PadTemplate is a declared, not-yet-instantiated pad description.
type PadTemplate struct {
	NameTemplate string
	Direction    Direction
	Presence     Presence
	Caps         Caps
}

// Pad is a live connection point on an instantiated element.
type Pad struct {
	Name      string
	Direction Direction
	Template  *PadTemplate
	Caps      *Caps
}

// URIHandler describes an element's URI-handling capability.
type URIHandler struct {
	Direction URIDirection
	Protocols []string
}

// Plugin is a loadable unit contributing features to the registry.
type Plugin struct {
	Name        string
	Description string
	Filename    string
	Version     string
	License     string
	Source      string
	ReleaseDate string
	Package     string
	Origin      string
	Loadable    bool
	Features    []*Feature
}

// Feature is one registry entry. Factory is non-nil only for element
// factories. Plugin is nil for standalone features.
type Feature struct {
	Name    string
	Kind    FeatureKind
	Rank    Rank
	Plugin  *Plugin
	Factory *ElementFactory
}

// Load makes the feature's factory usable. Loading fails when the owning
// plugin cannot be brought into the process.
func (f *Feature) Load() (*ElementFactory, error) {
	if f.Factory == nil {
		return nil, fmt.Errorf("feature %q is not an element factory", f.Name)
	}
	if f.Plugin != nil && !f.Plugin.Loadable {
		return nil, fmt.Errorf("plugin %q could not be loaded", f.Plugin.Name)
	}
	return f.Factory, nil
}

// instanceSpec is the snapshot an element factory materializes on Create.
type instanceSpec struct {
	RequiresClock bool
	ProvidesClock bool
	ClockName     string
	URIHandler    *URIHandler
	Pads          []*Pad
	Values        map[string]Value
}

// ElementFactory holds the static metadata of one element type and can
// materialize a throwaway instance of it.
type ElementFactory struct {
	Name          string
	LongName      string
	Klass         string
	Description   string
	Author        string
	Type          *TypeNode
	Constructible bool
	PadTemplates  []*PadTemplate
	Properties    []*PropertySpec

	instance instanceSpec
}

// Create materializes one element instance. The caller owns the instance and
// must release it when done with the report.
func (f *ElementFactory) Create() (*Element, error) {
	if !f.Constructible {
		return nil, fmt.Errorf("factory %q refused to construct an element", f.Name)
	}
	values := make(map[string]Value, len(f.instance.Values))
	for k, v := range f.instance.Values {
		values[k] = v
	}
	return &Element{
		Name:          f.Name + "0",
		Type:          f.Type,
		RequiresClock: f.instance.RequiresClock,
		ProvidesClock: f.instance.ProvidesClock,
		ClockName:     f.instance.ClockName,
		URIHandler:    f.instance.URIHandler,
		Pads:          f.instance.Pads,
		values:        values,
	}, nil
}

// Element is a single instantiated element, scoped to one report.
type Element struct {
	Name          string
	Type          *TypeNode
	RequiresClock bool
	ProvidesClock bool
	ClockName     string
	URIHandler    *URIHandler
	Pads          []*Pad

	values map[string]Value
}

// Value returns the live value bound to the named property, if any.
func (e *Element) Value(name string) (Value, bool) {
	v, ok := e.values[name]
	return v, ok
}

// Release frees the instance. Safe on every exit path; further Value
// lookups return nothing.
func (e *Element) Release() {
	e.values = nil
}
