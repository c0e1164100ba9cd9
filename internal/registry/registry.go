package registry

// Registry is the read-only view of the framework's feature registry that
// the inspection core consumes. Implementations never mutate framework
// state; the inspection core never writes through this interface.
type Registry interface {
	// Plugins returns every known plugin, in registry enumeration order.
	Plugins() []*Plugin

	// FeaturesByPlugin returns the features contributed by the named
	// plugin, in contribution order. Unknown plugin names yield nil.
	FeaturesByPlugin(name string) []*Feature

	// FindFeature looks up a single feature by name, restricted to the
	// given kind. Returns nil when nothing matches.
	FindFeature(name string, kind FeatureKind) *Feature
}

// Cache is the in-memory Registry implementation, populated from a JSON
// registry cache. Name indexes are built once at load time.
type Cache struct {
	plugins []*Plugin
	types   map[string]*TypeNode

	featuresByName   map[string]*Feature
	featuresByPlugin map[string][]*Feature
}

var _ Registry = (*Cache)(nil)

// Plugins returns all plugins in cache order.
func (c *Cache) Plugins() []*Plugin {
	out := make([]*Plugin, len(c.plugins))
	copy(out, c.plugins)
	return out
}

// FeaturesByPlugin returns the features of the named plugin.
func (c *Cache) FeaturesByPlugin(name string) []*Feature {
	feats := c.featuresByPlugin[name]
	out := make([]*Feature, len(feats))
	copy(out, feats)
	return out
}

// FindFeature finds a feature by name, restricted to kind.
func (c *Cache) FindFeature(name string, kind FeatureKind) *Feature {
	f, ok := c.featuresByName[name]
	if !ok || f.Kind != kind {
		return nil
	}
	return f
}

// TypeByName resolves a type node by name. Exposed for tests and tooling;
// the inspection core reaches types through element factories instead.
func (c *Cache) TypeByName(name string) *TypeNode {
	return c.types[name]
}

func (c *Cache) buildIndexes() {
	c.featuresByName = make(map[string]*Feature)
	c.featuresByPlugin = make(map[string][]*Feature)
	for _, p := range c.plugins {
		for _, f := range p.Features {
			c.featuresByName[f.Name] = f
			c.featuresByPlugin[p.Name] = append(c.featuresByPlugin[p.Name], f)
		}
	}
}
