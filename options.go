package odf

type readConfig struct {
	limits Limits
}

type ReadOption func(*readConfig)

func WithReadLimits(l Limits) ReadOption {
	return func(c *readConfig) { c.limits = l }
}

type writeConfig struct {
	styles    bool
	meta      bool
	generator string
}

type WriteOption func(*writeConfig)

// WithStyles controls whether a minimal styles.xml part is emitted.
// Enabled by default; some strict readers warn without it.
func WithStyles(v bool) WriteOption {
	return func(c *writeConfig) { c.styles = v }
}

// WithMeta controls whether a minimal meta.xml part is emitted.
func WithMeta(v bool) WriteOption {
	return func(c *writeConfig) { c.meta = v }
}

// WithGenerator sets the generator string recorded in meta.xml.
func WithGenerator(name string) WriteOption {
	return func(c *writeConfig) { c.generator = name }
}
