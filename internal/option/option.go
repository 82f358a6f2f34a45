// Package option implements the functional option pattern
// used by the configurable parts of this module.
package option

// Option configures a Config value.
type Option[Config any] interface {
	Configure(*Config)
}

// Func makes a plain function usable as an Option.
type Func[Config any] func(*Config)

func (fn Func[Config]) Configure(c *Config) { fn(c) }

// ToConfig folds the options into a fresh Config.
// When the Config type has an Init method, it runs first to establish the defaults.
// Nil options are skipped.
func ToConfig[Config any, Opt Option[Config]](opts []Opt) Config {
	var c Config
	if init, ok := any(&c).(initer); ok {
		init.Init()
	}
	for _, opt := range opts {
		if any(opt) == nil {
			continue
		}
		opt.Configure(&c)
	}
	return c
}

type initer interface{ Init() }
