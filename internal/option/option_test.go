package option_test

import (
	"testing"

	"go.llib.dev/testcase/assert"

	"go.llib.dev/eqtest/internal/option"
)

type exampleConfig struct {
	Limit int
	Name  string
}

func (c *exampleConfig) Init() {
	c.Limit = 3
}

func TestToConfig(t *testing.T) {
	t.Run("defaults come from Init", func(t *testing.T) {
		c := option.ToConfig[exampleConfig]([]option.Option[exampleConfig](nil))
		assert.Equal(t, c.Limit, 3)
		assert.Equal(t, c.Name, "")
	})
	t.Run("options apply in order on top of the defaults", func(t *testing.T) {
		c := option.ToConfig[exampleConfig]([]option.Option[exampleConfig]{
			option.Func[exampleConfig](func(c *exampleConfig) { c.Limit = 1 }),
			option.Func[exampleConfig](func(c *exampleConfig) { c.Limit = 2 }),
			option.Func[exampleConfig](func(c *exampleConfig) { c.Name = "foo" }),
		})
		assert.Equal(t, c.Limit, 2)
		assert.Equal(t, c.Name, "foo")
	})
	t.Run("nil options are skipped", func(t *testing.T) {
		c := option.ToConfig[exampleConfig]([]option.Option[exampleConfig]{nil})
		assert.Equal(t, c.Limit, 3)
	})
}

func TestToConfig_configWithoutInit(t *testing.T) {
	type bare struct{ V int }
	c := option.ToConfig[bare]([]option.Option[bare]{
		option.Func[bare](func(c *bare) { c.V = 42 }),
	})
	assert.Equal(t, c.V, 42)
}
