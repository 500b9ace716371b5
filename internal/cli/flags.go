package cli

import (
	"github.com/spf13/pflag"

	"github.com/jmylchreest/blockify/internal/colour"
	"github.com/jmylchreest/blockify/internal/quantize"
	"github.com/jmylchreest/blockify/internal/seed"
)

// choiceValue is a flag restricted to the values its parser accepts, so
// mistakes are reported while parsing the command line.
type choiceValue[T ~string] struct {
	value *T
	parse func(string) (T, error)
	typ   string
}

var (
	_ pflag.Value = (*choiceValue[quantize.Algorithm])(nil)
	_ pflag.Value = (*choiceValue[colour.Metric])(nil)
	_ pflag.Value = (*choiceValue[seed.Mode])(nil)
)

func newChoiceValue[T ~string](p *T, def T, typ string, parse func(string) (T, error)) *choiceValue[T] {
	*p = def
	return &choiceValue[T]{value: p, parse: parse, typ: typ}
}

func (c *choiceValue[T]) String() string { return string(*c.value) }

func (c *choiceValue[T]) Set(s string) error {
	v, err := c.parse(s)
	if err != nil {
		return err
	}
	*c.value = v
	return nil
}

func (c *choiceValue[T]) Type() string { return c.typ }

func algorithmFlag(fs *pflag.FlagSet, p *quantize.Algorithm, name, short, usage string) {
	fs.VarP(newChoiceValue(p, "", "algorithm", quantize.ParseAlgorithm), name, short, usage)
}

func metricFlag(fs *pflag.FlagSet, p *colour.Metric, name, short, usage string) {
	fs.VarP(newChoiceValue(p, colour.MetricWeighted, "metric", colour.ParseMetric), name, short, usage)
}

func seedModeFlag(fs *pflag.FlagSet, p *seed.Mode, name, usage string) {
	fs.Var(newChoiceValue(p, seed.ModeContent, "mode", seed.ParseMode), name, usage)
}
