package currency

import (
	"context"

	"go.uber.org/zap"
)

// Converter converts amounts into a target currency, caching each currency
// pair for its own lifetime. Callers create one Converter per listing batch
// so duplicate pairs within a batch cost a single upstream call.
//
// Conversion fails soft: when the rate source errors, the rate is taken as 1
// and the unconverted amount is reported rather than aborting the caller.
type Converter struct {
	source RateSource
	rates  map[string]float64
	log    *zap.Logger
}

// NewConverter creates a converter with an empty rate cache
func NewConverter(source RateSource, log *zap.Logger) *Converter {
	return &Converter{
		source: source,
		rates:  make(map[string]float64),
		log:    log,
	}
}

// Convert returns the amount expressed in the target currency
func (c *Converter) Convert(ctx context.Context, amount float64, from, to string) float64 {
	if from == to {
		return amount
	}

	key := from + ":" + to
	rate, ok := c.rates[key]
	if !ok {
		var err error
		rate, err = c.source.Rate(ctx, from, to)
		if err != nil {
			c.log.Warn("currency conversion failed, using rate 1",
				zap.String("from", from),
				zap.String("to", to),
				zap.Error(err),
			)
			rate = 1
		}
		c.rates[key] = rate
	}

	return amount * rate
}
