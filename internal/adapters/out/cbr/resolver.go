package cbr

import (
	"context"
	"sync"
	"time"

	"parceltracker/internal/core/domain/model/kernel"
	"parceltracker/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// BaseCurrency is the currency every feed quote is relative to.
const BaseCurrency = "RUB"

// DefaultCacheTTL bounds how long a resolved rate is reused. Daily rates
// move once a day, an hour of staleness is acceptable for estimates.
const DefaultCacheTTL = time.Hour

type cacheKey struct {
	from string
	to   string
}

type cachedRate struct {
	rate      kernel.ExchangeRate
	fetchedAt time.Time
}

// feedProvider abstracts the daily-feed download for testing.
type feedProvider interface {
	FetchDaily(ctx context.Context) (DailyFeed, error)
}

// Resolver implements ports.RateResolver on top of the daily feed. Resolved
// rates are cached per (from, to) pair for a fixed TTL; the cache is
// advisory only and never required for correctness.
type Resolver struct {
	client feedProvider
	ttl    time.Duration

	mu    sync.Mutex
	cache map[cacheKey]cachedRate
	now   func() time.Time
}

// NewResolver creates a rate resolver backed by the given feed client.
// A non-positive ttl falls back to DefaultCacheTTL.
func NewResolver(client feedProvider, ttl time.Duration) *Resolver {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &Resolver{
		client: client,
		ttl:    ttl,
		cache:  make(map[cacheKey]cachedRate),
		now:    time.Now,
	}
}

// Resolve returns the rate converting one unit of from into to, such that
// amount_to = amount_from * rate. Same-currency requests short-circuit to
// the unit rate without touching the network.
//
// Example:
//
//	rate, err := resolver.Resolve(ctx, usd, rub)
//	// 1 USD = 92.45 RUB -> rate.Decimal() == 92.45
func (r *Resolver) Resolve(ctx context.Context, from, to kernel.Currency) (kernel.ExchangeRate, error) {
	if err := from.Validate(); err != nil {
		return kernel.ExchangeRate{}, err
	}
	if err := to.Validate(); err != nil {
		return kernel.ExchangeRate{}, err
	}

	if from.IsEqual(to) {
		return kernel.UnitExchangeRate(), nil
	}

	key := cacheKey{from: from.Code(), to: to.Code()}
	if rate, ok := r.cachedFresh(key); ok {
		return rate, nil
	}

	feed, err := r.client.FetchDaily(ctx)
	if err != nil {
		return kernel.ExchangeRate{}, err
	}

	value, err := crossRate(feed, from.Code(), to.Code())
	if err != nil {
		return kernel.ExchangeRate{}, err
	}

	rate, err := kernel.NewExchangeRate(value)
	if err != nil {
		return kernel.ExchangeRate{}, err
	}

	r.mu.Lock()
	r.cache[key] = cachedRate{rate: rate, fetchedAt: r.now()}
	r.mu.Unlock()

	return rate, nil
}

// ClearCache drops every cached rate. Used by tests and by operators after
// a bad feed day.
func (r *Resolver) ClearCache() {
	r.mu.Lock()
	r.cache = make(map[cacheKey]cachedRate)
	r.mu.Unlock()
}

func (r *Resolver) cachedFresh(key cacheKey) (kernel.ExchangeRate, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.cache[key]
	if !ok || r.now().Sub(entry.fetchedAt) >= r.ttl {
		return kernel.ExchangeRate{}, false
	}
	return entry.rate, true
}

// crossRate computes the conversion rate from the feed's RUB-relative
// quotes. Direct conversions use the quote (or its reciprocal); between two
// foreign currencies the rate is the ratio of their per-unit RUB prices.
func crossRate(feed DailyFeed, from, to string) (decimal.Decimal, error) {
	if to == BaseCurrency {
		quote, ok := feed.Valute[from]
		if !ok {
			return decimal.Decimal{}, errs.NewObjectNotFoundError("currency", from)
		}
		return quote.PerUnit(), nil
	}

	if from == BaseCurrency {
		quote, ok := feed.Valute[to]
		if !ok {
			return decimal.Decimal{}, errs.NewObjectNotFoundError("currency", to)
		}
		return decimal.NewFromInt(1).Div(quote.PerUnit()), nil
	}

	fromQuote, ok := feed.Valute[from]
	if !ok {
		return decimal.Decimal{}, errs.NewObjectNotFoundError("currency", from)
	}
	toQuote, ok := feed.Valute[to]
	if !ok {
		return decimal.Decimal{}, errs.NewObjectNotFoundError("currency", to)
	}

	return fromQuote.PerUnit().Div(toQuote.PerUnit()), nil
}
