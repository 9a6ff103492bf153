package cbr_test

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"parceltracker/internal/adapters/out/cbr"
	"parceltracker/internal/core/domain/model/kernel"
	"parceltracker/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const dailyFeedFixture = `{
	"Valute": {
		"USD": {"Value": 92.45, "Nominal": 1},
		"EUR": {"Value": 100.50, "Nominal": 1},
		"HUF": {"Value": 25.10, "Nominal": 100}
	}
}`

func newFeedServer(t *testing.T) (*httptest.Server, *atomic.Int64) {
	t.Helper()

	var hits atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(dailyFeedFixture))
	}))
	t.Cleanup(server.Close)

	return server, &hits
}

func mustCurrency(t *testing.T, code string) kernel.Currency {
	t.Helper()
	currency, err := kernel.NewCurrency(code)
	require.NoError(t, err)
	return currency
}

func TestResolver_Resolve_SameCurrencySkipsNetwork(t *testing.T) {
	server, hits := newFeedServer(t)
	resolver := cbr.NewResolver(cbr.NewClient(server.URL), time.Hour)

	usd := mustCurrency(t, "USD")
	rate, err := resolver.Resolve(t.Context(), usd, usd)

	require.NoError(t, err)
	assert.Equal(t, "1.000000", rate.String())
	assert.Equal(t, int64(0), hits.Load())
}

func TestResolver_Resolve_DirectToBase(t *testing.T) {
	server, _ := newFeedServer(t)
	resolver := cbr.NewResolver(cbr.NewClient(server.URL), time.Hour)

	rate, err := resolver.Resolve(t.Context(), mustCurrency(t, "USD"), mustCurrency(t, "RUB"))

	require.NoError(t, err)
	assert.Equal(t, "92.450000", rate.String())
}

func TestResolver_Resolve_ReciprocalFromBase(t *testing.T) {
	server, _ := newFeedServer(t)
	resolver := cbr.NewResolver(cbr.NewClient(server.URL), time.Hour)

	rate, err := resolver.Resolve(t.Context(), mustCurrency(t, "RUB"), mustCurrency(t, "USD"))

	require.NoError(t, err)
	assert.Equal(t, "0.010817", rate.String())
}

func TestResolver_Resolve_CrossRate(t *testing.T) {
	server, _ := newFeedServer(t)
	resolver := cbr.NewResolver(cbr.NewClient(server.URL), time.Hour)

	// 92.45 / 100.50, rounded half-up to six places.
	rate, err := resolver.Resolve(t.Context(), mustCurrency(t, "USD"), mustCurrency(t, "EUR"))

	require.NoError(t, err)
	assert.Equal(t, "0.919900", rate.String())
}

func TestResolver_Resolve_NominalQuotedPerHundredUnits(t *testing.T) {
	server, _ := newFeedServer(t)
	resolver := cbr.NewResolver(cbr.NewClient(server.URL), time.Hour)

	rate, err := resolver.Resolve(t.Context(), mustCurrency(t, "HUF"), mustCurrency(t, "RUB"))

	require.NoError(t, err)
	assert.Equal(t, "0.251000", rate.String())
}

func TestResolver_Resolve_UnknownCurrencyNamesTheCode(t *testing.T) {
	server, _ := newFeedServer(t)
	resolver := cbr.NewResolver(cbr.NewClient(server.URL), time.Hour)

	_, err := resolver.Resolve(t.Context(), mustCurrency(t, "XXX"), mustCurrency(t, "RUB"))

	require.Error(t, err)
	var notFound *errs.ObjectNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Contains(t, err.Error(), "XXX")
}

func TestResolver_Resolve_CachesWithinTTL(t *testing.T) {
	server, hits := newFeedServer(t)
	resolver := cbr.NewResolver(cbr.NewClient(server.URL), time.Hour)

	usd := mustCurrency(t, "USD")
	rub := mustCurrency(t, "RUB")

	first, err := resolver.Resolve(t.Context(), usd, rub)
	require.NoError(t, err)
	second, err := resolver.Resolve(t.Context(), usd, rub)
	require.NoError(t, err)

	assert.Equal(t, first.String(), second.String())
	assert.Equal(t, int64(1), hits.Load())
}

func TestResolver_ClearCache_ForcesRefetch(t *testing.T) {
	server, hits := newFeedServer(t)
	resolver := cbr.NewResolver(cbr.NewClient(server.URL), time.Hour)

	usd := mustCurrency(t, "USD")
	rub := mustCurrency(t, "RUB")

	_, err := resolver.Resolve(t.Context(), usd, rub)
	require.NoError(t, err)

	resolver.ClearCache()

	_, err = resolver.Resolve(t.Context(), usd, rub)
	require.NoError(t, err)
	assert.Equal(t, int64(2), hits.Load())
}

func TestResolver_Resolve_FeedFailurePropagates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	t.Cleanup(server.Close)

	resolver := cbr.NewResolver(cbr.NewClient(server.URL), time.Hour)

	_, err := resolver.Resolve(t.Context(), mustCurrency(t, "USD"), mustCurrency(t, "RUB"))
	require.Error(t, err)
}
