package currency

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"
)

type stubRates struct {
	rate  float64
	err   error
	calls int
}

func (s *stubRates) Rate(ctx context.Context, from, to string) (float64, error) {
	s.calls++
	if s.err != nil {
		return 0, s.err
	}
	return s.rate, nil
}

func TestConvertSameCurrencySkipsLookup(t *testing.T) {
	source := &stubRates{rate: 2}
	conv := NewConverter(source, zap.NewNop())

	got := conv.Convert(context.Background(), 150, "USD", "USD")
	if got != 150 {
		t.Errorf("Convert() = %v, want 150", got)
	}
	if source.calls != 0 {
		t.Errorf("rate source called %d times, want 0", source.calls)
	}
}

func TestConvertCachesRatePerPair(t *testing.T) {
	source := &stubRates{rate: 0.5}
	conv := NewConverter(source, zap.NewNop())
	ctx := context.Background()

	if got := conv.Convert(ctx, 100, "USD", "EUR"); got != 50 {
		t.Errorf("Convert() = %v, want 50", got)
	}
	if got := conv.Convert(ctx, 200, "USD", "EUR"); got != 100 {
		t.Errorf("Convert() = %v, want 100", got)
	}
	if source.calls != 1 {
		t.Errorf("rate source called %d times, want 1", source.calls)
	}
}

func TestConvertFailsSoftToRateOne(t *testing.T) {
	source := &stubRates{err: errors.New("upstream down")}
	conv := NewConverter(source, zap.NewNop())
	ctx := context.Background()

	if got := conv.Convert(ctx, 75, "USD", "INR"); got != 75 {
		t.Errorf("Convert() = %v, want 75", got)
	}

	// The fallback rate is cached too, so the failing source is not retried
	// within the same batch.
	conv.Convert(ctx, 10, "USD", "INR")
	if source.calls != 1 {
		t.Errorf("rate source called %d times, want 1", source.calls)
	}
}

func TestAPIClientRate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v4/latest/USD" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"base":"USD","rates":{"EUR":0.85,"INR":83.2}}`))
	}))
	defer server.Close()

	client := NewAPIClient(server.URL)
	rate, err := client.Rate(context.Background(), "USD", "EUR")
	if err != nil {
		t.Fatalf("Rate() error = %v", err)
	}
	if rate != 0.85 {
		t.Errorf("Rate() = %v, want 0.85", rate)
	}
}

func TestAPIClientRateMissingTarget(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"base":"USD","rates":{"EUR":0.85}}`))
	}))
	defer server.Close()

	client := NewAPIClient(server.URL)
	if _, err := client.Rate(context.Background(), "USD", "XYZ"); err == nil {
		t.Error("Rate() expected error for missing target currency")
	}
}

func TestAPIClientRateServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewAPIClient(server.URL)
	if _, err := client.Rate(context.Background(), "USD", "EUR"); err == nil {
		t.Error("Rate() expected error for non-200 response")
	}
}
