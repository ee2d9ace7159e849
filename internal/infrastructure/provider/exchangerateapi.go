package provider

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"fxsnapshot/internal/application"
	"fxsnapshot/internal/domain"
	"fxsnapshot/internal/infrastructure/httpx"
)

// ExchangeRateAPIProvider reads the latest table of a v4-style endpoint,
// e.g. https://api.exchangerate-api.com/v4/latest/USD.
type ExchangeRateAPIProvider struct {
	BaseURL string
	Client  *httpx.Client
}

var _ application.RateFetcher = (*ExchangeRateAPIProvider)(nil)

type latestResp struct {
	Base  string             `json:"base"`
	Date  string             `json:"date"`
	Rates map[string]float64 `json:"rates"`
}

func (p *ExchangeRateAPIProvider) Fetch(ctx context.Context, base domain.Currency) (domain.RateTable, error) {
	if p.BaseURL == "" {
		return domain.RateTable{}, errors.New("exchangerate-api: missing base url")
	}
	client := p.Client
	if client == nil {
		client = &httpx.Client{HTTP: http.DefaultClient}
	}

	var body latestResp
	if err := client.GetJSON(ctx, p.BaseURL+string(base), &body); err != nil {
		var se *httpx.StatusError
		if errors.As(err, &se) {
			return domain.RateTable{}, &domain.FetchError{StatusCode: se.Code}
		}
		return domain.RateTable{}, fmt.Errorf("exchangerate-api: %w", err)
	}
	if body.Rates == nil {
		return domain.RateTable{}, fmt.Errorf("exchangerate-api: %w: no rates field", domain.ErrMalformedResponse)
	}
	return domain.RateTable{Base: body.Base, Date: body.Date, Rates: body.Rates}, nil
}
