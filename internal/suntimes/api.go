package suntimes

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/julianstephens/sundial/internal/constants"
	apperrors "github.com/julianstephens/sundial/internal/errors"
	"github.com/julianstephens/sundial/internal/logger"
)

// APIProvider fetches sun times from the sunrisesunset.io JSON API.
type APIProvider struct {
	BaseURL string
	Client  *http.Client
}

type apiResponse struct {
	Results apiResults `json:"results"`
	Status  string     `json:"status"`
}

type apiResults struct {
	Sunrise string `json:"sunrise"`
	Sunset  string `json:"sunset"`
}

func NewAPIProvider(baseURL string, timeout time.Duration) *APIProvider {
	if baseURL == "" {
		baseURL = constants.DefaultAPIURL
	}
	return &APIProvider{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client:  &http.Client{Timeout: timeout},
	}
}

func (p *APIProvider) Name() string {
	return constants.ProviderAPI
}

// BuildURL returns the request URL for loc on the calendar day of date.
func (p *APIProvider) BuildURL(loc Location, date time.Time) string {
	q := url.Values{}
	q.Set("lat", strconv.FormatFloat(loc.Latitude, 'f', -1, 64))
	q.Set("lng", strconv.FormatFloat(loc.Longitude, 'f', -1, 64))
	q.Set("date", date.Format(constants.DateFormat))
	q.Set("time_format", "unix")
	return p.BaseURL + "/json?" + q.Encode()
}

func (p *APIProvider) SunTimes(ctx context.Context, loc Location, date time.Time) (SunTimes, error) {
	reqURL := p.BuildURL(loc, date)
	logger.Debug("Fetching sun times", "url", reqURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return SunTimes{}, apperrors.Wrap(apperrors.ErrFetch, err)
	}
	req.Header.Set("Accept", "application/json")

	client := p.Client
	if client == nil {
		client = http.DefaultClient
	}
	res, err := client.Do(req)
	if err != nil {
		return SunTimes{}, apperrors.Wrap(apperrors.ErrFetch, err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(res.Body, 512))
		return SunTimes{}, apperrors.Wrapf(apperrors.ErrFetch, "sun times request failed with status %d: %s", res.StatusCode, strings.TrimSpace(string(body)))
	}

	var payload apiResponse
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		return SunTimes{}, apperrors.Wrap(apperrors.ErrFetch, fmt.Errorf("failed to decode sun times response: %w", err))
	}
	if payload.Status != "" && payload.Status != "OK" {
		return SunTimes{}, apperrors.Wrapf(apperrors.ErrFetch, "sun times API returned status %q", payload.Status)
	}

	sunrise, err := parseUnix(payload.Results.Sunrise)
	if err != nil {
		return SunTimes{}, apperrors.Wrap(apperrors.ErrFetch, fmt.Errorf("invalid sunrise: %w", err))
	}
	sunset, err := parseUnix(payload.Results.Sunset)
	if err != nil {
		return SunTimes{}, apperrors.Wrap(apperrors.ErrFetch, fmt.Errorf("invalid sunset: %w", err))
	}

	return FromInstants(sunrise, sunset), nil
}

func parseUnix(s string) (time.Time, error) {
	ts, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("not a unix timestamp %q", s)
	}
	return time.Unix(ts, 0).UTC(), nil
}
