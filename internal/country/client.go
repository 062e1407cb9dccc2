package country

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
)

// RESTClient fetches country records from the REST Countries API.
type RESTClient struct {
	httpClient *http.Client
	url        string
}

var _ Fetcher = (*RESTClient)(nil)

// NewRESTClient creates a fetcher for the given REST Countries URL.
func NewRESTClient(url string) *RESTClient {
	return &RESTClient{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		url:        url,
	}
}

// restCountry mirrors the fields we request from the v3.1 API.
type restCountry struct {
	Name struct {
		Common string `json:"common"`
	} `json:"name"`
	CCA3  string `json:"cca3"`
	Flags struct {
		PNG string `json:"png"`
	} `json:"flags"`
	Capital    []string `json:"capital"`
	Region     string   `json:"region"`
	Population int64    `json:"population"`
}

// FetchAll downloads and parses the full country list. Records missing a
// name, code or flag are skipped, matching the local-file loader.
func (c *RESTClient) FetchAll(ctx context.Context) ([]CountryRecord, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "CountryQuizBot/1.0")

	log.Debug("Requesting country catalog", "url", c.url)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		log.Error("Received non-OK HTTP status from countries API", "status", resp.StatusCode, "body", string(body))
		return nil, fmt.Errorf("received non-OK HTTP status: %d", resp.StatusCode)
	}

	var raw []restCountry
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	records := mapRESTCountries(raw)
	if len(records) == 0 {
		return nil, fmt.Errorf("countries API returned no usable records")
	}
	log.Info("Fetched country catalog", "count", len(records))
	return records, nil
}

func mapRESTCountries(raw []restCountry) []CountryRecord {
	records := make([]CountryRecord, 0, len(raw))
	for _, rc := range raw {
		if rc.Name.Common == "" || rc.CCA3 == "" || rc.Flags.PNG == "" {
			continue
		}
		record := CountryRecord{
			Code:       rc.CCA3,
			Name:       rc.Name.Common,
			FlagURL:    rc.Flags.PNG,
			Region:     rc.Region,
			Population: rc.Population,
		}
		if len(rc.Capital) > 0 {
			record.Capital = rc.Capital[0]
		}
		records = append(records, record)
	}
	return records
}
