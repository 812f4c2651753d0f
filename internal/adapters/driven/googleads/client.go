package googleads

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/custodia-labs/mcc-cli/internal/core/domain"
	"github.com/custodia-labs/mcc-cli/internal/core/ports/driven"
	"github.com/custodia-labs/mcc-cli/internal/logger"
)

// Ensure Client implements the interface.
var _ driven.AdsClient = (*Client)(nil)

// defaultTimeout bounds a single API call.
const defaultTimeout = 60 * time.Second

// Client calls the Google Ads REST API.
type Client struct {
	endpoint   string
	httpClient *http.Client
}

// NewClient creates a client for the given API location. A nil httpClient
// uses a client with a default timeout.
func NewClient(api domain.APISettings, httpClient *http.Client) *Client {
	if api.BaseURL == "" {
		api.BaseURL = domain.DefaultAPIBaseURL
	}
	if api.Version == "" {
		api.Version = domain.DefaultAPIVersion
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	return &Client{
		endpoint:   strings.TrimSuffix(api.BaseURL, "/") + "/" + api.Version,
		httpClient: httpClient,
	}
}

// Endpoint returns the versioned API base URL.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// ResolveRootCustomer returns the first customer the access token can reach.
func (c *Client) ResolveRootCustomer(ctx context.Context, accessToken, developerToken string) (string, error) {
	body, err := c.do(ctx, http.MethodGet, "/customers:listAccessibleCustomers", nil, credentials{
		accessToken:    accessToken,
		developerToken: developerToken,
	})
	if err != nil {
		return "", fmt.Errorf("list accessible customers: %w", err)
	}

	names := gjson.GetBytes(body, "resourceNames").Array()
	if len(names) == 0 {
		return "", domain.ErrNoAccessibleCustomers
	}
	id, err := domain.CustomerIDFromResourceName(names[0].String())
	if err != nil {
		return "", fmt.Errorf("list accessible customers: %w", err)
	}
	logger.Debug("googleads: root customer %s (%d accessible)", id, len(names))
	return id, nil
}

// ListChildCustomers returns the root customer's non-closed hierarchy,
// ordered by descriptive name.
func (c *Client) ListChildCustomers(ctx context.Context, accessToken, developerToken string) ([]domain.Customer, error) {
	rootID, err := c.ResolveRootCustomer(ctx, accessToken, developerToken)
	if err != nil {
		return nil, err
	}

	req, err := sjson.SetBytes(nil, "query", childCustomersQuery)
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}
	body, err := c.do(ctx, http.MethodPost, "/customers/"+rootID+"/googleAds:searchStream", req, credentials{
		accessToken:     accessToken,
		developerToken:  developerToken,
		loginCustomerID: rootID,
	})
	if err != nil {
		return nil, fmt.Errorf("search customer clients of %s: %w", rootID, err)
	}

	customers := parseCustomerRows(body)
	logger.Debug("googleads: %d customers under %s", len(customers), rootID)
	return customers, nil
}

// CreateChildCustomer creates a client customer under the parent manager.
func (c *Client) CreateChildCustomer(
	ctx context.Context,
	accessToken, developerToken string,
	nc domain.NewCustomer,
) (*domain.Customer, error) {
	if err := nc.Validate(); err != nil {
		return nil, err
	}

	req, err := buildCreateRequest(nc)
	if err != nil {
		return nil, fmt.Errorf("build create request: %w", err)
	}
	body, err := c.do(ctx, http.MethodPost, "/customers/"+nc.ParentID+":createCustomerClient", req, credentials{
		accessToken:     accessToken,
		developerToken:  developerToken,
		loginCustomerID: nc.ParentID,
	})
	if err != nil {
		return nil, fmt.Errorf("create customer under %s: %w", nc.ParentID, err)
	}

	resourceName := gjson.GetBytes(body, "resourceName").String()
	id, err := domain.CustomerIDFromResourceName(resourceName)
	if err != nil {
		return nil, fmt.Errorf("create customer under %s: %w", nc.ParentID, err)
	}
	level := 1
	return &domain.Customer{
		ID:           id,
		Name:         nc.DescriptiveName,
		Type:         domain.CustomerTypeCustomer,
		Level:        &level,
		CurrencyCode: nc.CurrencyCode,
		TimeZone:     nc.TimeZone,
		ResourceName: resourceName,
	}, nil
}

func buildCreateRequest(nc domain.NewCustomer) ([]byte, error) {
	fields := []struct {
		path  string
		value string
	}{
		{"customerClient.descriptiveName", nc.DescriptiveName},
		{"customerClient.currencyCode", nc.CurrencyCode},
		{"customerClient.timeZone", nc.TimeZone},
	}

	body := []byte("{}")
	for _, f := range fields {
		if f.value == "" {
			continue
		}
		var err error
		if body, err = sjson.SetBytes(body, f.path, f.value); err != nil {
			return nil, err
		}
	}
	return body, nil
}

// parseCustomerRows maps searchStream output to customers. The stream
// endpoint returns an array of batches; search returns a single object.
func parseCustomerRows(body []byte) []domain.Customer {
	var rows []gjson.Result
	parsed := gjson.ParseBytes(body)
	if parsed.IsArray() {
		for _, batch := range parsed.Array() {
			rows = append(rows, batch.Get("results").Array()...)
		}
	} else {
		rows = parsed.Get("results").Array()
	}

	customers := make([]domain.Customer, 0, len(rows))
	for _, row := range rows {
		if c, ok := parseCustomerRow(row.Get("customerClient")); ok {
			customers = append(customers, c)
		}
	}
	return customers
}

func parseCustomerRow(cc gjson.Result) (domain.Customer, bool) {
	id := cc.Get("id").String()
	if id == "" {
		clientCustomer := cc.Get("clientCustomer").String()
		parsed, err := domain.CustomerIDFromResourceName(clientCustomer)
		if err != nil {
			return domain.Customer{}, false
		}
		id = parsed
	}

	c := domain.Customer{
		ID:           id,
		Name:         cc.Get("descriptiveName").String(),
		Type:         domain.CustomerTypeCustomer,
		CurrencyCode: cc.Get("currencyCode").String(),
		TimeZone:     cc.Get("timeZone").String(),
		ResourceName: domain.CustomerResourceName(id),
		Status:       cc.Get("status").String(),
	}
	if c.Name == "" {
		c.Name = domain.DefaultCustomerName(id)
	}
	if cc.Get("manager").Bool() {
		c.Type = domain.CustomerTypeMCC
	}
	if level := cc.Get("level"); level.Exists() {
		n := int(level.Int())
		c.Level = &n
	}
	return c, true
}

type credentials struct {
	accessToken     string
	developerToken  string
	loginCustomerID string
}

// do sends a request and returns the body of a 2xx response.
func (c *Client) do(ctx context.Context, method, path string, payload []byte, creds credentials) ([]byte, error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.endpoint+path, reader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+creds.accessToken)
	req.Header.Set("developer-token", creds.developerToken)
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if creds.loginCustomerID != "" {
		req.Header.Set("login-customer-id", creds.loginCustomerID)
	}

	logger.Debug("googleads: %s %s", method, path)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if !isSuccess(resp.StatusCode) {
		return nil, parseAPIError(resp.StatusCode, body)
	}
	return body, nil
}
