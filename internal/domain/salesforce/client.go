// Package salesforce is the CRM client adapter: a thin typed wrapper over the
// Salesforce REST/SOQL API. Each method takes the per-request Credential and
// issues one outbound call; there is no caching, retrying or shared state.
package salesforce

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client is the capability interface consumed by the tool dispatcher,
// one method per tool category. A mock implementation is substituted in
// tests without network access.
type Client interface {
	DescribeObject(ctx context.Context, cred Credential, object ObjectType) (*ObjectSchema, error)
	CreateRecord(ctx context.Context, cred Credential, object ObjectType, fields map[string]any) (string, error)
	UpdateRecord(ctx context.Context, cred Credential, object ObjectType, recordID string, fields map[string]any) error
	DeleteRecord(ctx context.Context, cred Credential, object ObjectType, recordID string) error
	Query(ctx context.Context, cred Credential, soql string) (*QueryResult, error)
	ConvertLead(ctx context.Context, cred Credential, input ConvertLeadInput) (*ConvertLeadResult, error)
	CreateEmailMessage(ctx context.Context, cred Credential, input EmailMessageInput) (string, error)
}

// RESTClient implements Client against the Salesforce REST API.
type RESTClient struct {
	apiVersion string
	httpClient *http.Client
}

// NewRESTClient creates a RESTClient for the given API version (e.g. "v59.0").
func NewRESTClient(apiVersion string, timeout time.Duration) *RESTClient {
	return &RESTClient{
		apiVersion: apiVersion,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// BaseURL normalizes the forwarded instance URL: trims a trailing slash and
// prepends https:// when no scheme is present.
func BaseURL(cred Credential) string {
	base := strings.TrimSuffix(strings.TrimSpace(cred.InstanceURL), "/")
	if !strings.HasPrefix(base, "http://") && !strings.HasPrefix(base, "https://") {
		base = "https://" + base
	}
	return base
}

// DirectLink builds a direct weblink to a record on the org's UI.
// Pure URL construction, no CRM call.
func DirectLink(cred Credential, recordID string) string {
	return BaseURL(cred) + "/" + recordID
}

func (c *RESTClient) sobjectURL(cred Credential, object ObjectType) string {
	return fmt.Sprintf("%s/services/data/%s/sobjects/%s", BaseURL(cred), c.apiVersion, object)
}

// DescribeObject fetches the object's field list with type metadata.
func (c *RESTClient) DescribeObject(ctx context.Context, cred Credential, object ObjectType) (*ObjectSchema, error) {
	var resp struct {
		Fields []struct {
			Name           string          `json:"name"`
			Label          string          `json:"label"`
			Type           string          `json:"type"`
			Nillable       bool            `json:"nillable"`
			Createable     bool            `json:"createable"`
			Updateable     bool            `json:"updateable"`
			PicklistValues []PicklistValue `json:"picklistValues"`
		} `json:"fields"`
	}
	if err := c.do(ctx, cred, http.MethodGet, c.sobjectURL(cred, object)+"/describe", nil, false, &resp); err != nil {
		return nil, fmt.Errorf("describe %s: %w", object, err)
	}

	schema := &ObjectSchema{Object: object, Fields: make([]Field, 0, len(resp.Fields))}
	for _, f := range resp.Fields {
		picklist := f.PicklistValues
		if picklist == nil {
			picklist = []PicklistValue{}
		}
		schema.Fields = append(schema.Fields, Field{
			Name:           f.Name,
			Label:          f.Label,
			Type:           f.Type,
			Required:       !f.Nillable,
			Createable:     f.Createable,
			Updateable:     f.Updateable,
			PicklistValues: picklist,
		})
	}
	return schema, nil
}

// CreateRecord inserts a record and returns the new record ID.
func (c *RESTClient) CreateRecord(ctx context.Context, cred Credential, object ObjectType, fields map[string]any) (string, error) {
	var resp struct {
		ID      string `json:"id"`
		Success bool   `json:"success"`
	}
	if err := c.do(ctx, cred, http.MethodPost, c.sobjectURL(cred, object), fields, false, &resp); err != nil {
		return "", fmt.Errorf("create %s: %w", object, err)
	}
	return resp.ID, nil
}

// UpdateRecord patches an existing record. Salesforce replies 204 on success.
func (c *RESTClient) UpdateRecord(ctx context.Context, cred Credential, object ObjectType, recordID string, fields map[string]any) error {
	target := c.sobjectURL(cred, object) + "/" + recordID
	if err := c.do(ctx, cred, http.MethodPatch, target, fields, false, nil); err != nil {
		return fmt.Errorf("update %s %s: %w", object, recordID, err)
	}
	return nil
}

// DeleteRecord removes an existing record.
func (c *RESTClient) DeleteRecord(ctx context.Context, cred Credential, object ObjectType, recordID string) error {
	target := c.sobjectURL(cred, object) + "/" + recordID
	if err := c.do(ctx, cred, http.MethodDelete, target, nil, false, nil); err != nil {
		return fmt.Errorf("delete %s %s: %w", object, recordID, err)
	}
	return nil
}

// Query executes the SOQL string verbatim. No client-side parsing or
// validation of the query; malformed input surfaces as QueryError.
func (c *RESTClient) Query(ctx context.Context, cred Credential, soql string) (*QueryResult, error) {
	queryURL := fmt.Sprintf("%s/services/data/%s/query?q=%s", BaseURL(cred), c.apiVersion, url.QueryEscape(soql))

	var result QueryResult
	if err := c.do(ctx, cred, http.MethodGet, queryURL, nil, true, &result); err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	if result.Records == nil {
		result.Records = []map[string]any{}
	}
	return &result, nil
}

// ConvertLead performs the org's native lead conversion through its apexrest
// ConvertLead endpoint, returning the linked record IDs.
func (c *RESTClient) ConvertLead(ctx context.Context, cred Credential, input ConvertLeadInput) (*ConvertLeadResult, error) {
	body := map[string]any{
		"leadId":          input.LeadID,
		"convertedStatus": input.ConvertedStatus,
		"opportunityName": input.OpportunityName,
	}
	if input.AccountID != "" {
		body["accountId"] = input.AccountID
	}
	if input.ContactID != "" {
		body["contactId"] = input.ContactID
	}

	convertURL := BaseURL(cred) + "/services/apexrest/apex/ConvertLead"
	var result ConvertLeadResult
	if err := c.do(ctx, cred, http.MethodPost, convertURL, body, false, &result); err != nil {
		return nil, fmt.Errorf("convert lead %s: %w", input.LeadID, err)
	}
	return &result, nil
}

// CreateEmailMessage creates an EmailMessage record (Enhanced Email).
func (c *RESTClient) CreateEmailMessage(ctx context.Context, cred Credential, input EmailMessageInput) (string, error) {
	fields := map[string]any{
		"RelatedToId": input.RelatedToID,
		"Subject":     input.Subject,
		"TextBody":    input.TextBody,
		"HtmlBody":    input.HTMLBody,
		"FromName":    input.FromName,
		"FromAddress": input.FromAddress,
		"ToAddress":   input.ToAddress,
		"Status":      input.Status,
	}
	id, err := c.CreateRecord(ctx, cred, objectEmailMessage, fields)
	if err != nil {
		return "", fmt.Errorf("create email message: %w", err)
	}
	return id, nil
}

// do issues one authenticated request and decodes the response into out
// (out may be nil for 204-style replies). Failures are classified into the
// adapter's error taxonomy.
func (c *RESTClient) do(ctx context.Context, cred Credential, method, rawURL string, body any, isQueryPath bool, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+cred.AccessToken)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("salesforce request: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		var errs []restError
		// Best effort: a non-JSON error body still classifies by status code.
		_ = json.Unmarshal(data, &errs)
		return classifyError(resp.StatusCode, errs, isQueryPath)
	}

	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
