package azuredevops

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	apiVersion       = "7.0"
	continuationKey  = "x-ms-continuationtoken"
	defaultAzureHost = "https://dev.azure.com/"
	requestTimeout   = 60 * time.Second
)

// Client represents an Azure DevOps API client
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	org        string
}

// NewClient creates a new Azure DevOps client. organization is either a bare
// organization name or a full collection URL.
func NewClient(organization, pat string) *Client {
	// Normalize organization URL
	org := strings.TrimSuffix(organization, "/")
	if !strings.HasPrefix(org, "https://") && !strings.HasPrefix(org, "http://") {
		org = defaultAzureHost + org
	}

	return &Client{
		baseURL: org,
		token:   pat,
		org:     extractOrgName(org),
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
	}
}

func extractOrgName(baseURL string) string {
	u, err := url.Parse(baseURL)
	if err != nil {
		return baseURL
	}
	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(parts) > 0 && parts[0] != "" {
		return u.Host + "/" + parts[0]
	}
	return u.Host
}

// Organization returns the organization identifier
func (c *Client) Organization() string {
	return c.org
}

// APIError is a non-2xx answer from Azure DevOps.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error (status %d): %s", e.StatusCode, e.Body)
}

// NotFound reports whether the server answered 404.
func (e *APIError) NotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// Reference is the project reference embedded in most resources.
type Reference struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Definition represents a build pipeline definition
type Definition struct {
	ID      int       `json:"id"`
	Name    string    `json:"name"`
	Project Reference `json:"project"`
}

// Build represents a single build of a definition
type Build struct {
	ID            int       `json:"id"`
	BuildNumber   string    `json:"buildNumber"`
	SourceVersion string    `json:"sourceVersion"`
	SourceBranch  string    `json:"sourceBranch"`
	Project       Reference `json:"project"`
	Definition    struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	} `json:"definition"`
}

// GetItemContent returns the raw content of a file at the tip of a branch
func (c *Client) GetItemContent(ctx context.Context, project, repository, path, branch string) ([]byte, error) {
	query := url.Values{}
	query.Set("path", path)
	query.Set("versionDescriptor.version", branch)
	query.Set("versionDescriptor.versionType", "branch")
	query.Set("$format", "octetStream")
	query.Set("api-version", apiVersion)

	endpoint := fmt.Sprintf("/%s/_apis/git/repositories/%s/items?%s",
		url.PathEscape(project), url.PathEscape(repository), query.Encode())

	return c.doRequest(ctx, http.MethodGet, endpoint)
}

// GetDefinitions returns the build definitions of a project matching name
func (c *Client) GetDefinitions(ctx context.Context, project, name string) ([]Definition, error) {
	query := url.Values{}
	query.Set("name", name)
	query.Set("api-version", apiVersion)

	var all []Definition
	err := c.paginate(ctx, fmt.Sprintf("/%s/_apis/build/definitions", url.PathEscape(project)), query,
		func(body []byte) error {
			var result struct {
				Value []Definition `json:"value"`
			}
			if err := json.Unmarshal(body, &result); err != nil {
				return fmt.Errorf("failed to parse definitions response: %w", err)
			}
			all = append(all, result.Value...)
			return nil
		})
	return all, err
}

// GetBuilds returns the builds of the given definitions carrying buildNumber
func (c *Client) GetBuilds(ctx context.Context, project string, definitionIDs []int, buildNumber string) ([]Build, error) {
	ids := make([]string, 0, len(definitionIDs))
	for _, id := range definitionIDs {
		ids = append(ids, strconv.Itoa(id))
	}

	query := url.Values{}
	query.Set("definitions", strings.Join(ids, ","))
	query.Set("buildNumber", buildNumber)
	query.Set("api-version", apiVersion)

	var all []Build
	err := c.paginate(ctx, fmt.Sprintf("/%s/_apis/build/builds", url.PathEscape(project)), query,
		func(body []byte) error {
			var result struct {
				Value []Build `json:"value"`
			}
			if err := json.Unmarshal(body, &result); err != nil {
				return fmt.Errorf("failed to parse builds response: %w", err)
			}
			all = append(all, result.Value...)
			return nil
		})
	return all, err
}

// paginate follows x-ms-continuationtoken headers until the listing is exhausted
func (c *Client) paginate(ctx context.Context, path string, query url.Values, page func([]byte) error) error {
	continuationToken := ""
	for {
		if continuationToken != "" {
			query.Set("continuationToken", continuationToken)
		}

		resp, headers, err := c.doRequestWithHeaders(ctx, http.MethodGet, path+"?"+query.Encode())
		if err != nil {
			return err
		}
		if err = page(resp); err != nil {
			return err
		}

		continuationToken = headers.Get(continuationKey)
		if continuationToken == "" {
			return nil
		}
	}
}

func (c *Client) doRequest(ctx context.Context, method, endpoint string) ([]byte, error) {
	resp, _, err := c.doRequestWithHeaders(ctx, method, endpoint)
	return resp, err
}

func (c *Client) doRequestWithHeaders(ctx context.Context, method, endpoint string) ([]byte, http.Header, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create request: %w", err)
	}

	// Set Basic Auth with PAT
	auth := base64.StdEncoding.EncodeToString([]byte(":" + c.token))
	req.Header.Set("Authorization", "Basic "+auth)
	req.Header.Set("Accept", "application/json, application/octet-stream")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, nil, &APIError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	return respBody, resp.Header, nil
}

// asAPIError unwraps an APIError from err.
func asAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
