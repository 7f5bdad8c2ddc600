package graph

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/TGartman/SSC/internal/entity"
	"github.com/sirupsen/logrus"
)

// DriveItem is the subset of the Graph drive item we care about.
type DriveItem struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	WebURL    string `json:"webUrl"`
	SizeBytes int64  `json:"size"`
	Folder    *struct {
		ChildCount int `json:"childCount"`
	} `json:"folder,omitempty"`
	File *struct {
		MimeType string `json:"mimeType"`
	} `json:"file,omitempty"`
}

func (i DriveItem) IsFolder() bool { return i.Folder != nil }

func (i DriveItem) MimeType() string {
	if i.File == nil {
		return ""
	}
	return i.File.MimeType
}

type Client interface {
	ListChildren(ctx context.Context, driveID, itemID string) ([]DriveItem, error)
	Download(ctx context.Context, driveID, itemID string) ([]byte, error)
	Upload(ctx context.Context, driveID, parentID, name string, data []byte) (*DriveItem, error)
}

type Config struct {
	TenantID     string
	ClientID     string
	ClientSecret string
	BaseURL      string
	TokenURL     string
}

type httpClient struct {
	cfg  Config
	http *http.Client

	mu       sync.Mutex
	token    string
	tokenExp time.Time
}

func NewClient(cfg Config) (Client, error) {
	if cfg.TenantID == "" || cfg.ClientID == "" || cfg.ClientSecret == "" {
		return nil, fmt.Errorf("%w: graph tenant id, client id and client secret are required", entity.ErrConfig)
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://graph.microsoft.com/v1.0"
	}
	if cfg.TokenURL == "" {
		cfg.TokenURL = fmt.Sprintf("https://login.microsoftonline.com/%s/oauth2/v2.0/token", cfg.TenantID)
	}
	return &httpClient{
		cfg:  cfg,
		http: &http.Client{Timeout: 30 * time.Second},
	}, nil
}

// acquireToken exchanges the client credentials for an access token,
// caching it until shortly before expiry.
func (c *httpClient) acquireToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.token != "" && time.Now().Before(c.tokenExp) {
		return c.token, nil
	}

	form := url.Values{
		"grant_type":    {"client_credentials"},
		"client_id":     {c.cfg.ClientID},
		"client_secret": {c.cfg.ClientSecret},
		"scope":         {"https://graph.microsoft.com/.default"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.TokenURL,
		strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("token request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return "", fmt.Errorf("%w: token exchange returned %d, check that the client secret is current and the app has Sites.ReadWrite.All granted", entity.ErrUpstreamAuth, resp.StatusCode)
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("token exchange failed with status %d: %s", resp.StatusCode, body)
	}

	var tok struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&tok); err != nil {
		return "", fmt.Errorf("decode token response: %w", err)
	}
	if tok.AccessToken == "" {
		return "", fmt.Errorf("token response contained no access token")
	}

	c.token = tok.AccessToken
	c.tokenExp = time.Now().Add(time.Duration(tok.ExpiresIn)*time.Second - time.Minute)
	return c.token, nil
}

func (c *httpClient) do(ctx context.Context, method, u string, body io.Reader, contentType string) (*http.Response, error) {
	token, err := c.acquireToken(ctx)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		resp.Body.Close()
		return nil, fmt.Errorf("%w: graph returned %d for %s %s, check the app permission grant", entity.ErrUpstreamAuth, resp.StatusCode, method, u)
	case resp.StatusCode == http.StatusNotFound:
		resp.Body.Close()
		return nil, fmt.Errorf("%w: %s %s", entity.ErrNotFound, method, u)
	case resp.StatusCode >= 400:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		resp.Body.Close()
		return nil, fmt.Errorf("graph %s %s failed with status %d: %s", method, u, resp.StatusCode, body)
	}
	return resp, nil
}

func (c *httpClient) ListChildren(ctx context.Context, driveID, itemID string) ([]DriveItem, error) {
	u := fmt.Sprintf("%s/drives/%s/items/%s/children?$top=200",
		c.cfg.BaseURL, url.PathEscape(driveID), url.PathEscape(itemID))

	var items []DriveItem
	for u != "" {
		resp, err := c.do(ctx, http.MethodGet, u, nil, "")
		if err != nil {
			return nil, err
		}

		var page struct {
			Value    []DriveItem `json:"value"`
			NextLink string      `json:"@odata.nextLink"`
		}
		err = json.NewDecoder(resp.Body).Decode(&page)
		resp.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("decode children response: %w", err)
		}

		items = append(items, page.Value...)
		u = page.NextLink
	}

	logrus.WithFields(logrus.Fields{
		"drive_id": driveID,
		"item_id":  itemID,
		"count":    len(items),
	}).Debug("listed drive children")

	return items, nil
}

func (c *httpClient) Download(ctx context.Context, driveID, itemID string) ([]byte, error) {
	u := fmt.Sprintf("%s/drives/%s/items/%s/content",
		c.cfg.BaseURL, url.PathEscape(driveID), url.PathEscape(itemID))

	resp, err := c.do(ctx, http.MethodGet, u, nil, "")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	return io.ReadAll(resp.Body)
}

func (c *httpClient) Upload(ctx context.Context, driveID, parentID, name string, data []byte) (*DriveItem, error) {
	u := fmt.Sprintf("%s/drives/%s/items/%s:/%s:/content",
		c.cfg.BaseURL, url.PathEscape(driveID), url.PathEscape(parentID), url.PathEscape(name))

	resp, err := c.do(ctx, http.MethodPut, u, bytes.NewReader(data), "image/png")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var item DriveItem
	if err := json.NewDecoder(resp.Body).Decode(&item); err != nil {
		return nil, fmt.Errorf("decode upload response: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"drive_id": driveID,
		"name":     name,
		"item_id":  item.ID,
	}).Info("uploaded composed post")

	return &item, nil
}
