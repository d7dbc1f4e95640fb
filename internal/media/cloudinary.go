package media

import (
	"context"
	"crypto/sha1"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"

	"github.com/sradha-notes/backend/internal/model"
)

// CloudinaryConfig carries the account credentials. BaseURL is overridable
// for tests and defaults to the public API endpoint.
type CloudinaryConfig struct {
	CloudName string
	APIKey    string
	APISecret string
	BaseURL   string
	Folder    string
}

// Cloudinary implements Uploader against the Cloudinary upload API using
// signed requests.
type Cloudinary struct {
	cfg    CloudinaryConfig
	client *resty.Client
	log    zerolog.Logger
}

type uploadResponse struct {
	SecureURL string `json:"secure_url"`
	PublicID  string `json:"public_id"`
	Error     struct {
		Message string `json:"message"`
	} `json:"error"`
}

type destroyResponse struct {
	Result string `json:"result"`
}

// NewCloudinary builds the client. Credentials are validated lazily; an
// unconfigured uploader fails on first use, not at startup.
func NewCloudinary(cfg CloudinaryConfig, log zerolog.Logger) *Cloudinary {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.cloudinary.com"
	}
	client := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(60 * time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(500 * time.Millisecond)
	return &Cloudinary{cfg: cfg, client: client, log: log}
}

func (c *Cloudinary) UploadRaw(ctx context.Context, data []byte, contentType string) (*Asset, error) {
	if contentType == "" {
		contentType = "image/png"
	}
	uri := fmt.Sprintf("data:%s;base64,%s", contentType, base64.StdEncoding.EncodeToString(data))
	return c.UploadDataURI(ctx, uri)
}

func (c *Cloudinary) UploadDataURI(ctx context.Context, uri string) (*Asset, error) {
	if c.cfg.CloudName == "" || c.cfg.APIKey == "" || c.cfg.APISecret == "" {
		return nil, fmt.Errorf("%w: media host credentials are not configured", model.ErrUpstream)
	}
	params := map[string]string{
		"timestamp": strconv.FormatInt(time.Now().Unix(), 10),
	}
	if c.cfg.Folder != "" {
		params["folder"] = c.cfg.Folder
	}
	form := map[string]string{
		"file":      uri,
		"api_key":   c.cfg.APIKey,
		"signature": Sign(params, c.cfg.APISecret),
	}
	for k, v := range params {
		form[k] = v
	}

	var out uploadResponse
	resp, err := c.client.R().
		SetContext(ctx).
		SetFormData(form).
		SetResult(&out).
		SetError(&out).
		Post(fmt.Sprintf("/v1_1/%s/image/upload", c.cfg.CloudName))
	if err != nil {
		return nil, fmt.Errorf("%w: image upload failed: %v", model.ErrUpstream, err)
	}
	if resp.IsError() {
		c.log.Warn().Int("status", resp.StatusCode()).Str("error", out.Error.Message).Msg("image upload rejected")
		return nil, fmt.Errorf("%w: image upload rejected (%d): %s", model.ErrUpstream, resp.StatusCode(), out.Error.Message)
	}
	return &Asset{URL: out.SecureURL, ExternalID: out.PublicID}, nil
}

func (c *Cloudinary) Delete(ctx context.Context, externalID string) error {
	if externalID == "" {
		return nil
	}
	if c.cfg.CloudName == "" || c.cfg.APIKey == "" || c.cfg.APISecret == "" {
		return fmt.Errorf("%w: media host credentials are not configured", model.ErrUpstream)
	}
	params := map[string]string{
		"public_id": externalID,
		"timestamp": strconv.FormatInt(time.Now().Unix(), 10),
	}
	form := map[string]string{
		"api_key":   c.cfg.APIKey,
		"signature": Sign(params, c.cfg.APISecret),
	}
	for k, v := range params {
		form[k] = v
	}

	var out destroyResponse
	resp, err := c.client.R().
		SetContext(ctx).
		SetFormData(form).
		SetResult(&out).
		Post(fmt.Sprintf("/v1_1/%s/image/destroy", c.cfg.CloudName))
	if err != nil {
		return fmt.Errorf("%w: image delete failed: %v", model.ErrUpstream, err)
	}
	if resp.IsError() {
		return fmt.Errorf("%w: image delete rejected (%d)", model.ErrUpstream, resp.StatusCode())
	}
	if out.Result != "ok" && out.Result != "not found" {
		return fmt.Errorf("%w: image delete returned %q", model.ErrUpstream, out.Result)
	}
	return nil
}

// Sign produces the request signature: the SHA-1 hex digest of the
// alphabetically sorted parameters joined as key=value pairs with the API
// secret appended. file, api_key, and the signature itself are never signed.
func Sign(params map[string]string, secret string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+params[k])
	}
	sum := sha1.Sum([]byte(strings.Join(pairs, "&") + secret))
	return hex.EncodeToString(sum[:])
}
