// Copyright (c) 2020 - for information on the respective copyright owner
// see the NOTICE file and/or the repository at
// https://github.com/direct-state-transfer/escrow-sdk-go
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package rest implements the transport to the transaction building backend over HTTP with JSON payloads.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"

	escrowsdk "github.com/direct-state-transfer/escrow-sdk-go"
	"github.com/direct-state-transfer/escrow-sdk-go/log"
)

const (
	// APIKeyHeader is the header carrying the api key in every request.
	APIKeyHeader = "x-api-key"

	// DefaultTimeout is used when the configured timeout is zero.
	DefaultTimeout = 30 * time.Second

	maxBodyInError = 200
	maxBodyRead    = 10 << 20
)

// Config defines the parameters for connecting to the backend.
type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// Client implements escrowsdk.Requester.
type Client struct {
	log.Logger

	baseURL *url.URL
	apiKey  string
	client  *http.Client
}

// NewClient returns a client for the backend at the configured base url.
func NewClient(cfg Config) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil {
		return nil, errors.Wrap(err, "parsing base url")
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, errors.Errorf("base url %q should use http or https scheme", cfg.BaseURL)
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		Logger:  log.NewLoggerWithField("component", "rest"),
		baseURL: base,
		apiKey:  cfg.APIKey,
		client:  &http.Client{Timeout: timeout},
	}, nil
}

// Do sends the request and decodes the JSON response into out, if out is not nil.
//
// Non 2xx responses are returned as ErrRemoteRejected, transport failures as ErrRemoteUnreachable and
// responses that cannot be decoded as ErrMalformedResponse.
func (c *Client) Do(ctx context.Context, req escrowsdk.Request, out interface{}) error {
	c.WithField("method", req.Method).WithField("path", req.Path).Debug("Sending request")

	httpReq, err := c.newHTTPRequest(ctx, req)
	if err != nil {
		return escrowsdk.NewErrUnknownInternal(err)
	}
	resp, err := c.client.Do(httpReq)
	if err != nil {
		c.WithField("path", req.Path).Error("Request failed: ", err)
		return escrowsdk.NewErrRemoteUnreachable(req.Method, req.Path, err)
	}
	defer resp.Body.Close() // nolint: errcheck

	return c.decodeJSONResponse(req, resp, out)
}

func (c *Client) newHTTPRequest(ctx context.Context, req escrowsdk.Request) (*http.Request, error) {
	var body io.Reader
	if req.Body != nil {
		jsonData, err := json.Marshal(req.Body)
		if err != nil {
			return nil, errors.Wrap(err, "encoding request body")
		}
		body = bytes.NewReader(jsonData)
	}

	ref, err := url.Parse(req.Path)
	if err != nil {
		return nil, errors.Wrap(err, "parsing request path")
	}
	target := *c.baseURL
	target.Path = c.baseURL.Path + ref.Path
	target.RawQuery = ref.RawQuery

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, target.String(), body)
	if err != nil {
		return nil, errors.Wrap(err, "creating request")
	}
	httpReq.Header.Set("Accept", "application/json")
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		httpReq.Header.Set(APIKeyHeader, c.apiKey)
	}
	return httpReq, nil
}

// decodeJSONResponse reads the response body, checks HTTP status, and decodes JSON.
func (c *Client) decodeJSONResponse(req escrowsdk.Request, resp *http.Response, out interface{}) error {
	bodyBytes, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyRead))
	if err != nil {
		return escrowsdk.NewErrRemoteUnreachable(req.Method, req.Path, errors.Wrap(err, "reading response body"))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		bodyStr := truncate(string(bodyBytes))
		if bodyStr == "" {
			bodyStr = resp.Status
		}
		c.WithField("path", req.Path).Errorf("Request rejected with status %d: %s", resp.StatusCode, bodyStr)
		return escrowsdk.NewErrRemoteRejected(req.Method, req.Path, resp.StatusCode, bodyStr)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(bodyBytes, out); err != nil {
		c.WithField("path", req.Path).Error("Decoding response: ", err)
		return escrowsdk.NewErrMalformedResponse(req.Method, req.Path,
			errors.Wrapf(err, "body: %s", truncate(string(bodyBytes))).Error())
	}
	return nil
}

func truncate(s string) string {
	if len(s) > maxBodyInError {
		return s[:maxBodyInError] + "..."
	}
	return s
}
