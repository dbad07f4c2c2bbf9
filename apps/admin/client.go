package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/bouncebacklearning/backend/core/admin"
	"github.com/bouncebacklearning/backend/core/feedback"
)

// apiClient talks to a running API. The session cookie set on login is kept in its jar.
type apiClient struct {
	baseURL string
	http    *http.Client
}

func newAPIClient(baseURL string) (*apiClient, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, errors.Wrap(err, "creating cookie jar")
	}
	return &apiClient{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		http:    &http.Client{Jar: jar, Timeout: 30 * time.Second},
	}, nil
}

// apiError is a non-2xx API response.
type apiError struct {
	Code int
	Body string
}

func (e *apiError) Error() string {
	var msg struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal([]byte(e.Body), &msg); err == nil && msg.Error != "" {
		return fmt.Sprintf("%d: %s", e.Code, msg.Error)
	}
	return fmt.Sprintf("%d: %s", e.Code, strings.TrimSpace(e.Body))
}

func (c *apiClient) do(method, path string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return errors.Wrap(err, "encoding request")
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, c.baseURL+path, body)
	if err != nil {
		return errors.Wrap(err, "creating request")
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return errors.Wrapf(err, "%s %s", method, path)
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrap(err, "reading response")
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &apiError{Code: resp.StatusCode, Body: string(b)}
	}
	if out != nil {
		if err = json.Unmarshal(b, out); err != nil {
			return errors.Wrap(err, "decoding response")
		}
	}
	return nil
}

func (c *apiClient) login(username, password string) error {
	creds := map[string]string{"username": username, "password": password}
	return c.do(http.MethodPost, "/api/admin/login", creds, nil)
}

func (c *apiClient) logout() error {
	return c.do(http.MethodPost, "/api/admin/logout", nil, nil)
}

func (c *apiClient) stats() (admin.Stats, error) {
	var stats admin.Stats
	err := c.do(http.MethodGet, "/api/admin/stats", nil, &stats)
	return stats, err
}

func (c *apiClient) feedback() ([]feedback.Feedback, error) {
	var fbs []feedback.Feedback
	err := c.do(http.MethodGet, "/api/feedback", nil, &fbs)
	return fbs, err
}

// remove deletes the resource at path and returns the API's confirmation message.
func (c *apiClient) remove(path string) (string, error) {
	var resp struct {
		Message string `json:"message"`
	}
	err := c.do(http.MethodDelete, path, nil, &resp)
	return resp.Message, err
}
