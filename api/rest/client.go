package rest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Nikolay-Chillev/ghrepo/api/header"
	"github.com/Nikolay-Chillev/ghrepo/version"
)

// githubMediaType is the stable v3 media type GitHub asks clients to request.
const githubMediaType = "application/vnd.github.v3+json"

type Client struct {
	baseURL *url.URL
	token   string
	client  *http.Client
}

func New(host, endpoint, token string, httpClient *http.Client) *Client {
	// Ensure a non-empty endpoint ends with a slash so relative
	// references resolve underneath it
	if endpoint != "" && !strings.HasSuffix(endpoint, "/") {
		endpoint += "/"
	}

	u, err := url.Parse(host)
	if err != nil {
		// Callers validate the host before constructing a client; an
		// unparseable host here still must not panic.
		u = &url.URL{}
	}
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}

	if httpClient == nil {
		httpClient = &http.Client{
			Timeout: 10 * time.Second,
		}
	}

	return &Client{
		baseURL: u.ResolveReference(&url.URL{Path: endpoint}),
		token:   token,
		client:  httpClient,
	}
}

func (c *Client) NewRequest(method string, u *url.URL, payload interface{}) (req *http.Request, err error) {
	var r io.Reader
	if payload != nil {
		buf := &bytes.Buffer{}
		r = buf
		err = json.NewEncoder(buf).Encode(payload)
		if err != nil {
			return nil, err
		}
	}

	req, err = http.NewRequest(method, c.baseURL.ResolveReference(u).String(), r)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Authorization", "token "+c.token)
	req.Header.Set("Accept", githubMediaType)
	req.Header.Set("User-Agent", version.UserAgent())
	commandStr := header.GetCommandStr()
	if commandStr != "" {
		req.Header.Set("Ghrepo-Cli-Command", commandStr)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return req, nil
}

// DoRequest sends req and decodes the JSON response body into resp when resp
// is non-nil. Responses with a status of 300 or above come back as an
// *HTTPError carrying the status and the message field of the error body.
func (c *Client) DoRequest(req *http.Request, resp interface{}) (statusCode int, err error) {
	httpResp, err := c.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode >= 300 {
		httpError := struct {
			Message string `json:"message"`
		}{}
		// A failed decode still yields an HTTPError; some responses
		// (e.g. 404 from a proxy) carry no JSON body at all.
		_ = json.NewDecoder(httpResp.Body).Decode(&httpError)
		return httpResp.StatusCode, &HTTPError{Code: httpResp.StatusCode, Message: httpError.Message}
	}

	if resp != nil {
		err = json.NewDecoder(httpResp.Body).Decode(resp)
		if err != nil {
			return httpResp.StatusCode, err
		}
	}
	return httpResp.StatusCode, nil
}

type HTTPError struct {
	Code    int
	Message string
}

func (e *HTTPError) Error() string {
	if e.Code == 0 {
		e.Code = http.StatusInternalServerError
	}
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("response %d (%s)", e.Code, http.StatusText(e.Code))
}
