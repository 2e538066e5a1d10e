// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package upload

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// A Dashboard uploads to a dashboard server that takes a form field
// "data" holding a JSON object with keys "master", "bot", "test",
// "revision" and "benches", where benches is "name:value,...".
type Dashboard struct {
	URL string

	// Client is the HTTP client to use. If nil, http.DefaultClient is used.
	Client *http.Client
}

type dashboardData struct {
	Master   string `json:"master"`
	Bot      string `json:"bot"`
	Test     string `json:"test"`
	Revision int    `json:"revision"`
	Benches  string `json:"benches"`
}

func (d *Dashboard) Upload(ctx context.Context, p *Payload) error {
	benches := make([]string, len(p.Benches))
	for i, b := range p.Benches {
		benches[i] = fmt.Sprintf("%s:%.2f", b.Name, b.Value)
	}
	js, err := json.Marshal(&dashboardData{p.Master, p.Bot, p.Test, p.Revision, strings.Join(benches, ",")})
	if err != nil {
		return err
	}
	form := url.Values{"data": {string(js)}}
	req, err := http.NewRequestWithContext(ctx, "POST", d.URL, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	hc := d.Client
	if hc == nil {
		hc = http.DefaultClient
	}
	resp, err := hc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s: %s", resp.Status, bytes.TrimSpace(body))
	}
	return nil
}

const emailScope = "https://www.googleapis.com/auth/userinfo.email"

// AuthClient returns an HTTP client that authenticates requests with
// the application default Google credentials.
func AuthClient(ctx context.Context) (*http.Client, error) {
	ts, err := google.DefaultTokenSource(ctx, emailScope)
	if err != nil {
		return nil, fmt.Errorf("finding credentials: %w", err)
	}
	return oauth2.NewClient(ctx, ts), nil
}
