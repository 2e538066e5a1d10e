// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package upload

import (
	"context"
	"fmt"
	"time"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	"cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
)

// An Influx uploads to an InfluxDB bucket. Each payload becomes one
// point of measurement "bench", tagged with master, bot and config,
// with one field per bench and an integer "revision" field.
type Influx struct {
	Client      influxdb2.Client
	Org, Bucket string

	// Now returns the timestamp of written points. If nil, time.Now
	// is used.
	Now func() time.Time
}

// NewInflux returns an Influx writing to the server at serverURL.
func NewInflux(serverURL, token, org, bucket string) *Influx {
	return &Influx{
		Client: influxdb2.NewClient(serverURL, token),
		Org:    org,
		Bucket: bucket,
	}
}

func (u *Influx) Upload(ctx context.Context, p *Payload) error {
	tags := map[string]string{
		"master": p.Master,
		"bot":    p.Bot,
		"config": p.Test,
	}
	fields := map[string]interface{}{"revision": int64(p.Revision)}
	for _, b := range p.Benches {
		fields[b.Name] = b.Value
	}
	now := time.Now
	if u.Now != nil {
		now = u.Now
	}
	pt := influxdb2.NewPoint("bench", tags, fields, now())
	if err := u.Client.WriteAPIBlocking(u.Org, u.Bucket).WritePoint(ctx, pt); err != nil {
		return fmt.Errorf("writing to influx: %w", err)
	}
	return nil
}

// Close releases the resources of the client.
func (u *Influx) Close() {
	u.Client.Close()
}

// InfluxToken reads an InfluxDB token from Google Secret Manager.
// secret is a secret version resource name, such as
// "projects/p/secrets/influx-token/versions/latest".
func InfluxToken(ctx context.Context, secret string) (string, error) {
	client, err := secretmanager.NewClient(ctx)
	if err != nil {
		return "", fmt.Errorf("creating secret manager client: %w", err)
	}
	defer client.Close()

	resp, err := client.AccessSecretVersion(ctx, &secretmanagerpb.AccessSecretVersionRequest{Name: secret})
	if err != nil {
		return "", fmt.Errorf("reading secret %s: %w", secret, err)
	}
	return string(resp.Payload.Data), nil
}
