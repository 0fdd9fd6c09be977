/*
 * Copyright 2025 Carver Automation Corporation.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package legacy

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carverauto/ifcompare/pkg/logger"
	"github.com/carverauto/ifcompare/pkg/models"
)

const interfaceList = `{"children": [
  {"name": "lo0", "uri": "/snmp/r1/interface/lo0", "ifAlias": "x"},
  {"name": "xe-0", "uri": "/snmp/r1/interface/xe-0", "ifAlias": ""},
  {"name": "xe-1", "uri": "/snmp/r1/interface/xe-1", "ifAlias": "wan"},
  {"name": "xe-2/0/0", "uri": "/snmp/r1/interface/xe-2_0_0", "ifAlias": "peering"},
  {"name": "lo0.16384", "uri": "/snmp/r1/interface/lo0.16384", "ifAlias": "internal"}
]}`

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := NewClient(&models.LegacyConfig{
		BaseURL:        srv.URL + "/snmp/",
		IgnorePrefixes: []string{"lo0"},
		Timeout:        models.DefaultLegacyTimeout,
	}, nil, logger.NewTestLogger())
	require.NoError(t, err)

	return client
}

func TestFilterInterfaces(t *testing.T) {
	descriptors := []models.InterfaceDescriptor{
		{Name: "lo0", Alias: "x", URI: "/snmp/r1/interface/lo0"},
		{Name: "xe-0", Alias: "", URI: "/snmp/r1/interface/xe-0"},
		{Name: "xe-1", Alias: "wan", URI: "/snmp/r1/interface/xe-1"},
	}

	assert.Equal(t, []string{"xe-1"}, FilterInterfaces(descriptors, []string{"lo0"}))
	assert.Equal(t, []string{"lo0", "xe-1"}, FilterInterfaces(descriptors, nil))
	assert.Empty(t, FilterInterfaces(nil, []string{"lo0"}))
}

func TestListInterfaces(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/snmp/r1/interface/", r.URL.Path)
		assert.Equal(t, "ifcompare/dev", r.UserAgent())
		_, _ = w.Write([]byte(interfaceList))
	})

	ifaces, err := client.ListInterfaces(context.Background(), "r1")
	require.NoError(t, err)
	assert.Equal(t, []string{"xe-1", "xe-2_0_0"}, ifaces)
}

func TestListInterfacesEmpty(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"children": []}`))
	})

	ifaces, err := client.ListInterfaces(context.Background(), "r1")
	require.NoError(t, err)
	assert.Empty(t, ifaces)
}

func TestListInterfacesErrors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "server error",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
		},
		{
			name: "not found",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusNotFound)
			},
		},
		{
			name: "garbage body",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte("<html>"))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, tt.handler)

			_, err := client.ListInterfaces(context.Background(), "r1")
			require.Error(t, err)
			assert.True(t, errors.Is(err, models.ErrTransport))
		})
	}
}

func TestFetchSeries(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/snmp/r1/interface/xe-1/out", r.URL.Path)
		assert.Equal(t, "1000", r.URL.Query().Get("begin"))
		assert.Equal(t, "4000", r.URL.Query().Get("end"))
		_, _ = w.Write([]byte(`{"agg": "30", "data": [[1000, 10.5], [1030, null], [1060, 12], ["bad"]]}`))
	})

	series, err := client.FetchSeries(context.Background(), &models.SeriesRequest{
		Device:    "r1",
		Interface: "xe-1",
		Direction: models.DirectionOut,
		Window:    models.Window{Begin: 1000, End: 4000},
	})
	require.NoError(t, err)

	assert.Equal(t, SourceName, series.Source)
	assert.Contains(t, string(series.Raw), `"agg": "30"`)
	require.Len(t, series.Points, 3)
	assert.Equal(t, int64(1000), series.Points[0].Timestamp)
	assert.InDelta(t, 10.5, *series.Points[0].Value, 1e-9)
	assert.Nil(t, series.Points[1].Value)
	assert.Equal(t, int64(1060), series.Points[2].Timestamp)
}

func TestDeviceNameIsPathEscaped(t *testing.T) {
	var paths []string

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.EscapedPath())

		switch r.URL.Path {
		case "/snmp/core 1?x/interface/":
			_, _ = w.Write([]byte(interfaceList))
		case "/snmp/core 1?x/interface/xe-1/in":
			_, _ = w.Write([]byte(`{"data": [[1000, 1]]}`))
		default:
			http.NotFound(w, r)
		}
	})

	ifaces, err := client.ListInterfaces(context.Background(), "core 1?x")
	require.NoError(t, err)
	assert.Contains(t, ifaces, "xe-1")

	series, err := client.FetchSeries(context.Background(), &models.SeriesRequest{
		Device:    "core 1?x",
		Interface: "xe-1",
		Direction: models.DirectionIn,
		Window:    models.Window{Begin: 1000, End: 4000},
	})
	require.NoError(t, err)
	require.Len(t, series.Points, 1)

	assert.Equal(t, []string{
		"/snmp/core%201%3Fx/interface/",
		"/snmp/core%201%3Fx/interface/xe-1/in",
	}, paths)
}

func TestFetchSeriesNotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		http.NotFound(w, nil)
	})

	_, err := client.FetchSeries(context.Background(), &models.SeriesRequest{
		Device: "r1", Interface: "xe-1", Direction: models.DirectionIn,
		Window: models.Window{Begin: 1, End: 2},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrNoData))
	assert.False(t, errors.Is(err, models.ErrTransport))
}

func TestFetchSeriesServerError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := client.FetchSeries(context.Background(), &models.SeriesRequest{
		Device: "r1", Interface: "xe-1", Direction: models.DirectionIn,
		Window: models.Window{Begin: 1, End: 2},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrTransport))
	assert.Contains(t, err.Error(), "502")
}

func TestFetchSeriesRejectsUnknownDirection(t *testing.T) {
	client := newTestClient(t, func(_ http.ResponseWriter, _ *http.Request) {
		t.Fatal("no request expected")
	})

	_, err := client.FetchSeries(context.Background(), &models.SeriesRequest{Direction: "sideways"})
	require.Error(t, err)
}

func TestNewClientRequiresBaseURL(t *testing.T) {
	_, err := NewClient(&models.LegacyConfig{}, nil, logger.NewTestLogger())
	require.Error(t, err)
}

func TestParsePointsWithoutData(t *testing.T) {
	assert.Nil(t, ParsePoints([]byte(`{"children": []}`)))
	assert.Nil(t, ParsePoints([]byte(`{"begin_time": 1000, "samples": [[1000, 42]]}`)))
	assert.Nil(t, ParsePoints([]byte(`{"data": null}`)))
	assert.Nil(t, ParsePoints([]byte(`[1, 2]`)))

	empty := ParsePoints([]byte(`{"data": []}`))
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}
