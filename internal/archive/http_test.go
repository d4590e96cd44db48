// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package archive

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/tsasn1/pkg/types"
)

func TestHTTPFetcher_Fetch(t *testing.T) {
	var gotPath, gotUA string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotUA = r.Header.Get("User-Agent")
		if r.URL.Path != "/ftp/Specs/archive/38_series/38.413/38413-f23.zip" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte("zip-bytes"))
	}))
	defer ts.Close()

	h := NewHTTPFetcher(ts.Client(), types.ArchiveConfig{
		HTTPBase:  ts.URL + "/ftp/",
		UserAgent: "tsasn1/test",
	})

	data, err := h.Fetch(context.Background(), "38413", "f23")
	require.NoError(t, err)
	assert.Equal(t, "zip-bytes", string(data))
	assert.Equal(t, "/ftp/Specs/archive/38_series/38.413/38413-f23.zip", gotPath)
	assert.Equal(t, "tsasn1/test", gotUA)

	_, err = h.Fetch(context.Background(), "38413", "g00")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestHTTPFetcher_ServerError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer ts.Close()

	h := NewHTTPFetcher(ts.Client(), types.ArchiveConfig{HTTPBase: ts.URL})
	_, err := h.Fetch(context.Background(), "38413", "f23")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 500")
}

func TestHTTPFetcher_Listing(t *testing.T) {
	h := NewHTTPFetcher(http.DefaultClient, types.ArchiveConfig{})
	_, err := h.Listing(context.Background(), "38413")
	assert.ErrorIs(t, err, ErrListingUnsupported)
}

func TestHTTPFetcher_DefaultBase(t *testing.T) {
	h := NewHTTPFetcher(http.DefaultClient, types.ArchiveConfig{})
	assert.Equal(t, "https://www.3gpp.org/ftp/Specs/archive/38_series/38.413/38413-f23.zip", h.URL("38413", "f23"))
}

func TestNewFetcher(t *testing.T) {
	f, err := NewFetcher(types.ArchiveConfig{})
	require.NoError(t, err)
	assert.IsType(t, &FTPFetcher{}, f)

	f, err = NewFetcher(types.ArchiveConfig{Transport: types.TransportHTTP})
	require.NoError(t, err)
	assert.IsType(t, &HTTPFetcher{}, f)

	_, err = NewFetcher(types.ArchiveConfig{Transport: "gopher"})
	assert.Error(t, err)
}
