package templatestore

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientGet(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/api/templates/modern":
			_, _ = w.Write([]byte(`{"success":true,"data":{"id":"modern","html":"<p>{{full_name}}</p>","metadata":{"name":"Modern","features":["a"]}}}`))
		case "/api/templates/disabled":
			_, _ = w.Write([]byte(`{"success":false,"message":"template disabled"}`))
		default:
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"success":false,"message":"not found"}`))
		}
	}))
	defer srv.Close()

	c := NewClient(srv.URL, ClientOptions{Timeout: time.Second}, nil)

	tpl, err := c.Get(context.Background(), "modern")
	require.NoError(t, err)
	assert.Equal(t, "modern", tpl.ID)
	assert.Equal(t, "<p>{{full_name}}</p>", tpl.HTML)
	assert.Equal(t, "Modern", tpl.Metadata.Name)

	_, err = c.Get(context.Background(), "disabled")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "template disabled")

	_, err = c.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrTemplateNotFound)
}

func TestClientRetriesServerErrors(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			_, _ = w.Write([]byte(`{"success":false,"message":"upstream"}`))
			return
		}
		_, _ = w.Write([]byte(`{"success":true,"data":{"id":"classic","html":"x"}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, ClientOptions{Timeout: time.Second, Retries: 3, RetryWait: time.Millisecond}, nil)
	tpl, err := c.Get(context.Background(), "classic")
	require.NoError(t, err)
	assert.Equal(t, "classic", tpl.ID)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestClientTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	c := NewClient(url, ClientOptions{Timeout: 200 * time.Millisecond}, nil)
	_, err := c.Get(context.Background(), "modern")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrTemplateNotFound)
}

func TestClientList(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"data":[{"id":"a","html":"1"},{"id":"b","html":"2"}]}`))
	}))
	defer srv.Close()

	list, err := NewClient(srv.URL, ClientOptions{}, nil).List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "b", list[1].ID)
}
