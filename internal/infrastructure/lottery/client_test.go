package lottery_test

import (
	"bytes"
	"compress/gzip"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"scratch_tracker/internal/infrastructure/lottery"
)

func TestClientFetchListing(t *testing.T) {
	rq := require.New(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rq.NotEmpty(r.Header.Get("User-Agent"))
		_, _ = w.Write([]byte("<html>listing</html>"))
	}))
	defer srv.Close()

	client := lottery.NewClient(srv.URL, time.Second, 0)

	body, err := client.FetchListing(context.Background())
	rq.NoError(err)
	rq.Equal("<html>listing</html>", body)
}

func TestClientFetchDetailGzip(t *testing.T) {
	rq := require.New(t)

	var buf bytes.Buffer

	gz := gzip.NewWriter(&buf)
	_, _ = gz.Write([]byte("<html>detail</html>"))
	rq.NoError(gz.Close())

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Encoding", "gzip")
		_, _ = w.Write(buf.Bytes())
	}))
	defer srv.Close()

	client := lottery.NewClient(srv.URL, time.Second, 0)

	body, err := client.FetchDetail(context.Background(), srv.URL+"/scratchers/714")
	rq.NoError(err)
	rq.Equal("<html>detail</html>", body)
}

func TestClientFetchStatusError(t *testing.T) {
	rq := require.New(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := lottery.NewClient(srv.URL, time.Second, 0)

	_, err := client.FetchListing(context.Background())

	var statusErr *lottery.StatusError

	rq.ErrorAs(err, &statusErr)
	rq.Equal(http.StatusServiceUnavailable, statusErr.StatusCode)
}

func TestClientFetchTimeout(t *testing.T) {
	rq := require.New(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
		_, _ = w.Write([]byte("late"))
	}))
	defer srv.Close()

	client := lottery.NewClient(srv.URL, 20*time.Millisecond, 0)

	_, err := client.FetchListing(context.Background())
	rq.Error(err)
}
