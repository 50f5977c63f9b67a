package yahoo

import (
	"bufio"
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httputil"
	"os"
	"path/filepath"

	"github.com/tohlinger/depot/date"
)

// diskCache caches HTTP responses on disk. The cache key embeds the
// current day, so entries expire daily and a rerun on the same day never
// hits the network twice for the same chart.
type diskCache struct {
	base http.RoundTripper
}

func cacheFile(req *http.Request) string {
	key := fmt.Sprintf("%s %s %s", date.Today(), req.Method, req.URL.String())
	return filepath.Join(os.TempDir(), fmt.Sprintf("yahoo-%x", sha1.Sum([]byte(key))))
}

func (c *diskCache) RoundTrip(req *http.Request) (*http.Response, error) {
	file := cacheFile(req)
	if content, err := os.ReadFile(file); err == nil {
		if resp, err := http.ReadResponse(bufio.NewReader(bytes.NewReader(content)), req); err == nil {
			return resp, nil
		}
	}

	resp, err := c.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	log.Printf("%v %v%v %v", req.Method, req.URL.Host, req.URL.Path, resp.Status)
	if resp.StatusCode >= 300 {
		return resp, nil
	}

	content, err := httputil.DumpResponse(resp, true)
	if err != nil {
		return resp, nil
	}
	if err := os.WriteFile(file, content, 0o600); err != nil {
		log.Printf("cache write err (ignored): %v", err)
	}
	return resp, nil
}

// newDailyCachingClient returns an http.Client whose responses are cached
// on disk until the end of the day.
func newDailyCachingClient() *http.Client {
	return &http.Client{Transport: &diskCache{base: http.DefaultTransport}}
}

// jwget performs an HTTP GET on addr and unmarshals the JSON response
// body into data.
func jwget(ctx context.Context, client *http.Client, addr string, data any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return err
	}
	// Yahoo rejects the default Go user agent.
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; depot)")

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("cannot http GET %v%v: %v", req.URL.Host, req.URL.Path, resp.Status)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	return json.Unmarshal(body, data)
}
