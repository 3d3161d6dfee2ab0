// Package fetch downloads published canvas-history datasets.
package fetch

import (
	"fmt"
	"io"
	stdlog "log"
	"net/http"
	"os"

	"github.com/hashicorp/go-retryablehttp"
)

// Download fetches url with retries and writes the body to dest,
// returning the number of bytes written. The file is stored exactly as
// served; gzipped datasets can be analyzed without unpacking.
func Download(url, dest string) (int64, error) {
	client := retryablehttp.NewClient()
	client.Logger = stdlog.New(io.Discard, "", 0)
	client.RetryMax = 5

	resp, err := client.Get(url)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("download failed with status code %d", resp.StatusCode)
	}

	out, err := os.Create(dest)
	if err != nil {
		return 0, err
	}
	n, err := io.Copy(out, resp.Body)
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	return n, err
}
