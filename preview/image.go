package preview

import (
	"io"
	"net/http"

	"github.com/pkg/errors"

	"github.com/boardcast/boardcast/collector"
)

// MaxImageBytes caps preview thumbnails; oversized images fall back to the
// configured default image.
const MaxImageBytes = 1000000

var ErrImageTooLarge = errors.New("image exceeds the maximum allowed size")

// FetchImage downloads an image for thumbnail upload, enforcing the size
// cap while reading so an oversized body is never held in memory whole.
func FetchImage(client collector.Getter, url string) ([]byte, error) {
	res, err := client.Get(url)
	if err != nil {
		return nil, errors.Wrapf(err, "fail to fetch image %s", url)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, errors.Errorf("image %s returned status %d", url, res.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(res.Body, MaxImageBytes+1))
	if err != nil {
		return nil, errors.Wrapf(err, "fail to read image %s", url)
	}
	if len(data) > MaxImageBytes {
		return nil, ErrImageTooLarge
	}
	return data, nil
}
