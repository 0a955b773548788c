// Package preview resolves Open Graph metadata for link previews. Every
// failure in here is per-item recoverable: publishers degrade to a plain
// text post instead of aborting.
package preview

import (
	"net/http"

	"github.com/PuerkitoBio/goquery"
	"github.com/pkg/errors"

	"github.com/boardcast/boardcast/collector"
)

// Metadata is the subset of OG tags used to build a rich link preview.
type Metadata struct {
	ImageUrl    string
	Title       string
	Description string
}

// Resolver produces optional preview metadata for a URL.
type Resolver interface {
	Resolve(url string) (*Metadata, error)
}

// OgResolver scans a page's meta tags for og:image, og:title and
// og:description. The first matching tag wins per property.
type OgResolver struct {
	Http collector.Getter
}

func NewOgResolver(client collector.Getter) *OgResolver {
	return &OgResolver{Http: client}
}

func (r *OgResolver) Resolve(url string) (*Metadata, error) {
	res, err := r.Http.Get(url)
	if err != nil {
		return nil, errors.Wrapf(err, "fail to fetch page %s", url)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, errors.Errorf("page %s returned status %d", url, res.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(res.Body)
	if err != nil {
		return nil, errors.Wrapf(err, "fail to parse page %s", url)
	}

	meta := &Metadata{
		ImageUrl:    ogContent(doc, "og:image"),
		Title:       ogContent(doc, "og:title"),
		Description: ogContent(doc, "og:description"),
	}
	return meta, nil
}

// ogContent is the two-stage match: locate the first meta tag carrying the
// property, then read its content attribute. Attribute values come out of
// the parser with entities already decoded.
func ogContent(doc *goquery.Document, property string) string {
	content, _ := doc.Find(`meta[property="` + property + `"]`).First().Attr("content")
	return content
}
