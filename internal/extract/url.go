package extract

import (
	"context"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"mvdan.cc/xurls/v2"
)

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) " +
	"AppleWebKit/537.36 (KHTML, like Gecko) Chrome/127.0.0.0 Safari/537.36"

// FromURL fetches a page and extracts its readable text: script, style
// and noscript nodes are dropped, and an <article> element is preferred
// over the full body when present. Any failure yields an empty string.
func (e *Extractor) FromURL(ctx context.Context, rawURL string) string {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return ""
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		e.log.WarnContext(ctx, "Failed to create request",
			"error", err,
			"url", rawURL)

		return ""
	}

	req.Header.Set("User-Agent", userAgent)

	resp, err := e.client.Do(req)
	if err != nil {
		e.log.WarnContext(ctx, "Failed to fetch URL",
			"error", err,
			"url", rawURL)

		return ""
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			e.log.WarnContext(ctx, "Failed to close response body",
				"error", closeErr,
				"url", rawURL)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		e.log.WarnContext(ctx, "Unexpected status fetching URL",
			"status", resp.StatusCode,
			"url", rawURL)

		return ""
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		e.log.WarnContext(ctx, "Failed to parse page",
			"error", err,
			"url", rawURL)

		return ""
	}

	doc.Find("script, style, noscript").Remove()

	sel := doc.Find("article")
	if sel.Length() == 0 {
		sel = doc.Find("body")
	}

	return strings.Join(strings.Fields(sel.Text()), " ")
}

// FromURLs fetches every URL and joins the non-empty article texts,
// capped like FromFiles.
func (e *Extractor) FromURLs(ctx context.Context, urls []string) string {
	var chunks []string

	for _, u := range urls {
		if chunk := e.FromURL(ctx, u); chunk != "" {
			chunks = append(chunks, chunk)
		}
	}

	merged := strings.Join(chunks, "\n\n")

	return truncateRunes(merged, mergedTextMaxChars)
}

// FindURLs pulls https URLs out of pasted free text, deduplicated in
// first-seen order.
func FindURLs(text string) []string {
	httpsURLRe, err := xurls.StrictMatchingScheme("https://")
	if err != nil {
		return nil
	}

	matches := httpsURLRe.FindAllString(text, -1)

	var urls []string
	seen := make(map[string]struct{}, len(matches))

	for _, m := range matches {
		trimmed := strings.TrimSpace(m)
		if _, ok := seen[trimmed]; ok {
			continue
		}

		seen[trimmed] = struct{}{}
		urls = append(urls, trimmed)
	}

	return urls
}
