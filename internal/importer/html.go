package importer

import (
	"errors"
	"fmt"
	"io"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/nikbrunner/pathmark/internal/model"
	"github.com/nikbrunner/pathmark/internal/storage"
	"golang.org/x/net/html"
)

// Entry is one importable link found in a bookmark file.
type Entry struct {
	Name        string
	Path        string
	Description string
	CreatedAt   time.Time // zero when the file has no ADD_DATE
}

// ParseHTMLBookmarks parses Netscape bookmark HTML and returns the entries
// that point at local paths: file:// URLs and bare absolute paths. Other
// links are counted in skipped.
func ParseHTMLBookmarks(r io.Reader) (entries []Entry, skipped int, err error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, 0, err
	}

	// The most recent entry, which a following DD describes. Folder headings
	// reset it so their descriptions are not misattributed.
	var last *Entry

	var parse func(*html.Node)
	parse = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch strings.ToLower(n.Data) {
			case "h3":
				last = nil
				return // Don't recurse into H3

			case "a":
				last = nil
				path, ok := localPath(getAttr(n, "href"))
				if !ok {
					skipped++
					return
				}

				entry := Entry{Name: getTextContent(n), Path: path}
				if addDate := getAttr(n, "add_date"); addDate != "" {
					if ts, err := strconv.ParseInt(addDate, 10, 64); err == nil {
						entry.CreatedAt = time.Unix(ts, 0)
					}
				}
				entries = append(entries, entry)
				last = &entries[len(entries)-1]
				return // Don't recurse into A

			case "dd":
				if last != nil {
					last.Description = ownText(n)
					last = nil
				}
			}
		}

		// Recurse into children
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			parse(c)
		}
	}

	parse(doc)
	return entries, skipped, nil
}

// localPath extracts a filesystem path from an href.
func localPath(href string) (string, bool) {
	href = strings.TrimSpace(href)
	if filepath.IsAbs(href) {
		return href, true
	}
	u, err := url.Parse(href)
	if err != nil || u.Scheme != "file" || u.Path == "" {
		return "", false
	}
	if u.Host != "" && u.Host != "localhost" {
		return "", false
	}
	return u.Path, true
}

// getTextContent returns the text content of a node.
func getTextContent(n *html.Node) string {
	var text strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			text.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return strings.TrimSpace(text.String())
}

// ownText returns the text directly under n, ignoring nested elements such
// as a DL that a lenient parse placed inside a DD.
func ownText(n *html.Node) string {
	var text strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			text.WriteString(c.Data)
		}
	}
	return strings.TrimSpace(text.String())
}

// getAttr returns the value of an attribute, case-insensitive.
func getAttr(n *html.Node, key string) string {
	key = strings.ToLower(key)
	for _, attr := range n.Attr {
		if strings.ToLower(attr.Key) == key {
			return attr.Val
		}
	}
	return ""
}

// Creator is the part of the store Import writes to.
type Creator interface {
	Create(b model.Bookmark) (model.Bookmark, error)
}

// Stats counts the outcome of an import.
type Stats struct {
	Added   int
	Skipped int // duplicates of existing paths
}

// Import creates a bookmark for every entry. Entries whose path is already
// bookmarked are skipped; any other store error aborts the import.
func Import(store Creator, entries []Entry) (Stats, error) {
	var stats Stats

	for _, e := range entries {
		b, err := model.NewBookmark(model.NewBookmarkParams{
			Name:        e.Name,
			Path:        e.Path,
			Description: e.Description,
		})
		if err != nil {
			return stats, fmt.Errorf("importing %q: %w", e.Path, err)
		}
		if !e.CreatedAt.IsZero() {
			b.CreatedAt = e.CreatedAt
		}

		if _, err := store.Create(b); err != nil {
			if errors.Is(err, storage.ErrDuplicatePath) {
				stats.Skipped++
				continue
			}
			return stats, fmt.Errorf("importing %q: %w", e.Path, err)
		}
		stats.Added++
	}

	return stats, nil
}
