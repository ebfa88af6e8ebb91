package exporter

import (
	"fmt"
	"html"
	"io"
	"net/url"
	"strings"

	"github.com/nikbrunner/pathmark/internal/model"
)

// FileURL returns the file:// URL for an absolute path.
func FileURL(path string) string {
	u := url.URL{Scheme: "file", Path: path}
	return u.String()
}

// ExportHTML renders bookmarks in Netscape bookmark HTML format, one
// file:// link per bookmark with its description in a DD line.
func ExportHTML(bookmarks []model.Bookmark) string {
	var b strings.Builder

	// Header
	b.WriteString("<!DOCTYPE NETSCAPE-Bookmark-file-1>\n")
	b.WriteString("<META HTTP-EQUIV=\"Content-Type\" CONTENT=\"text/html; charset=UTF-8\">\n")
	b.WriteString("<TITLE>Bookmarks</TITLE>\n")
	b.WriteString("<H1>Bookmarks</H1>\n")
	b.WriteString("<DL><p>\n")

	prefix := "    "
	for _, bookmark := range bookmarks {
		fmt.Fprintf(&b,
			"%s<DT><A HREF=\"%s\" ADD_DATE=\"%d\">%s</A>\n",
			prefix,
			html.EscapeString(FileURL(bookmark.Path)),
			bookmark.CreatedAt.Unix(),
			html.EscapeString(bookmark.Name),
		)
		if bookmark.Description != "" {
			fmt.Fprintf(&b, "%s<DD>%s\n", prefix, html.EscapeString(bookmark.Description))
		}
	}

	// Footer
	b.WriteString("</DL><p>\n")

	return b.String()
}

// Write renders bookmarks to w.
func Write(w io.Writer, bookmarks []model.Bookmark) error {
	_, err := io.WriteString(w, ExportHTML(bookmarks))
	return err
}
