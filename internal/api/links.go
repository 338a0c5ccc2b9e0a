package api

import (
	"fmt"
	"strings"

	"github.com/emrgen/wiki/internal/model"
	"github.com/gin-gonic/gin"
)

// linker builds absolute api urls from the scheme and host of a request.
type linker struct {
	base string
}

func newLinker(c *gin.Context) linker {
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	if proto := c.GetHeader("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}

	return linker{base: scheme + "://" + c.Request.Host}
}

func (l linker) api(segments ...any) string {
	parts := make([]string, len(segments))
	for i, s := range segments {
		parts[i] = fmt.Sprint(s)
	}

	return l.base + "/api/" + strings.Join(parts, "/") + "/"
}

func (l linker) user(id uint) string {
	return l.api("users", id)
}

func (l linker) group(id uint) string {
	return l.api("groups", id)
}

func (l linker) article(id uint) string {
	return l.api("articles", id)
}

func (l linker) articleRevision(articleID, id uint) string {
	return l.api("articles", articleID, "revisions", id)
}

func (l linker) attachment(articleID, id uint) string {
	return l.api("articles", articleID, "attachments", id)
}

// attachmentRevision resolves articles/{attachment.article}/attachments/{attachment}/revisions/{id}.
func (l linker) attachmentRevision(attachment *model.Attachment, id uint) *string {
	if attachment == nil {
		return nil
	}

	url := l.api("articles", attachment.ArticleID, "attachments", attachment.ID, "revisions", id)
	return &url
}

func (l linker) attachmentRevisionDownload(attachment *model.Attachment, id uint) *string {
	url := l.attachmentRevision(attachment, id)
	if url == nil {
		return nil
	}

	download := *url + "download/"
	return &download
}

func (l linker) urlPath(id uint) string {
	return l.api("urls", id)
}

// urlParent resolves urls/{parent}.
func (l linker) urlParent(path *model.URLPath) *string {
	if path.ParentID == nil {
		return nil
	}

	url := l.urlPath(*path.ParentID)
	return &url
}
