package api

import (
	"net/http"

	"github.com/emrgen/wiki/internal/service"
	"github.com/gin-gonic/gin"
)

func (h *Handler) listAttachments(c *gin.Context) {
	articleID, err := pathID(c, "id")
	if err != nil {
		abortWithError(c, err)
		return
	}

	page, err := parsePage(c, h.pageSize)
	if err != nil {
		abortWithError(c, err)
		return
	}

	attachments, total, err := h.services.Attachments.ListAttachments(c.Request.Context(), articleID, page.offset(), page.size)
	if err != nil {
		abortWithError(c, err)
		return
	}

	l := newLinker(c)
	results := make([]AttachmentView, 0, len(attachments))
	for _, a := range attachments {
		results = append(results, attachmentView(l, a))
	}

	resp, err := newPage(c, page, total, results)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// attachmentIDs reads the :id and :aid parameters.
func attachmentIDs(c *gin.Context) (uint, uint, bool) {
	articleID, err := pathID(c, "id")
	if err != nil {
		abortWithError(c, err)
		return 0, 0, false
	}
	attachmentID, err := pathID(c, "aid")
	if err != nil {
		abortWithError(c, err)
		return 0, 0, false
	}

	return articleID, attachmentID, true
}

func (h *Handler) getAttachment(c *gin.Context) {
	articleID, attachmentID, ok := attachmentIDs(c)
	if !ok {
		return
	}

	attachment, err := h.services.Attachments.GetAttachment(c.Request.Context(), articleID, attachmentID)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, attachmentView(newLinker(c), attachment))
}

func (h *Handler) downloadAttachment(c *gin.Context) {
	articleID, attachmentID, ok := attachmentIDs(c)
	if !ok {
		return
	}

	download, err := h.services.Attachments.Download(c.Request.Context(), articleID, attachmentID)
	if err != nil {
		abortWithError(c, err)
		return
	}

	serveDownload(c, download)
}

func (h *Handler) listAttachmentRevisions(c *gin.Context) {
	articleID, attachmentID, ok := attachmentIDs(c)
	if !ok {
		return
	}

	page, err := parsePage(c, h.pageSize)
	if err != nil {
		abortWithError(c, err)
		return
	}

	revisions, total, err := h.services.Attachments.ListRevisions(c.Request.Context(), articleID, attachmentID, page.offset(), page.size)
	if err != nil {
		abortWithError(c, err)
		return
	}

	l := newLinker(c)
	results := make([]AttachmentRevisionView, 0, len(revisions))
	for _, r := range revisions {
		results = append(results, attachmentRevisionView(l, r))
	}

	resp, err := newPage(c, page, total, results)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *Handler) getAttachmentRevision(c *gin.Context) {
	articleID, attachmentID, ok := attachmentIDs(c)
	if !ok {
		return
	}
	id, err := pathID(c, "rid")
	if err != nil {
		abortWithError(c, err)
		return
	}

	revision, err := h.services.Attachments.GetRevision(c.Request.Context(), articleID, attachmentID, id)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, attachmentRevisionView(newLinker(c), revision))
}

func (h *Handler) downloadAttachmentRevision(c *gin.Context) {
	articleID, attachmentID, ok := attachmentIDs(c)
	if !ok {
		return
	}
	id, err := pathID(c, "rid")
	if err != nil {
		abortWithError(c, err)
		return
	}

	download, err := h.services.Attachments.DownloadRevision(c.Request.Context(), articleID, attachmentID, id)
	if err != nil {
		abortWithError(c, err)
		return
	}

	serveDownload(c, download)
}

func serveDownload(c *gin.Context, download *service.Download) {
	defer download.Body.Close()

	c.DataFromReader(http.StatusOK, download.Size, "application/octet-stream", download.Body, map[string]string{
		"Content-Disposition": "attachment; filename=" + download.Filename,
	})
}
