package service

import (
	"context"
	"errors"
	"io"

	"github.com/emrgen/wiki/internal/model"
	"github.com/emrgen/wiki/internal/store"
	"github.com/sirupsen/logrus"
)

// BlobStorage keeps the files of attachment revisions.
type BlobStorage interface {
	Save(r io.Reader) (string, int64, error)
	Open(name string) (io.ReadCloser, error)
	Remove(name string) error
}

// Download is an open attachment file. The caller closes Body.
type Download struct {
	Filename string
	Size     int64
	Body     io.ReadCloser
}

// UploadParams describe a file attached to an article. A file with the same
// name as an existing attachment becomes its next revision.
type UploadParams struct {
	ArticleID   uint
	Filename    string
	Description string
	UserMessage string
	UserID      *uint
	IPAddress   *string
	Body        io.Reader
}

// NewAttachmentService creates a new AttachmentService.
func NewAttachmentService(store store.Store, blobs BlobStorage) *AttachmentService {
	return &AttachmentService{
		store: store,
		blobs: blobs,
	}
}

// AttachmentService is a service for managing article attachments.
type AttachmentService struct {
	store store.Store
	blobs BlobStorage
}

func (a *AttachmentService) ListAttachments(ctx context.Context, articleID uint, offset, limit int) ([]*model.Attachment, int64, error) {
	return a.store.ListAttachments(ctx, articleID, offset, limit)
}

func (a *AttachmentService) GetAttachment(ctx context.Context, articleID, id uint) (*model.Attachment, error) {
	return a.store.GetAttachment(ctx, articleID, id)
}

// ListRevisions lists the revisions of an attachment of the article.
func (a *AttachmentService) ListRevisions(ctx context.Context, articleID, attachmentID uint, offset, limit int) ([]*model.AttachmentRevision, int64, error) {
	if _, err := a.store.GetAttachment(ctx, articleID, attachmentID); err != nil {
		return nil, 0, err
	}

	return a.store.ListAttachmentRevisions(ctx, attachmentID, offset, limit)
}

// GetRevision retrieves a revision of an attachment of the article.
func (a *AttachmentService) GetRevision(ctx context.Context, articleID, attachmentID, id uint) (*model.AttachmentRevision, error) {
	if _, err := a.store.GetAttachment(ctx, articleID, attachmentID); err != nil {
		return nil, err
	}

	return a.store.GetAttachmentRevision(ctx, attachmentID, id)
}

// Download opens the current revision of an attachment.
func (a *AttachmentService) Download(ctx context.Context, articleID, id uint) (*Download, error) {
	attachment, err := a.store.GetAttachment(ctx, articleID, id)
	if err != nil {
		return nil, err
	}

	if attachment.CurrentRevision == nil {
		return nil, ErrNoCurrentRevision
	}

	return a.open(attachment, attachment.CurrentRevision)
}

// DownloadRevision opens one revision of an attachment.
func (a *AttachmentService) DownloadRevision(ctx context.Context, articleID, attachmentID, id uint) (*Download, error) {
	attachment, err := a.store.GetAttachment(ctx, articleID, attachmentID)
	if err != nil {
		return nil, err
	}

	revision, err := a.store.GetAttachmentRevision(ctx, attachmentID, id)
	if err != nil {
		return nil, err
	}

	return a.open(attachment, revision)
}

func (a *AttachmentService) open(attachment *model.Attachment, revision *model.AttachmentRevision) (*Download, error) {
	body, err := a.blobs.Open(revision.File)
	if err != nil {
		return nil, err
	}

	return &Download{
		Filename: attachment.OriginalFilename,
		Size:     revision.Size,
		Body:     body,
	}, nil
}

// Upload stores a file and records it as a new attachment or as the next
// revision of the article's attachment with the same filename.
func (a *AttachmentService) Upload(ctx context.Context, params UploadParams) (*model.Attachment, error) {
	if _, err := a.store.GetArticle(ctx, params.ArticleID); err != nil {
		return nil, err
	}

	name, size, err := a.blobs.Save(params.Body)
	if err != nil {
		return nil, err
	}

	var attachmentID uint
	err = a.store.Transaction(ctx, func(tx store.Store) error {
		attachment, err := tx.GetAttachmentByFilename(ctx, params.ArticleID, params.Filename)
		if errors.Is(err, store.ErrNotFound) {
			attachment = &model.Attachment{
				ArticleID:        params.ArticleID,
				OriginalFilename: params.Filename,
			}
			err = tx.CreateAttachment(ctx, attachment)
		}
		if err != nil {
			return err
		}

		revision := &model.AttachmentRevision{
			AttachmentID:   attachment.ID,
			RevisionNumber: 1,
			UserMessage:    params.UserMessage,
			UserID:         params.UserID,
			IPAddress:      params.IPAddress,
			File:           name,
			Size:           size,
			Description:    params.Description,
		}
		if attachment.CurrentRevision != nil {
			revision.InheritPredecessor(attachment.CurrentRevision)
		}
		if err := tx.CreateAttachmentRevision(ctx, revision); err != nil {
			return err
		}

		attachment.CurrentRevisionID = &revision.ID
		attachment.CurrentRevision = revision
		attachmentID = attachment.ID
		return tx.UpdateAttachment(ctx, attachment)
	})
	if err != nil {
		if rerr := a.blobs.Remove(name); rerr != nil {
			logrus.Warnf("removing orphaned blob %s: %v", name, rerr)
		}
		return nil, err
	}

	logrus.Infof("stored %s (%d bytes) on article %d", params.Filename, size, params.ArticleID)

	return a.store.GetAttachment(ctx, params.ArticleID, attachmentID)
}
