package model

import "time"

// Attachment is a file attached to an article. Its content lives in
// AttachmentRevision records.
type Attachment struct {
	ID                uint                `gorm:"primaryKey"`
	ArticleID         uint                `gorm:"not null;index"`
	CurrentRevisionID *uint
	CurrentRevision   *AttachmentRevision `gorm:"foreignKey:CurrentRevisionID"`
	OriginalFilename  string              `gorm:"size:256"`
	Deleted           bool                `gorm:"not null"`
	Created           time.Time           `gorm:"autoCreateTime"`
	Modified          time.Time           `gorm:"autoUpdateTime"`
}

func (Attachment) TableName() string {
	return "attachments"
}

// AttachmentRevision is an immutable snapshot of an attachment's file.
// File holds the name of the blob in attachment storage and Size its
// decoded length in bytes.
type AttachmentRevision struct {
	ID                 uint        `gorm:"primaryKey"`
	AttachmentID       uint        `gorm:"not null;index"`
	Attachment         *Attachment `gorm:"foreignKey:AttachmentID"`
	RevisionNumber     int         `gorm:"not null"`
	UserMessage        string      `gorm:"size:255"`
	AutomaticLog       string      `gorm:"type:text"`
	IPAddress          *string     `gorm:"size:45"`
	UserID             *uint       `gorm:"index"`
	User               *User       `gorm:"foreignKey:UserID"`
	File               string      `gorm:"size:255;not null"`
	Size               int64       `gorm:"not null"`
	Description        string      `gorm:"type:text"`
	PreviousRevisionID *uint
	Deleted            bool        `gorm:"not null"`
	Locked             bool        `gorm:"not null"`
	Created            time.Time   `gorm:"autoCreateTime"`
	Modified           time.Time   `gorm:"autoUpdateTime"`
}

func (AttachmentRevision) TableName() string {
	return "attachment_revisions"
}

// InheritPredecessor links the revision to prev.
func (r *AttachmentRevision) InheritPredecessor(prev *AttachmentRevision) {
	r.PreviousRevisionID = &prev.ID
	r.RevisionNumber = prev.RevisionNumber + 1
	r.Deleted = prev.Deleted
	r.Locked = prev.Locked
}
