package model

import "time"

// Article is the logical identity of a wiki page. Its content lives in
// ArticleRevision records, the newest of which is CurrentRevision.
type Article struct {
	ID                uint             `gorm:"primaryKey"`
	OwnerID           *uint            `gorm:"index"`
	Owner             *User            `gorm:"foreignKey:OwnerID"`
	GroupID           *uint            `gorm:"index"`
	Group             *Group           `gorm:"foreignKey:GroupID"`
	GroupRead         bool             `gorm:"not null"`
	GroupWrite        bool             `gorm:"not null"`
	OtherRead         bool             `gorm:"not null"`
	OtherWrite        bool             `gorm:"not null"`
	CurrentRevisionID *uint
	CurrentRevision   *ArticleRevision `gorm:"foreignKey:CurrentRevisionID"`
	Attachments       []*Attachment    `gorm:"foreignKey:ArticleID"`
	Created           time.Time        `gorm:"autoCreateTime"`
	Modified          time.Time        `gorm:"autoUpdateTime"`
}

func (Article) TableName() string {
	return "articles"
}

// Title returns the title of the current revision, or an empty string for an
// article without content.
func (a *Article) Title() string {
	if a.CurrentRevision == nil {
		return ""
	}

	return a.CurrentRevision.Title
}

// ArticleRevision is an immutable snapshot of an article's content.
type ArticleRevision struct {
	ID                 uint      `gorm:"primaryKey"`
	ArticleID          uint      `gorm:"not null;uniqueIndex:idx_article_revision_number"`
	RevisionNumber     int       `gorm:"not null;uniqueIndex:idx_article_revision_number"`
	Title              string    `gorm:"size:512;not null"`
	Content            string    `gorm:"type:text"`
	UserMessage        string    `gorm:"size:255"`
	AutomaticLog       string    `gorm:"type:text"`
	IPAddress          *string   `gorm:"size:45"`
	UserID             *uint     `gorm:"index"`
	User               *User     `gorm:"foreignKey:UserID"`
	PreviousRevisionID *uint
	Deleted            bool      `gorm:"not null"`
	Locked             bool      `gorm:"not null"`
	Created            time.Time `gorm:"autoCreateTime"`
	Modified           time.Time `gorm:"autoUpdateTime"`
}

func (ArticleRevision) TableName() string {
	return "article_revisions"
}

// InheritPredecessor links the revision to prev and carries over the fields a
// new revision shares with the one it replaces.
func (r *ArticleRevision) InheritPredecessor(prev *ArticleRevision) {
	r.PreviousRevisionID = &prev.ID
	r.RevisionNumber = prev.RevisionNumber + 1
	r.Deleted = prev.Deleted
	r.Locked = prev.Locked
	if r.Title == "" {
		r.Title = prev.Title
	}
}
