package model

import "time"

// Tag is a free-text label.
type Tag struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"size:100;not null;uniqueIndex"`
	Slug string `gorm:"size:100;not null;uniqueIndex"`
}

func (Tag) TableName() string {
	return "tags"
}

// TagsOnArticle holds the tags of one article. It is created the first time
// the article's tags are edited and remembers the revision that was current
// at that moment.
type TagsOnArticle struct {
	ID                uint      `gorm:"primaryKey"`
	ArticleID         uint      `gorm:"not null;uniqueIndex"`
	ArticleRevisionID *uint
	Tags              []*Tag    `gorm:"many2many:tags_on_article_tags;"`
	Created           time.Time `gorm:"autoCreateTime"`
	Modified          time.Time `gorm:"autoUpdateTime"`
}

func (TagsOnArticle) TableName() string {
	return "tags_on_articles"
}

// ArticleTagCount is the number of tags on an article.
type ArticleTagCount struct {
	ArticleID uint
	Title     string
	Count     int64
}
