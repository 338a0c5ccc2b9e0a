package model

import "time"

// URLPath places an article in the wiki hierarchy. The root path has no
// parent and level 0, and idx_url_path_root allows only one of it.
type URLPath struct {
	ID        uint      `gorm:"primaryKey"`
	ArticleID uint      `gorm:"not null;index"`
	Article   *Article  `gorm:"foreignKey:ArticleID"`
	ParentID  *uint     `gorm:"uniqueIndex:idx_url_path_parent_slug"`
	Slug      string    `gorm:"size:50;uniqueIndex:idx_url_path_parent_slug"`
	Level     int       `gorm:"not null;uniqueIndex:idx_url_path_root,where:parent_id IS NULL"`
	Created   time.Time `gorm:"autoCreateTime"`
}

func (URLPath) TableName() string {
	return "url_paths"
}

// IsRoot reports whether the path is the root of the wiki.
func (p *URLPath) IsRoot() bool {
	return p.ParentID == nil
}
