package model

import "gorm.io/gorm"

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&Group{},
		&Permission{},
		&User{},
		&Article{},
		&ArticleRevision{},
		&URLPath{},
		&Attachment{},
		&AttachmentRevision{},
		&Tag{},
		&TagsOnArticle{},
	)
}
