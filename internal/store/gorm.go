package store

import (
	"context"

	"github.com/emrgen/wiki/internal/model"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{
		db: db,
	}
}

var _ Store = (*GormStore)(nil)

type GormStore struct {
	db *gorm.DB
}

// paginate limits a query to one page. A non-positive limit returns everything.
func paginate(offset, limit int) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if limit <= 0 {
			return db
		}
		return db.Offset(offset).Limit(limit)
	}
}

func (g *GormStore) CreateUser(ctx context.Context, user *model.User) error {
	return translate(g.db.WithContext(ctx).Omit(clause.Associations).Create(user).Error)
}

func (g *GormStore) GetUser(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	err := g.db.WithContext(ctx).
		Preload("Groups", func(db *gorm.DB) *gorm.DB { return db.Order("groups.name") }).
		Preload("Permissions").
		First(&user, id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (g *GormStore) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	var user model.User
	err := g.db.WithContext(ctx).
		Preload("Groups").
		Preload("Permissions").
		Where("username = ?", username).
		First(&user).Error
	if err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (g *GormStore) ListUsers(ctx context.Context, offset, limit int) ([]*model.User, int64, error) {
	var total int64
	if err := g.db.WithContext(ctx).Model(&model.User{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []*model.User
	err := g.db.WithContext(ctx).
		Preload("Groups", func(db *gorm.DB) *gorm.DB { return db.Order("groups.name") }).
		Preload("Permissions").
		Order("date_joined desc").
		Order("id desc").
		Scopes(paginate(offset, limit)).
		Find(&users).Error
	return users, total, err
}

func (g *GormStore) UpdateUser(ctx context.Context, user *model.User) error {
	return translate(g.db.WithContext(ctx).Omit(clause.Associations).Save(user).Error)
}

func (g *GormStore) DeleteUser(ctx context.Context, id uint) error {
	return translate(g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user model.User
		if err := tx.First(&user, id).Error; err != nil {
			return err
		}

		if err := tx.Model(&model.Article{}).Where("owner_id = ?", id).UpdateColumn("owner_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Model(&model.ArticleRevision{}).Where("user_id = ?", id).UpdateColumn("user_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Model(&model.AttachmentRevision{}).Where("user_id = ?", id).UpdateColumn("user_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Model(&user).Association("Groups").Clear(); err != nil {
			return err
		}
		if err := tx.Model(&user).Association("Permissions").Clear(); err != nil {
			return err
		}

		return tx.Delete(&user).Error
	}))
}

func (g *GormStore) UsernameTaken(ctx context.Context, username string, excludeID uint) (bool, error) {
	var count int64
	err := g.db.WithContext(ctx).Model(&model.User{}).
		Where("username = ? AND id <> ?", username, excludeID).
		Count(&count).Error
	return count > 0, err
}

func (g *GormStore) SetUserGroups(ctx context.Context, user *model.User, groups []*model.Group) error {
	return g.db.WithContext(ctx).Model(user).Association("Groups").Replace(groups)
}

func (g *GormStore) CreateGroup(ctx context.Context, group *model.Group) error {
	return translate(g.db.WithContext(ctx).Create(group).Error)
}

func (g *GormStore) GetGroup(ctx context.Context, id uint) (*model.Group, error) {
	var group model.Group
	if err := g.db.WithContext(ctx).First(&group, id).Error; err != nil {
		return nil, translate(err)
	}
	return &group, nil
}

func (g *GormStore) FindGroups(ctx context.Context, ids []uint) ([]*model.Group, error) {
	var groups []*model.Group
	if len(ids) == 0 {
		return groups, nil
	}
	err := g.db.WithContext(ctx).Where("id IN ?", ids).Order("name").Find(&groups).Error
	return groups, err
}

func (g *GormStore) GetGroupByName(ctx context.Context, name string) (*model.Group, error) {
	var group model.Group
	if err := g.db.WithContext(ctx).Where("name = ?", name).First(&group).Error; err != nil {
		return nil, translate(err)
	}
	return &group, nil
}

func (g *GormStore) ListGroups(ctx context.Context, offset, limit int) ([]*model.Group, int64, error) {
	var total int64
	if err := g.db.WithContext(ctx).Model(&model.Group{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var groups []*model.Group
	err := g.db.WithContext(ctx).Order("id").Scopes(paginate(offset, limit)).Find(&groups).Error
	return groups, total, err
}

func (g *GormStore) UpdateGroup(ctx context.Context, group *model.Group) error {
	return translate(g.db.WithContext(ctx).Save(group).Error)
}

func (g *GormStore) DeleteGroup(ctx context.Context, id uint) error {
	return translate(g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var group model.Group
		if err := tx.First(&group, id).Error; err != nil {
			return err
		}

		if err := tx.Model(&model.Article{}).Where("group_id = ?", id).UpdateColumn("group_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM user_groups WHERE group_id = ?", id).Error; err != nil {
			return err
		}

		return tx.Delete(&group).Error
	}))
}

func (g *GormStore) GroupNameTaken(ctx context.Context, name string, excludeID uint) (bool, error) {
	var count int64
	err := g.db.WithContext(ctx).Model(&model.Group{}).
		Where("name = ? AND id <> ?", name, excludeID).
		Count(&count).Error
	return count > 0, err
}

func (g *GormStore) CreateArticle(ctx context.Context, article *model.Article) error {
	return translate(g.db.WithContext(ctx).Omit(clause.Associations).Create(article).Error)
}

func (g *GormStore) GetArticle(ctx context.Context, id uint) (*model.Article, error) {
	var article model.Article
	err := g.db.WithContext(ctx).
		Preload("Owner").
		Preload("Group").
		Preload("CurrentRevision").
		Preload("Attachments", func(db *gorm.DB) *gorm.DB { return db.Order("attachments.id") }).
		Preload("Attachments.CurrentRevision").
		First(&article, id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &article, nil
}

func (g *GormStore) ListArticles(ctx context.Context, offset, limit int) ([]*model.Article, int64, error) {
	var total int64
	if err := g.db.WithContext(ctx).Model(&model.Article{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var articles []*model.Article
	err := g.db.WithContext(ctx).
		Joins("LEFT JOIN article_revisions AS cr ON cr.id = articles.current_revision_id").
		Preload("CurrentRevision").
		Order("cr.title").
		Order("articles.modified").
		Order("articles.id").
		Scopes(paginate(offset, limit)).
		Find(&articles).Error
	return articles, total, err
}

func (g *GormStore) UpdateArticle(ctx context.Context, article *model.Article) error {
	return translate(g.db.WithContext(ctx).Omit(clause.Associations).Save(article).Error)
}

func (g *GormStore) CreateArticleRevision(ctx context.Context, revision *model.ArticleRevision) error {
	logrus.Infof("creating revision %d of article %d", revision.RevisionNumber, revision.ArticleID)
	return translate(g.db.WithContext(ctx).Omit(clause.Associations).Create(revision).Error)
}

func (g *GormStore) GetArticleRevision(ctx context.Context, articleID, id uint) (*model.ArticleRevision, error) {
	var revision model.ArticleRevision
	err := g.db.WithContext(ctx).
		Preload("User").
		Where("article_id = ? AND id = ?", articleID, id).
		First(&revision).Error
	if err != nil {
		return nil, translate(err)
	}
	return &revision, nil
}

func (g *GormStore) ListArticleRevisions(ctx context.Context, articleID uint, offset, limit int) ([]*model.ArticleRevision, int64, error) {
	var total int64
	q := g.db.WithContext(ctx).Model(&model.ArticleRevision{}).Where("article_id = ?", articleID)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var revisions []*model.ArticleRevision
	err := g.db.WithContext(ctx).
		Preload("User").
		Where("article_id = ?", articleID).
		Order("revision_number").
		Scopes(paginate(offset, limit)).
		Find(&revisions).Error
	return revisions, total, err
}

func (g *GormStore) MaxArticleRevisionNumber(ctx context.Context, articleID uint) (int, error) {
	var number int
	err := g.db.WithContext(ctx).Model(&model.ArticleRevision{}).
		Where("article_id = ?", articleID).
		Select("COALESCE(MAX(revision_number), 0)").
		Row().Scan(&number)
	return number, err
}

func (g *GormStore) CreateURLPath(ctx context.Context, path *model.URLPath) error {
	return translate(g.db.WithContext(ctx).Omit(clause.Associations).Create(path).Error)
}

func (g *GormStore) GetURLPath(ctx context.Context, id uint) (*model.URLPath, error) {
	var path model.URLPath
	if err := g.db.WithContext(ctx).Preload("Article").First(&path, id).Error; err != nil {
		return nil, translate(err)
	}
	return &path, nil
}

func (g *GormStore) GetRootURLPath(ctx context.Context) (*model.URLPath, error) {
	var path model.URLPath
	err := g.db.WithContext(ctx).Preload("Article").Where("parent_id IS NULL").First(&path).Error
	if err != nil {
		return nil, translate(err)
	}
	return &path, nil
}

func (g *GormStore) ListURLPaths(ctx context.Context) ([]*model.URLPath, error) {
	var paths []*model.URLPath
	err := g.db.WithContext(ctx).Preload("Article").Order("level").Order("id").Find(&paths).Error
	return paths, err
}

func (g *GormStore) CountURLPaths(ctx context.Context, parentID *uint, slug string) (int64, error) {
	q := g.db.WithContext(ctx).Model(&model.URLPath{}).Where("slug = ?", slug)
	if parentID == nil {
		q = q.Where("parent_id IS NULL")
	} else {
		q = q.Where("parent_id = ?", *parentID)
	}

	var count int64
	err := q.Count(&count).Error
	return count, err
}

func (g *GormStore) CreateAttachment(ctx context.Context, attachment *model.Attachment) error {
	return translate(g.db.WithContext(ctx).Omit(clause.Associations).Create(attachment).Error)
}

func (g *GormStore) GetAttachment(ctx context.Context, articleID, id uint) (*model.Attachment, error) {
	var attachment model.Attachment
	err := g.db.WithContext(ctx).
		Preload("CurrentRevision").
		Where("article_id = ? AND id = ?", articleID, id).
		First(&attachment).Error
	if err != nil {
		return nil, translate(err)
	}
	return &attachment, nil
}

func (g *GormStore) GetAttachmentByFilename(ctx context.Context, articleID uint, filename string) (*model.Attachment, error) {
	var attachment model.Attachment
	err := g.db.WithContext(ctx).
		Preload("CurrentRevision").
		Where("article_id = ? AND original_filename = ?", articleID, filename).
		First(&attachment).Error
	if err != nil {
		return nil, translate(err)
	}
	return &attachment, nil
}

func (g *GormStore) ListAttachments(ctx context.Context, articleID uint, offset, limit int) ([]*model.Attachment, int64, error) {
	var total int64
	q := g.db.WithContext(ctx).Model(&model.Attachment{}).Where("article_id = ?", articleID)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var attachments []*model.Attachment
	err := g.db.WithContext(ctx).
		Preload("CurrentRevision").
		Where("article_id = ?", articleID).
		Order("id").
		Scopes(paginate(offset, limit)).
		Find(&attachments).Error
	return attachments, total, err
}

func (g *GormStore) UpdateAttachment(ctx context.Context, attachment *model.Attachment) error {
	return translate(g.db.WithContext(ctx).Omit(clause.Associations).Save(attachment).Error)
}

func (g *GormStore) CreateAttachmentRevision(ctx context.Context, revision *model.AttachmentRevision) error {
	return translate(g.db.WithContext(ctx).Omit(clause.Associations).Create(revision).Error)
}

func (g *GormStore) GetAttachmentRevision(ctx context.Context, attachmentID, id uint) (*model.AttachmentRevision, error) {
	var revision model.AttachmentRevision
	err := g.db.WithContext(ctx).
		Preload("User").
		Preload("Attachment").
		Where("attachment_id = ? AND id = ?", attachmentID, id).
		First(&revision).Error
	if err != nil {
		return nil, translate(err)
	}
	return &revision, nil
}

func (g *GormStore) ListAttachmentRevisions(ctx context.Context, attachmentID uint, offset, limit int) ([]*model.AttachmentRevision, int64, error) {
	var total int64
	q := g.db.WithContext(ctx).Model(&model.AttachmentRevision{}).Where("attachment_id = ?", attachmentID)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var revisions []*model.AttachmentRevision
	err := g.db.WithContext(ctx).
		Preload("User").
		Preload("Attachment").
		Where("attachment_id = ?", attachmentID).
		Order("revision_number").
		Scopes(paginate(offset, limit)).
		Find(&revisions).Error
	return revisions, total, err
}

func (g *GormStore) CreateTag(ctx context.Context, tag *model.Tag) error {
	return translate(g.db.WithContext(ctx).Create(tag).Error)
}

func (g *GormStore) GetTag(ctx context.Context, id uint) (*model.Tag, error) {
	var tag model.Tag
	if err := g.db.WithContext(ctx).First(&tag, id).Error; err != nil {
		return nil, translate(err)
	}
	return &tag, nil
}

func (g *GormStore) ListTags(ctx context.Context) ([]*model.Tag, error) {
	var tags []*model.Tag
	err := g.db.WithContext(ctx).Order("slug").Find(&tags).Error
	return tags, err
}

func (g *GormStore) TagExists(ctx context.Context, name, slug string) (bool, error) {
	var count int64
	err := g.db.WithContext(ctx).Model(&model.Tag{}).
		Where("name = ? OR slug = ?", name, slug).
		Count(&count).Error
	return count > 0, err
}

func (g *GormStore) GetTagsOnArticle(ctx context.Context, articleID uint) (*model.TagsOnArticle, error) {
	var tags model.TagsOnArticle
	err := g.db.WithContext(ctx).
		Preload("Tags", func(db *gorm.DB) *gorm.DB { return db.Order("tags.slug") }).
		Where("article_id = ?", articleID).
		First(&tags).Error
	if err != nil {
		return nil, translate(err)
	}
	return &tags, nil
}

func (g *GormStore) CreateTagsOnArticle(ctx context.Context, tags *model.TagsOnArticle) error {
	return translate(g.db.WithContext(ctx).Omit(clause.Associations).Create(tags).Error)
}

func (g *GormStore) AddArticleTag(ctx context.Context, tags *model.TagsOnArticle, tag *model.Tag) error {
	return g.db.WithContext(ctx).Model(tags).Association("Tags").Append(tag)
}

func (g *GormStore) RemoveArticleTag(ctx context.Context, tags *model.TagsOnArticle, tag *model.Tag) error {
	return g.db.WithContext(ctx).Model(tags).Association("Tags").Delete(tag)
}

func (g *GormStore) CountArticleTags(ctx context.Context) ([]*model.ArticleTagCount, error) {
	var counts []*model.ArticleTagCount
	err := g.db.WithContext(ctx).
		Table("tags_on_articles AS t").
		Select("t.article_id AS article_id, COALESCE(r.title, '') AS title, COUNT(j.tag_id) AS count").
		Joins("JOIN articles AS a ON a.id = t.article_id").
		Joins("LEFT JOIN article_revisions AS r ON r.id = a.current_revision_id").
		Joins("LEFT JOIN tags_on_article_tags AS j ON j.tags_on_article_id = t.id").
		Group("t.article_id, r.title").
		Order("t.article_id").
		Scan(&counts).Error
	return counts, err
}

func (g *GormStore) Migrate() error {
	return model.Migrate(g.db)
}

func (g *GormStore) Transaction(ctx context.Context, f func(tx Store) error) error {
	return g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return f(&GormStore{db: tx})
	})
}
