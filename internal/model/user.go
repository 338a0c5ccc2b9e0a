package model

import "time"

// User is an account that can sign in to the wiki.
type User struct {
	ID          uint          `gorm:"primaryKey"`
	Username    string        `gorm:"size:150;not null;uniqueIndex"`
	Email       string        `gorm:"size:254"`
	Password    string        `gorm:"size:128"`
	FirstName   string        `gorm:"size:150"`
	LastName    string        `gorm:"size:150"`
	IsActive    bool          `gorm:"not null"`
	IsStaff     bool          `gorm:"not null"`
	IsSuperuser bool          `gorm:"not null"`
	DateJoined  time.Time     `gorm:"autoCreateTime"`
	LastLogin   *time.Time
	Groups      []*Group      `gorm:"many2many:user_groups;"`
	Permissions []*Permission `gorm:"many2many:user_permissions;"`
}

func (User) TableName() string {
	return "users"
}

// Group collects users for article group permissions.
type Group struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"size:150;not null;uniqueIndex"`
}

func (Group) TableName() string {
	return "groups"
}

// Permission is a named capability that can be granted to a user.
type Permission struct {
	ID       uint   `gorm:"primaryKey"`
	Name     string `gorm:"size:255;not null"`
	Codename string `gorm:"size:100;not null;uniqueIndex"`
}

func (Permission) TableName() string {
	return "permissions"
}

// PermissionIDs returns the ids of the permissions granted to the user.
func (u *User) PermissionIDs() []uint {
	ids := make([]uint, 0, len(u.Permissions))
	for _, p := range u.Permissions {
		ids = append(ids, p.ID)
	}

	return ids
}
