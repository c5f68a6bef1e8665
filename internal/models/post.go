package models

// PostModel is a user post that comments attach to.
type PostModel struct {
	Base
	AuthorID string     `json:"author_id" gorm:"type:char(36);index;not null"`
	Author   *UserModel `json:"author,omitempty" gorm:"foreignKey:AuthorID"`
	Content  string     `json:"content"   gorm:"type:text;not null"`
}

func (PostModel) TableName() string { return "posts" }
