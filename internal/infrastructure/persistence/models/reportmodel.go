package models

import (
	"time"
)

// ReportModel represents the database persistence model for daily reports.
// Deleting a user cascades to their reports; categories are delete-protected
// while reports reference them.
type ReportModel struct {
	ID         uint      `gorm:"primarykey"`
	AuthorID   uint      `gorm:"not null;index"`
	CategoryID uint      `gorm:"not null;index"`
	Title      string    `gorm:"not null;size:200"`
	Body       string    `gorm:"type:text;not null"`
	Image      *string   `gorm:"size:500"`
	Condition  string    `gorm:"column:condition;not null;size:10;default:normal;index"`
	ViewCount  uint      `gorm:"not null;default:0"`
	CreatedAt  time.Time `gorm:"index"`
	UpdatedAt  time.Time

	Author   UserModel     `gorm:"foreignKey:AuthorID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Category CategoryModel `gorm:"foreignKey:CategoryID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	// Reads go through the join table; writes are managed explicitly by the
	// repository (ReplaceTags), never by GORM association autosave.
	Tags []TagModel `gorm:"many2many:report_tags;joinForeignKey:ReportID;joinReferences:TagID"`
}

func (ReportModel) TableName() string {
	return "reports"
}

// CommentModel represents a colleague's reply on a report. Cascades with
// both the report and the comment author.
type CommentModel struct {
	ID        uint   `gorm:"primarykey"`
	ReportID  uint   `gorm:"not null;index"`
	AuthorID  uint   `gorm:"not null;index"`
	Text      string `gorm:"type:text;not null"`
	CreatedAt time.Time

	Report ReportModel `gorm:"foreignKey:ReportID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Author UserModel   `gorm:"foreignKey:AuthorID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

func (CommentModel) TableName() string {
	return "comments"
}
