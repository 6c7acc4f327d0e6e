package models

// CategoryModel is read-mostly reference data; reports hold a RESTRICT
// foreign key to it.
type CategoryModel struct {
	ID   uint   `gorm:"primarykey"`
	Name string `gorm:"not null;size:50"`
	Slug string `gorm:"uniqueIndex;not null;size:50"`
}

func (CategoryModel) TableName() string {
	return "categories"
}

type TagModel struct {
	ID   uint   `gorm:"primarykey"`
	Name string `gorm:"not null;size:50"`
}

func (TagModel) TableName() string {
	return "tags"
}

// ReportTagModel is the explicit report-tag association row. The composite
// primary key enforces that a (report, tag) pair appears at most once.
type ReportTagModel struct {
	ReportID uint `gorm:"primaryKey;autoIncrement:false"`
	TagID    uint `gorm:"primaryKey;autoIncrement:false"`
}

func (ReportTagModel) TableName() string {
	return "report_tags"
}
