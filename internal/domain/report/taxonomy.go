package report

// Category is read-mostly reference data. Reports keep a protected foreign
// key to it: a category cannot be removed while reports reference it.
type Category struct {
	ID   uint
	Name string
	Slug string
}

// Tag is a free-form label attached to reports through the report_tags
// association table.
type Tag struct {
	ID   uint
	Name string
}
