package report

import (
	"fmt"
	"time"
)

// Report is a dated status entry authored by an employee. A report always
// has exactly one author and one category; tags are optional.
type Report struct {
	id         uint
	authorID   uint
	categoryID uint
	tagIDs     []uint
	title      string
	body       string
	image      *string
	condition  Condition
	viewCount  uint
	createdAt  time.Time
	updatedAt  time.Time
}

func NewReport(
	authorID uint,
	categoryID uint,
	tagIDs []uint,
	title string,
	body string,
	image *string,
	condition Condition,
) (*Report, error) {
	if authorID == 0 {
		return nil, fmt.Errorf("author ID is required")
	}
	if categoryID == 0 {
		return nil, fmt.Errorf("category ID is required")
	}
	if len(title) == 0 {
		return nil, fmt.Errorf("title is required")
	}
	if len(title) > 200 {
		return nil, fmt.Errorf("title exceeds maximum length of 200 characters")
	}
	if len(body) == 0 {
		return nil, fmt.Errorf("body is required")
	}
	if condition == "" {
		condition = ConditionNormal
	}
	if !condition.IsValid() {
		return nil, fmt.Errorf("invalid condition: %s", condition)
	}
	if tagIDs == nil {
		tagIDs = []uint{}
	}

	now := time.Now()
	return &Report{
		authorID:   authorID,
		categoryID: categoryID,
		tagIDs:     dedupeIDs(tagIDs),
		title:      title,
		body:       body,
		image:      image,
		condition:  condition,
		createdAt:  now,
		updatedAt:  now,
	}, nil
}

func ReconstructReport(
	id uint,
	authorID uint,
	categoryID uint,
	tagIDs []uint,
	title string,
	body string,
	image *string,
	condition Condition,
	viewCount uint,
	createdAt, updatedAt time.Time,
) (*Report, error) {
	if id == 0 {
		return nil, fmt.Errorf("report ID cannot be zero")
	}
	if authorID == 0 {
		return nil, fmt.Errorf("author ID is required")
	}
	if categoryID == 0 {
		return nil, fmt.Errorf("category ID is required")
	}
	if !condition.IsValid() {
		return nil, fmt.Errorf("invalid condition: %s", condition)
	}
	if tagIDs == nil {
		tagIDs = []uint{}
	}

	return &Report{
		id:         id,
		authorID:   authorID,
		categoryID: categoryID,
		tagIDs:     tagIDs,
		title:      title,
		body:       body,
		image:      image,
		condition:  condition,
		viewCount:  viewCount,
		createdAt:  createdAt,
		updatedAt:  updatedAt,
	}, nil
}

func (r *Report) ID() uint {
	return r.id
}

func (r *Report) AuthorID() uint {
	return r.authorID
}

func (r *Report) CategoryID() uint {
	return r.categoryID
}

func (r *Report) TagIDs() []uint {
	return r.tagIDs
}

func (r *Report) Title() string {
	return r.title
}

func (r *Report) Body() string {
	return r.body
}

func (r *Report) Image() *string {
	return r.image
}

func (r *Report) Condition() Condition {
	return r.condition
}

func (r *Report) ViewCount() uint {
	return r.viewCount
}

func (r *Report) CreatedAt() time.Time {
	return r.createdAt
}

func (r *Report) UpdatedAt() time.Time {
	return r.updatedAt
}

func (r *Report) SetID(id uint) error {
	if r.id != 0 {
		return fmt.Errorf("report ID already set")
	}
	if id == 0 {
		return fmt.Errorf("report ID cannot be zero")
	}
	r.id = id
	return nil
}

// IsAuthoredBy reports whether the given actor is the report's author.
// Update and delete are only permitted when this holds.
func (r *Report) IsAuthoredBy(actorID uint) bool {
	return actorID != 0 && r.authorID == actorID
}

// Update replaces the editable fields. The tag set passed here replaces the
// previous association set in full.
func (r *Report) Update(
	categoryID uint,
	tagIDs []uint,
	title string,
	body string,
	image *string,
	condition Condition,
) error {
	if categoryID == 0 {
		return fmt.Errorf("category ID is required")
	}
	if len(title) == 0 {
		return fmt.Errorf("title is required")
	}
	if len(title) > 200 {
		return fmt.Errorf("title exceeds maximum length of 200 characters")
	}
	if len(body) == 0 {
		return fmt.Errorf("body is required")
	}
	if !condition.IsValid() {
		return fmt.Errorf("invalid condition: %s", condition)
	}
	if tagIDs == nil {
		tagIDs = []uint{}
	}

	r.categoryID = categoryID
	r.tagIDs = dedupeIDs(tagIDs)
	r.title = title
	r.body = body
	r.image = image
	r.condition = condition
	r.updatedAt = time.Now()
	return nil
}

// IsDistress reports whether this report carries the distress condition.
func (r *Report) IsDistress() bool {
	return r.condition.IsDistress()
}

// dedupeIDs drops duplicate tag IDs while preserving order, so the
// (report, tag) pair uniqueness holds before the database is ever involved.
func dedupeIDs(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
