package report

import (
	"context"
	"time"
)

// ListFilter narrows the report listing. Query matches title OR body,
// case-insensitively; CategoryID restricts to one category. Zero values
// mean "no restriction".
type ListFilter struct {
	Query      string
	CategoryID uint
}

// AuthorInfo is the author data joined into read models.
type AuthorInfo struct {
	ID         uint
	Username   string
	Department string
	Position   string
}

// Summary is the listing read model: one base query plus one batched tag
// query, regardless of result size.
type Summary struct {
	ID        uint
	Title     string
	Condition Condition
	ViewCount uint
	Author    AuthorInfo
	Category  Category
	Tags      []Tag
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CommentView is a comment with its author joined in.
type CommentView struct {
	ID        uint
	Author    AuthorInfo
	Text      string
	CreatedAt time.Time
}

// Detail is the detail-page read model. ViewCount is carried separately
// from the entity snapshot so it can be refreshed after an increment.
type Detail struct {
	Report    *Report
	Author    AuthorInfo
	Category  Category
	Tags      []Tag
	Comments  []CommentView
	ViewCount uint
}

// Repository defines persistence operations for reports.
type Repository interface {
	// Create inserts the report row only; tag associations are written
	// separately via ReplaceTags inside the same transaction.
	Create(ctx context.Context, r *Report) error
	Update(ctx context.Context, r *Report) error
	Delete(ctx context.Context, id uint) error
	GetByID(ctx context.Context, id uint) (*Report, error)
	// GetDetail loads the report with author, category, tags and comments
	// batched (no per-row queries). Returns a not-found error when absent.
	GetDetail(ctx context.Context, id uint) (*Detail, error)
	// List composes the filter at the SQL level and returns newest-first.
	List(ctx context.Context, filter ListFilter) ([]Summary, error)
	// IncrementViewCount issues a store-side `view_count = view_count + 1`.
	// It is a no-op when no row matches and never reports that as an error.
	IncrementViewCount(ctx context.Context, id uint) error
	// GetViewCount re-reads the counter so callers can refresh an
	// in-memory snapshot after an increment.
	GetViewCount(ctx context.Context, id uint) (uint, error)
	// ReplaceTags replaces the report's association set in full. It
	// participates in the caller's transaction when one is in the context.
	ReplaceTags(ctx context.Context, reportID uint, tagIDs []uint) error
}

// CommentRepository defines persistence operations for comments.
type CommentRepository interface {
	Create(ctx context.Context, c *Comment) error
	ListByReport(ctx context.Context, reportID uint) ([]CommentView, error)
	CountByReport(ctx context.Context, reportID uint) (int64, error)
}

// CategoryRepository manages category reference data.
type CategoryRepository interface {
	Create(ctx context.Context, c *Category) error
	List(ctx context.Context) ([]Category, error)
	GetByID(ctx context.Context, id uint) (*Category, error)
	GetBySlug(ctx context.Context, slug string) (*Category, error)
}

// TagRepository manages tag reference data.
type TagRepository interface {
	Create(ctx context.Context, t *Tag) error
	List(ctx context.Context) ([]Tag, error)
	GetByIDs(ctx context.Context, ids []uint) ([]Tag, error)
}

// AuthorCount is one row of a ranking aggregate.
type AuthorCount struct {
	UserID     uint
	Username   string
	Department string
	Count      int64
}

// RankingRepository computes the manager-facing aggregates. Each method is
// a single group-by query at the store level.
type RankingRepository interface {
	// TopAuthors returns the most active authors by report count, descending.
	TopAuthors(ctx context.Context, limit int) ([]AuthorCount, error)
	// TopDistress returns authors by count of distress-condition reports,
	// descending, excluding authors with none.
	TopDistress(ctx context.Context, limit int) ([]AuthorCount, error)
}
