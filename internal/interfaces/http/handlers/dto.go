package handlers

import (
	"time"

	"github.com/nippo-inc/nippo/internal/application/report/usecases"
	"github.com/nippo-inc/nippo/internal/domain/report"
	"github.com/nippo-inc/nippo/internal/domain/user"
)

type UserResponse struct {
	ID         uint      `json:"id"`
	Username   string    `json:"username"`
	EmployeeID string    `json:"employee_id"`
	Department string    `json:"department"`
	Position   string    `json:"position"`
	Bio        string    `json:"bio"`
	CreatedAt  time.Time `json:"created_at"`
}

func userToResponse(u *user.User) UserResponse {
	return UserResponse{
		ID:         u.ID(),
		Username:   u.Username(),
		EmployeeID: u.EmployeeID(),
		Department: u.Department(),
		Position:   u.Position(),
		Bio:        u.Bio(),
		CreatedAt:  u.CreatedAt(),
	}
}

type AuthorResponse struct {
	ID         uint   `json:"id"`
	Username   string `json:"username"`
	Department string `json:"department"`
	Position   string `json:"position"`
}

type CategoryResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type TagResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type ReportResponse struct {
	ID         uint      `json:"id"`
	AuthorID   uint      `json:"author_id"`
	CategoryID uint      `json:"category_id"`
	TagIDs     []uint    `json:"tag_ids"`
	Title      string    `json:"title"`
	Body       string    `json:"body"`
	Image      *string   `json:"image,omitempty"`
	Condition  string    `json:"condition"`
	ViewCount  uint      `json:"view_count"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func reportToResponse(r *report.Report) ReportResponse {
	return ReportResponse{
		ID:         r.ID(),
		AuthorID:   r.AuthorID(),
		CategoryID: r.CategoryID(),
		TagIDs:     r.TagIDs(),
		Title:      r.Title(),
		Body:       r.Body(),
		Image:      r.Image(),
		Condition:  r.Condition().String(),
		ViewCount:  r.ViewCount(),
		CreatedAt:  r.CreatedAt(),
		UpdatedAt:  r.UpdatedAt(),
	}
}

type ReportSummaryResponse struct {
	ID        uint             `json:"id"`
	Title     string           `json:"title"`
	Condition string           `json:"condition"`
	ViewCount uint             `json:"view_count"`
	Author    AuthorResponse   `json:"author"`
	Category  CategoryResponse `json:"category"`
	Tags      []TagResponse    `json:"tags"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

type CommentResponse struct {
	ID        uint           `json:"id"`
	Author    AuthorResponse `json:"author"`
	Text      string         `json:"text"`
	CreatedAt time.Time      `json:"created_at"`
}

type ReportDetailResponse struct {
	ID        uint              `json:"id"`
	Title     string            `json:"title"`
	Body      string            `json:"body"`
	BodyHTML  string            `json:"body_html"`
	Image     *string           `json:"image,omitempty"`
	Condition string            `json:"condition"`
	ViewCount uint              `json:"view_count"`
	Author    AuthorResponse    `json:"author"`
	Category  CategoryResponse  `json:"category"`
	Tags      []TagResponse     `json:"tags"`
	Comments  []CommentResponse `json:"comments"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

func authorToResponse(a report.AuthorInfo) AuthorResponse {
	return AuthorResponse{
		ID:         a.ID,
		Username:   a.Username,
		Department: a.Department,
		Position:   a.Position,
	}
}

func categoryToResponse(c report.Category) CategoryResponse {
	return CategoryResponse{ID: c.ID, Name: c.Name, Slug: c.Slug}
}

func tagsToResponse(tags []report.Tag) []TagResponse {
	out := make([]TagResponse, 0, len(tags))
	for _, t := range tags {
		out = append(out, TagResponse{ID: t.ID, Name: t.Name})
	}
	return out
}

func summariesToResponse(summaries []report.Summary) []ReportSummaryResponse {
	out := make([]ReportSummaryResponse, 0, len(summaries))
	for _, s := range summaries {
		out = append(out, ReportSummaryResponse{
			ID:        s.ID,
			Title:     s.Title,
			Condition: s.Condition.String(),
			ViewCount: s.ViewCount,
			Author:    authorToResponse(s.Author),
			Category:  categoryToResponse(s.Category),
			Tags:      tagsToResponse(s.Tags),
			CreatedAt: s.CreatedAt,
			UpdatedAt: s.UpdatedAt,
		})
	}
	return out
}

func detailToResponse(result *usecases.DetailResult) ReportDetailResponse {
	detail := result.Detail
	r := detail.Report

	comments := make([]CommentResponse, 0, len(detail.Comments))
	for _, cm := range detail.Comments {
		comments = append(comments, CommentResponse{
			ID:        cm.ID,
			Author:    authorToResponse(cm.Author),
			Text:      cm.Text,
			CreatedAt: cm.CreatedAt,
		})
	}

	return ReportDetailResponse{
		ID:        r.ID(),
		Title:     r.Title(),
		Body:      r.Body(),
		BodyHTML:  result.BodyHTML,
		Image:     r.Image(),
		Condition: r.Condition().String(),
		ViewCount: detail.ViewCount,
		Author:    authorToResponse(detail.Author),
		Category:  categoryToResponse(detail.Category),
		Tags:      tagsToResponse(detail.Tags),
		Comments:  comments,
		CreatedAt: r.CreatedAt(),
		UpdatedAt: r.UpdatedAt(),
	}
}
