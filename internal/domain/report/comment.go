package report

import (
	"fmt"
	"time"
)

// Comment is a colleague's reply on a report. Author and report references
// are fixed by the service from the acting identity and the viewed report,
// never from client input.
type Comment struct {
	id        uint
	reportID  uint
	authorID  uint
	text      string
	createdAt time.Time
}

func NewComment(reportID, authorID uint, text string) (*Comment, error) {
	if reportID == 0 {
		return nil, fmt.Errorf("report ID is required")
	}
	if authorID == 0 {
		return nil, fmt.Errorf("author ID is required")
	}
	if len(text) == 0 {
		return nil, fmt.Errorf("comment text is required")
	}
	if len(text) > 2000 {
		return nil, fmt.Errorf("comment text exceeds maximum length of 2000 characters")
	}

	return &Comment{
		reportID:  reportID,
		authorID:  authorID,
		text:      text,
		createdAt: time.Now(),
	}, nil
}

func ReconstructComment(id, reportID, authorID uint, text string, createdAt time.Time) (*Comment, error) {
	if id == 0 {
		return nil, fmt.Errorf("comment ID cannot be zero")
	}
	if reportID == 0 {
		return nil, fmt.Errorf("report ID is required")
	}
	if authorID == 0 {
		return nil, fmt.Errorf("author ID is required")
	}

	return &Comment{
		id:        id,
		reportID:  reportID,
		authorID:  authorID,
		text:      text,
		createdAt: createdAt,
	}, nil
}

func (c *Comment) ID() uint {
	return c.id
}

func (c *Comment) ReportID() uint {
	return c.reportID
}

func (c *Comment) AuthorID() uint {
	return c.authorID
}

func (c *Comment) Text() string {
	return c.text
}

func (c *Comment) CreatedAt() time.Time {
	return c.createdAt
}

func (c *Comment) SetID(id uint) error {
	if c.id != 0 {
		return fmt.Errorf("comment ID already set")
	}
	if id == 0 {
		return fmt.Errorf("comment ID cannot be zero")
	}
	c.id = id
	return nil
}
