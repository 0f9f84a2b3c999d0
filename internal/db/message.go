package db

import (
	"context"
	"fmt"
	"time"

	"minitwit/internal/models"
)

const timelineColumns = `select message.*, company.* from message, company`

// PublicTimeline returns the newest messages across all companies.
func (s *Store) PublicTimeline(ctx context.Context, limit int) ([]models.TimelineEntry, error) {
	rows, err := s.Query(ctx, timelineColumns+`
		where message.company_id = company.company_id
		order by message.pub_date desc, message.message_id desc limit ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("public timeline: %w", err)
	}
	return timelineEntries(rows), nil
}

// CompanyTimeline returns the newest messages of one company.
func (s *Store) CompanyTimeline(ctx context.Context, companyID int64, limit int) ([]models.TimelineEntry, error) {
	rows, err := s.Query(ctx, timelineColumns+`
		where company.company_id = message.company_id and company.company_id = ?
		order by message.pub_date desc, message.message_id desc limit ?`, companyID, limit)
	if err != nil {
		return nil, fmt.Errorf("company timeline: %w", err)
	}
	return timelineEntries(rows), nil
}

// CreateMessage appends a message stamped with the current unix time.
func (s *Store) CreateMessage(ctx context.Context, companyID int64, text string) (*models.Message, error) {
	msg := models.Message{
		CompanyID: companyID,
		Text:      text,
		PubDate:   time.Now().Unix(),
	}
	if err := s.gdb.WithContext(ctx).Create(&msg).Error; err != nil {
		return nil, fmt.Errorf("create message: %w", err)
	}
	return &msg, nil
}

func timelineEntries(rows []*Row) []models.TimelineEntry {
	entries := make([]models.TimelineEntry, 0, len(rows))
	for _, r := range rows {
		entries = append(entries, models.TimelineEntry{
			Message: models.Message{
				ID:        r.Int64("message_id"),
				CompanyID: r.Int64("company_id"),
				Text:      r.String("text"),
				PubDate:   r.Int64("pub_date"),
			},
			CompanyName: r.String("company_name"),
		})
	}
	return entries
}
