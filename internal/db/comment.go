package db

import (
	"context"
	"fmt"
	"time"

	"minitwit/internal/models"
)

// CreateComment attaches a comment to messageID. Neither the message nor the
// text is checked.
func (s *Store) CreateComment(ctx context.Context, messageID int64, text string) (*models.Comment, error) {
	comment := models.Comment{
		MessageID: messageID,
		Text:      text,
		PubDate:   time.Now().Unix(),
	}
	if err := s.gdb.WithContext(ctx).Create(&comment).Error; err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}
	return &comment, nil
}

// CommentsForMessage lists a message's comments oldest first.
func (s *Store) CommentsForMessage(ctx context.Context, messageID int64) ([]models.Comment, error) {
	rows, err := s.Query(ctx, `select * from comments where comments.message_id = ? order by comments.id`, messageID)
	if err != nil {
		return nil, fmt.Errorf("comments for message: %w", err)
	}
	return toComments(rows), nil
}

// CommentsForMessages groups the comments of several messages by message id,
// each group oldest first. Messages without comments have no key.
func (s *Store) CommentsForMessages(ctx context.Context, messageIDs []int64) (map[int64][]models.Comment, error) {
	grouped := make(map[int64][]models.Comment)
	if len(messageIDs) == 0 {
		return grouped, nil
	}
	rows, err := s.Query(ctx, `select * from comments where comments.message_id in ? order by comments.id`, messageIDs)
	if err != nil {
		return nil, fmt.Errorf("comments for messages: %w", err)
	}
	for _, cm := range toComments(rows) {
		grouped[cm.MessageID] = append(grouped[cm.MessageID], cm)
	}
	return grouped, nil
}

func toComments(rows []*Row) []models.Comment {
	comments := make([]models.Comment, 0, len(rows))
	for _, r := range rows {
		comments = append(comments, models.Comment{
			ID:        r.Int64("id"),
			MessageID: r.Int64("message_id"),
			Text:      r.String("comment_text"),
			PubDate:   r.Int64("pub_date"),
		})
	}
	return comments
}
