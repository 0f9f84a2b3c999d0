package models

// Comment is a reply attached to a message.
type Comment struct {
	ID        int64  `gorm:"primaryKey;column:id" json:"id"`
	MessageID int64  `gorm:"column:message_id;not null;index" json:"message_id"`
	Text      string `gorm:"column:comment_text;type:text;not null" json:"text"`
	PubDate   int64  `gorm:"column:pub_date;not null" json:"date"`
}

func (Comment) TableName() string {
	return "comments"
}
