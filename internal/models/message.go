package models

// Message is a single post attributed to a company. No foreign key is declared,
// so a message may reference a company that does not exist.
type Message struct {
	ID        int64  `gorm:"primaryKey;column:message_id" json:"message_id"`
	CompanyID int64  `gorm:"column:company_id;not null;index" json:"company_id"`
	Text      string `gorm:"column:text;type:text;not null" json:"text"`
	PubDate   int64  `gorm:"column:pub_date;not null;index" json:"pub_date"` // unix seconds
}

func (Message) TableName() string {
	return "message"
}

// TimelineEntry is a message joined with its owning company, plus the
// comments shown under it.
type TimelineEntry struct {
	Message
	CompanyName string    `json:"company_name"`
	Comments    []Comment `gorm:"-" json:"comments,omitempty"`
}
