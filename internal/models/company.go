package models

// Company is the posting entity. Names are unique; rows are never updated or deleted.
type Company struct {
	ID   int64  `gorm:"primaryKey;column:company_id" json:"company_id"`
	Name string `gorm:"column:company_name;not null;uniqueIndex:idx_company_name" json:"company_name"`
}

func (Company) TableName() string {
	return "company"
}
