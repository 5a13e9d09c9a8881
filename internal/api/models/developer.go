package models

type Developer struct {
	ID   int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	Name string `json:"name" gorm:"uniqueIndex;not null"`
}

func (Developer) TableName() string {
	return "developers"
}
