package models

// Student is a managed record. Fields are free-form; uniqueness is only
// enforced on the id.
type Student struct {
	ID    uint   `json:"id" gorm:"primaryKey"`
	Name  string `json:"name" gorm:"size:100"`
	Email string `json:"email" gorm:"size:100"`
	Phone string `json:"phone" gorm:"size:20"`
}

func (Student) TableName() string {
	return "students"
}
