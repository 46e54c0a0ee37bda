package model

// Roles
const (
	RoleAdmin   = "admin"
	RoleStudent = "student"
)

// User login account, table users. For students UserID equals Student.StudentID.
type User struct {
	UserID       string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"user_id"`
	Email        string `gorm:"type:varchar(255);not null"                     json:"email"`
	PasswordHash string `gorm:"type:varchar(255);not null"                     json:"-"`
	Role         string `gorm:"type:varchar(20);not null;default:'student'"    json:"role"`
	IsActive     bool   `gorm:"not null;default:true"                          json:"is_active"`
	BaseModel
}

func (User) TableName() string { return "users" }
