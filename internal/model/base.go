package model

import "time"

// BaseModel audit columns embedded by every business table
type BaseModel struct {
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	CreatedBy *string   `gorm:"type:uuid"                          json:"created_by,omitempty"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
	UpdatedBy *string   `gorm:"type:uuid"                          json:"updated_by,omitempty"`
}

// Stamp sets both audit authors, used on insert.
func (b *BaseModel) Stamp(callerID string) {
	b.CreatedBy = &callerID
	b.UpdatedBy = &callerID
}

// SameOptionalID compares two nullable ids; nil only equals nil.
func SameOptionalID(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
