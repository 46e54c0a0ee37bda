package model

// Grade school grade, table grades. Reference data.
type Grade struct {
	GradeID   string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"grade_id"`
	Name      string `gorm:"type:varchar(100);not null"                     json:"name"`
	HasTracks bool   `gorm:"not null;default:false"                         json:"has_tracks"`
	BaseModel

	Tracks []Track `gorm:"foreignKey:GradeID" json:"tracks,omitempty"`
}

func (Grade) TableName() string { return "grades" }

// Track sub-division of a grade (e.g. scientific / literary), table tracks.
// Only exists under a grade with HasTracks.
type Track struct {
	TrackID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"track_id"`
	GradeID string `gorm:"type:uuid;not null"                             json:"grade_id"`
	Name    string `gorm:"type:varchar(100);not null"                     json:"name"`
	BaseModel
}

func (Track) TableName() string { return "tracks" }
