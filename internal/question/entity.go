package question

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Question struct {
	ID                 uuid.UUID                   `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Text               string                      `gorm:"type:text;not null" json:"text"`
	Options            datatypes.JSONSlice[string] `gorm:"type:jsonb;not null" json:"options"`
	CorrectOptionIndex int                         `gorm:"not null" json:"correct_option_index"`
	Subject            string                      `gorm:"type:text;not null;index" json:"subject"`
	Difficulty         Difficulty                  `gorm:"type:varchar(16);not null;index" json:"difficulty"`
	OwnerID            uuid.UUID                   `gorm:"type:uuid;not null;index" json:"owner_id"`
	CreatedAt          time.Time                   `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time                   `gorm:"autoUpdateTime" json:"updated_at"`
}
