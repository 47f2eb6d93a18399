package model

import (
	"time"

	"gorm.io/datatypes"
)

// ProgressEvent is one committed game transition (level-up, quest payout,
// achievement unlock, death ...). Rows are append-only history.
type ProgressEvent struct {
	ID         int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	SessionID  string         `gorm:"index:idx_progress_session;size:36" json:"session_id"`
	PlayerName string         `gorm:"size:32" json:"player_name"`
	Event      string         `gorm:"index:idx_progress_event;size:64;not null" json:"event"`
	Level      int            `json:"level"`
	Payload    datatypes.JSON `json:"payload"`
	CreatedAt  time.Time      `gorm:"index:idx_progress_created;autoCreateTime:milli" json:"created_at"`
}
