package model

import "time"

// Session is an issued player session.
type Session struct {
	ID         string     `gorm:"primaryKey;size:36" json:"id"`
	PlayerName string     `gorm:"size:32;not null" json:"player_name"`
	IP         string     `gorm:"size:45" json:"ip"`
	CreatedAt  time.Time  `gorm:"autoCreateTime" json:"created_at"`
	LastSeenAt *time.Time `json:"last_seen_at"`
}
