package model

import "time"

// GeneratedConfig is one row of generation history: a config this tool has
// produced, keyed by its content fingerprint so reruns of the same
// subscription do not pile up duplicates.
type GeneratedConfig struct {
	ID        uint   `gorm:"primaryKey"`
	Hash      string `gorm:"uniqueIndex"`
	Remarks   string
	Protocol  string
	Address   string
	Port      int
	Country   string
	Filename  string
	CreatedAt time.Time
}
