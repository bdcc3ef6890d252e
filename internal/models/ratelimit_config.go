package models

import "time"

// RatelimitConfig is the database-backed rate limit setting. Rate uses the
// limiter's "<count>-<period>" notation, for example "100-M" for a hundred
// requests per minute.
type RatelimitConfig struct {
	ConfigKey string    `json:"config_key"`
	Rate      string    `json:"rate"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
