package models

// FilterState is the last filter criteria applied by one login session of a
// user, stored as the raw request values.
type FilterState struct {
	Base
	UserID    uint              `gorm:"not null;uniqueIndex:idx_filter_states_user_session" json:"user_id"`
	SessionID string            `gorm:"size:36;not null;uniqueIndex:idx_filter_states_user_session" json:"session_id"`
	Criteria  map[string]string `gorm:"serializer:json;type:text" json:"criteria"`

	User *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}
