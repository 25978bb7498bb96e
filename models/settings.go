package models

import "time"

// SettingKey names one recognized site setting
type SettingKey string

const (
	SettingSiteName     SettingKey = "siteName"
	SettingContactEmail SettingKey = "contactEmail"
	SettingContactPhone SettingKey = "contactPhone"
	SettingDescription  SettingKey = "description"
)

// SettingKeys lists every recognized setting
var SettingKeys = []SettingKey{
	SettingSiteName,
	SettingContactEmail,
	SettingContactPhone,
	SettingDescription,
}

// ParseSettingKey returns the key for s, or false when s is not a recognized setting
func ParseSettingKey(s string) (SettingKey, bool) {
	for _, k := range SettingKeys {
		if string(k) == s {
			return k, true
		}
	}
	return "", false
}

// Settings is the typed view over the settings table
type Settings struct {
	SiteName     string    `json:"siteName"`
	ContactEmail string    `json:"contactEmail"`
	ContactPhone string    `json:"contactPhone"`
	Description  string    `json:"description"`
	UpdatedAt    time.Time `json:"updatedAt,omitempty"`
}

// Get returns the value stored for key
func (s *Settings) Get(key SettingKey) string {
	switch key {
	case SettingSiteName:
		return s.SiteName
	case SettingContactEmail:
		return s.ContactEmail
	case SettingContactPhone:
		return s.ContactPhone
	case SettingDescription:
		return s.Description
	}
	return ""
}

// Set stores value under key
func (s *Settings) Set(key SettingKey, value string) {
	switch key {
	case SettingSiteName:
		s.SiteName = value
	case SettingContactEmail:
		s.ContactEmail = value
	case SettingContactPhone:
		s.ContactPhone = value
	case SettingDescription:
		s.Description = value
	}
}

// UpdateSettingRequest represents the request body for PUT /api/admin/settings/{key}
// Example: {"value": "info@koon7r.com"}
type UpdateSettingRequest struct {
	Value string `json:"value"`
}
