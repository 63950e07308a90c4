package models

import (
	"bytes"
	"encoding/json"
	"strings"
)

// ID is a backend identifier. The backend emits both numeric and string IDs, so both decode.
type ID string

// UnmarshalJSON accepts JSON strings and numbers.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*id = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = ID(n.String())
	return nil
}

// String returns the raw identifier.
func (id ID) String() string { return string(id) }

// UserStatus is the account state of a user.
type UserStatus string

const (
	UserStatusActive   UserStatus = "aktif"
	UserStatusInactive UserStatus = "nonaktif"
)

// User is the authenticated identity as returned by the backend.
type User struct {
	ID       ID         `json:"id"`
	Name     string     `json:"name"`
	Email    string     `json:"email"`
	Phone    string     `json:"phone,omitempty"`
	Role     string     `json:"role"`
	Status   UserStatus `json:"status,omitempty"`
	SchoolID ID         `json:"sekolahId,omitempty"`
	Photo    string     `json:"foto,omitempty"`
}

// Merge applies the fields returned by a profile update onto the user.
// Keys that are absent leave the existing value untouched.
func (u *User) Merge(fields map[string]interface{}) {
	if u == nil {
		return
	}
	for key, value := range fields {
		s, ok := value.(string)
		if !ok {
			if n, isNum := value.(json.Number); isNum {
				s, ok = n.String(), true
			}
		}
		if !ok {
			continue
		}
		switch strings.ToLower(key) {
		case "name", "nama":
			u.Name = s
		case "email":
			u.Email = s
		case "phone", "telepon", "no_hp":
			u.Phone = s
		case "foto", "photo":
			u.Photo = s
		case "status":
			u.Status = UserStatus(s)
		}
	}
}

// Pagination is the paging metadata attached to JSON list responses.
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalPages int `json:"totalPages"`
	TotalRows  int `json:"totalRows"`
}
