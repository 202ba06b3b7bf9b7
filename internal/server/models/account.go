package models

import (
	"strings"
	"time"
)

// Role distinguishes the two kinds of portal accounts. It is fixed at
// registration and never changes afterwards.
type Role string

const (
	RoleStudent   Role = "student"
	RoleRecruiter Role = "recruiter"
)

func (r Role) Valid() bool {
	return r == RoleStudent || r == RoleRecruiter
}

// RecoveryQuestionUnset is the placeholder value the signup form submits when
// no question has been chosen. It is never a valid stored value.
const RecoveryQuestionUnset = "select"

// RecoveryQuestions is the fixed set of security questions an account may
// choose from.
var RecoveryQuestions = []string{
	"What's your pet name?",
	"What was your chilhood nickname?",
	"Which city you born in?",
}

func ValidRecoveryQuestion(q string) bool {
	if q == RecoveryQuestionUnset {
		return false
	}
	for _, known := range RecoveryQuestions {
		if q == known {
			return true
		}
	}
	return false
}

// Profile holds the mutable, free-form attributes of an account.
type Profile struct {
	Bio                string
	Skills             []string
	Resume             string
	ResumeOriginalName string
	ProfilePhoto       string
}

// Account is a persisted user identity. Password and recovery answer are
// stored only as one-way salted hashes.
type Account struct {
	ID                 string
	FullName           string
	Email              string
	PhoneNumber        string
	PasswordHash       string
	Role               Role
	RecoveryQuestion   string
	RecoveryAnswerHash string
	Profile            Profile
	CreatedAt          time.Time
}

// StagedFile references a file already written to local storage by the
// intake layer, before it is handed to the upload operation.
type StagedFile struct {
	LocalPath    string
	SizeBytes    int64
	OriginalName string
}

// ProfileView is the wire shape of Profile.
type ProfileView struct {
	Bio                string   `json:"bio"`
	Skills             []string `json:"skills"`
	Resume             string   `json:"resume,omitempty"`
	ResumeOriginalName string   `json:"resumeOriginalName,omitempty"`
	ProfilePhoto       string   `json:"profilePhoto,omitempty"`
}

// AccountView is the sanitized account representation returned to clients.
// It never carries the password or recovery-answer hashes.
type AccountView struct {
	ID          string      `json:"_id"`
	FullName    string      `json:"fullname"`
	Email       string      `json:"email"`
	PhoneNumber string      `json:"phoneNumber"`
	Role        Role        `json:"role"`
	Profile     ProfileView `json:"profile"`
}

func (a *Account) View() *AccountView {
	return &AccountView{
		ID:          a.ID,
		FullName:    a.FullName,
		Email:       a.Email,
		PhoneNumber: a.PhoneNumber,
		Role:        a.Role,
		Profile: ProfileView{
			Bio:                a.Profile.Bio,
			Skills:             a.Profile.Skills,
			Resume:             a.Profile.Resume,
			ResumeOriginalName: a.Profile.ResumeOriginalName,
			ProfilePhoto:       a.Profile.ProfilePhoto,
		},
	}
}

// ParseSkills splits a comma-delimited skills string into an ordered list of
// trimmed, non-empty tokens.
func ParseSkills(s string) []string {
	parts := strings.Split(s, ",")
	skills := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			skills = append(skills, trimmed)
		}
	}
	return skills
}
