package models

import (
	"reflect"
	"testing"
)

func TestValidRecoveryQuestion(t *testing.T) {
	for _, q := range RecoveryQuestions {
		if !ValidRecoveryQuestion(q) {
			t.Fatalf("known question rejected: %q", q)
		}
	}
	if ValidRecoveryQuestion(RecoveryQuestionUnset) {
		t.Fatal("unset sentinel accepted")
	}
	if ValidRecoveryQuestion("What's your favourite color?") {
		t.Fatal("unknown question accepted")
	}
}

func TestRoleValid(t *testing.T) {
	if !RoleStudent.Valid() || !RoleRecruiter.Valid() {
		t.Fatal("known roles rejected")
	}
	if Role("admin").Valid() || Role("").Valid() {
		t.Fatal("unknown role accepted")
	}
}

func TestParseSkills(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"Go,SQL", []string{"Go", "SQL"}},
		{" Go , SQL ,, ", []string{"Go", "SQL"}},
		{"", []string{}},
		{"single", []string{"single"}},
	}
	for _, tt := range tests {
		got := ParseSkills(tt.in)
		if !reflect.DeepEqual(got, tt.want) {
			t.Fatalf("ParseSkills(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestAccountView_OmitsSensitiveFields(t *testing.T) {
	a := &Account{
		ID:                 "a1",
		FullName:           "Joe",
		Email:              "joe@x.com",
		PasswordHash:       "$2a$10$hash",
		RecoveryAnswerHash: "$2a$10$answer",
		Role:               RoleStudent,
	}

	v := a.View()
	if v.ID != "a1" || v.FullName != "Joe" || v.Email != "joe@x.com" {
		t.Fatalf("view lost identity fields: %+v", v)
	}

	// The view type must not expose hash fields at all.
	typ := reflect.TypeOf(*v)
	for i := 0; i < typ.NumField(); i++ {
		name := typ.Field(i).Name
		if name == "PasswordHash" || name == "RecoveryAnswerHash" {
			t.Fatalf("sanitized view exposes %s", name)
		}
	}
}
