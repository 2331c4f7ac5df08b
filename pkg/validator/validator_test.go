package validator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func strptr(s string) *string { return &s }
func intptr(n int) *int       { return &n }

func TestValidateSignup(t *testing.T) {
	errs := ValidateSignup("hokie@vt.edu", "Str0ngpass", "female", 21)
	assert.False(t, errs.HasErrors())

	errs = ValidateSignup("", "", "", 0)
	assert.Contains(t, errs, "email")
	assert.Contains(t, errs, "password")
	assert.Contains(t, errs, "gender")
	assert.Contains(t, errs, "age")

	errs = ValidateSignup("hokie@vt.edu", "alllowercase1", "female", 21)
	assert.Contains(t, errs["password"], "uppercase")

	errs = ValidateSignup("hokie@vt.edu", "Str0ngpass", "male", 17)
	assert.Contains(t, errs, "age")
}

func TestValidateSignupGenderIsFreeForm(t *testing.T) {
	for _, gender := range []string{"Male", "Female", "Non-binary", "other"} {
		errs := ValidateSignup("hokie@vt.edu", "Str0ngpass", gender, 21)
		assert.False(t, errs.HasErrors(), gender)
	}

	errs := ValidateSignup("hokie@vt.edu", "Str0ngpass", "  ", 21)
	assert.Contains(t, errs, "gender")

	errs = ValidateSignup("hokie@vt.edu", "Str0ngpass", strings.Repeat("x", 31), 21)
	assert.Contains(t, errs, "gender")
}

func TestValidateVerification(t *testing.T) {
	assert.False(t, ValidateVerification("123456").HasErrors())
	assert.True(t, ValidateVerification("").HasErrors())
	assert.True(t, ValidateVerification("12345").HasErrors())
}

func TestValidateProfileUpdate(t *testing.T) {
	errs := ValidateProfileUpdate(nil, nil, nil, nil, nil, nil)
	assert.False(t, errs.HasErrors(), "absent fields are not validated")

	errs = ValidateProfileUpdate(strptr("Lifter"), strptr("Non-binary"), strptr("Advanced"), intptr(25), strptr("ready to lift"), strptr("555-0100"))
	assert.False(t, errs.HasErrors())

	errs = ValidateProfileUpdate(nil, strptr(""), strptr("Expert"), intptr(12), nil, nil)
	assert.Contains(t, errs, "gender")
	assert.Contains(t, errs, "experience_level")
	assert.Contains(t, errs, "age")

	long := strings.Repeat("x", 201)
	errs = ValidateProfileUpdate(nil, nil, nil, nil, &long, nil)
	assert.Contains(t, errs, "bio")
}

func TestValidateSession(t *testing.T) {
	errs := ValidateSession("Leg day", "McComas Hall", []string{"legs"}, 3)
	assert.False(t, errs.HasErrors())

	errs = ValidateSession("", "", nil, 0)
	assert.Contains(t, errs, "title")
	assert.Contains(t, errs, "gym_location")
	assert.Contains(t, errs, "workout_type")
	assert.Contains(t, errs, "party_size")

	errs = ValidateSession("Leg day", "McComas Hall", []string{"legs"}, 6)
	assert.Contains(t, errs, "party_size")
}

func TestValidateSessionWorkoutTypeRequired(t *testing.T) {
	errs := ValidateSession("Leg day", "McComas Hall", []string{}, 3)
	assert.Contains(t, errs, "workout_type")

	errs = ValidateSession("Leg day", "McComas Hall", []string{" "}, 3)
	assert.Contains(t, errs, "workout_type")
}

func TestValidateSessionUpdate(t *testing.T) {
	errs := ValidateSessionUpdate(nil, nil, nil, nil)
	assert.False(t, errs.HasErrors(), "absent fields are not validated")

	errs = ValidateSessionUpdate(strptr(""), strptr(" "), []string{}, intptr(0))
	assert.Contains(t, errs, "title")
	assert.Contains(t, errs, "gym_location")
	assert.Contains(t, errs, "workout_type")
	assert.Contains(t, errs, "party_size")
}
