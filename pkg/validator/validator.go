package validator

import (
	"fmt"
	"net/mail"
	"strings"
	"unicode"
)

type ValidationErrors map[string]string

func (v ValidationErrors) HasErrors() bool {
	return len(v) > 0
}

func (v ValidationErrors) Add(field, message string) {
	v[field] = message
}

var experienceLevels = map[string]bool{
	"Beginner":     true,
	"Intermediate": true,
	"Advanced":     true,
}

func ValidateSignup(email, password, gender string, age int) ValidationErrors {
	errs := make(ValidationErrors)

	validateEmail(email, errs)
	validatePassword(password, errs)
	validateGender(gender, errs)
	validateAge(age, errs)

	return errs
}

func ValidateLogin(email, password string) ValidationErrors {
	errs := make(ValidationErrors)

	validateEmail(email, errs)
	if password == "" {
		errs.Add("password", "Password is required")
	}

	return errs
}

func ValidateVerification(code string) ValidationErrors {
	errs := make(ValidationErrors)

	code = strings.TrimSpace(code)
	if code == "" {
		errs.Add("code", "Verification code is required")
	} else if len(code) != 6 {
		errs.Add("code", "Verification code must be 6 digits")
	}

	return errs
}

// ValidateProfileUpdate checks only the fields present in the request.
func ValidateProfileUpdate(displayName, gender, experienceLevel *string, age *int, bio, phoneNumber *string) ValidationErrors {
	errs := make(ValidationErrors)

	if displayName != nil && len(strings.TrimSpace(*displayName)) > 50 {
		errs.Add("display_name", "Display name is too long")
	}
	if bio != nil && len(*bio) > 200 {
		errs.Add("bio", "Bio must be at most 200 characters")
	}
	if gender != nil {
		validateGender(*gender, errs)
	}
	if experienceLevel != nil && !experienceLevels[*experienceLevel] {
		errs.Add("experience_level", "Experience level must be Beginner, Intermediate, or Advanced")
	}
	if age != nil {
		validateAge(*age, errs)
	}
	if phoneNumber != nil && len(*phoneNumber) > 20 {
		errs.Add("phone_number", "Phone number is too long")
	}

	return errs
}

func ValidateSession(title, gymLocation string, workoutType []string, partySize int) ValidationErrors {
	errs := make(ValidationErrors)

	title = strings.TrimSpace(title)
	if title == "" {
		errs.Add("title", "Title is required")
	} else if len(title) > 100 {
		errs.Add("title", "Title is too long")
	}

	gymLocation = strings.TrimSpace(gymLocation)
	if gymLocation == "" {
		errs.Add("gym_location", "Gym location is required")
	} else if len(gymLocation) > 200 {
		errs.Add("gym_location", "Gym location is too long")
	}

	validateWorkoutType(workoutType, errs)
	validatePartySize(partySize, errs)

	return errs
}

// ValidateSessionUpdate checks only the fields present in the request.
func ValidateSessionUpdate(title, gymLocation *string, workoutType []string, partySize *int) ValidationErrors {
	errs := make(ValidationErrors)

	if title != nil {
		t := strings.TrimSpace(*title)
		if t == "" {
			errs.Add("title", "Title cannot be empty")
		} else if len(t) > 100 {
			errs.Add("title", "Title is too long")
		}
	}
	if gymLocation != nil {
		l := strings.TrimSpace(*gymLocation)
		if l == "" {
			errs.Add("gym_location", "Gym location cannot be empty")
		} else if len(l) > 200 {
			errs.Add("gym_location", "Gym location is too long")
		}
	}
	if workoutType != nil {
		validateWorkoutType(workoutType, errs)
	}
	if partySize != nil {
		validatePartySize(*partySize, errs)
	}

	return errs
}

// validateWorkoutType requires at least one non-blank tag.
func validateWorkoutType(workoutType []string, errs ValidationErrors) {
	for _, tag := range workoutType {
		if strings.TrimSpace(tag) != "" {
			return
		}
	}
	errs.Add("workout_type", "At least one workout type is required")
}

func validateEmail(email string, errs ValidationErrors) {
	email = strings.TrimSpace(email)
	if email == "" {
		errs.Add("email", "Email is required")
	} else if _, err := mail.ParseAddress(email); err != nil {
		errs.Add("email", "Invalid email address")
	}
}

// validateGender requires a short non-empty label. Matching is plain
// string equality downstream, so no value list is imposed here.
func validateGender(gender string, errs ValidationErrors) {
	gender = strings.TrimSpace(gender)
	if gender == "" {
		errs.Add("gender", "Gender is required")
	} else if len(gender) > 30 {
		errs.Add("gender", "Gender is too long")
	}
}

func validateAge(age int, errs ValidationErrors) {
	if age < 18 {
		errs.Add("age", "You must be at least 18")
	} else if age > 120 {
		errs.Add("age", "Invalid age")
	}
}

func validatePartySize(size int, errs ValidationErrors) {
	if size < 1 || size > 5 {
		errs.Add("party_size", "Party size must be between 1 and 5")
	}
}

func validatePassword(password string, errs ValidationErrors) {
	if len(password) < 8 {
		errs.Add("password", "Password must be at least 8 characters")
		return
	}

	var hasUpper, hasLower, hasDigit bool
	for _, ch := range password {
		switch {
		case unicode.IsUpper(ch):
			hasUpper = true
		case unicode.IsLower(ch):
			hasLower = true
		case unicode.IsDigit(ch):
			hasDigit = true
		}
	}

	missing := []string{}
	if !hasUpper {
		missing = append(missing, "one uppercase letter")
	}
	if !hasLower {
		missing = append(missing, "one lowercase letter")
	}
	if !hasDigit {
		missing = append(missing, "one number")
	}

	if len(missing) > 0 {
		errs.Add("password", fmt.Sprintf("Password must contain at least %s", strings.Join(missing, ", ")))
	}
}
