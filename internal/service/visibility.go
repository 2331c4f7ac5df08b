package service

// genderVisible applies the two-sided gender-visibility rule that runs
// last in both discovery pipelines. Both directions must hold:
//
//   - a viewer who opted into viewSameGenderOnly sees only records
//     whose owner shares their gender;
//   - a record restricted to same-gender viewers (profile flag or
//     session flag) is only visible to viewers sharing the owner's
//     gender.
func genderVisible(viewerGender string, viewerSameGenderOnly bool, ownerGender string, ownerSameGenderOnly bool) bool {
	if viewerSameGenderOnly && ownerGender != viewerGender {
		return false
	}
	if ownerSameGenderOnly && ownerGender != viewerGender {
		return false
	}
	return true
}
