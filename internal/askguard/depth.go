package askguard

import "github.com/swipewise/swipewise/internal/model"

// ResolveDepth picks the answer depth. Resolution order: an explicit
// request wins as-is, then the stored preference, then a profile-derived
// default, then beginner. Only the derived default consults experience;
// a user who asks for a depth gets that depth.
func ResolveDepth(requested model.AnswerDepth, profile *model.CreditProfile, calibration *model.CalibrationAnswers) model.AnswerDepth {
	if requested.Valid() {
		return requested
	}
	if profile == nil {
		return model.DepthBeginner
	}
	if profile.PreferredDepth.Valid() {
		return profile.PreferredDepth
	}
	return derivedDepth(profile, calibration)
}

// derivedDepth maps experience plus calibration results onto a depth.
func derivedDepth(profile *model.CreditProfile, calibration *model.CalibrationAnswers) model.AnswerDepth {
	switch profile.Experience {
	case model.ExperienceAdvanced:
		return model.DepthAdvanced
	case model.ExperienceSome:
		// Calibration answers promote a "some experience" user who
		// clearly knows the fundamentals.
		if calibration != nil && calibration.Completed &&
			calibration.KnowsUtilization && calibration.KnowsAPR {
			return model.DepthAdvanced
		}
		return model.DepthIntermediate
	default:
		return model.DepthBeginner
	}
}
