package usecase

import "errors"

var (
	// ErrBelowThreshold is returned when the detection score is below the
	// requested threshold.
	ErrBelowThreshold = errors.New("language score below threshold")

	// ErrUnsupportedLanguage is returned when no pipeline is available for
	// the detected language.
	ErrUnsupportedLanguage = errors.New("unsupported language")

	// ErrMissingCapability is returned when a supplied pipeline cannot
	// segment sentences but sentences were requested.
	ErrMissingCapability = errors.New("pipeline lacks sentence segmentation")

	// ErrInvalidModel is returned when a supplied pipeline is nil.
	ErrInvalidModel = errors.New("invalid pipeline")
)
