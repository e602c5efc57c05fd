package upload

import "errors"

var (
	ErrInvalidFileType = errors.New("only JPEG, PNG, and WebP images are allowed")
	ErrFileTooLarge    = errors.New("file size must be less than 5MB")
	ErrTooManyImages   = errors.New("maximum number of images reached")
	ErrDuplicateImage  = errors.New("this image URL is already added")
	ErrInvalidImageURL = errors.New("please enter a valid URL")
)
