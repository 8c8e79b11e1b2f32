package repository

import "errors"

var (
	// ErrAlreadyLiked is returned by Like when the profile already likes the comment.
	ErrAlreadyLiked = errors.New("comment already liked")
	// ErrLikeNotFound is returned by Unlike when there is no like to remove.
	ErrLikeNotFound = errors.New("comment like not found")
)
