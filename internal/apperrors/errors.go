package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrUnauthorized indicates that no valid user identity was presented.
var ErrUnauthorized = errors.New("unauthorized")

// ErrForbidden indicates that the authenticated user is not allowed to act on the resource.
var ErrForbidden = errors.New("forbidden")

// ErrNothingToArchive is returned by the month closure when no transaction is eligible.
var ErrNothingToArchive = errors.New("nothing to archive")

// ErrRefreshTokenExpired indicates that the presented refresh token is past its expiry.
var ErrRefreshTokenExpired = errors.New("refresh token expired")

// ErrSubscriptionGone indicates that a push endpoint no longer exists and its
// subscription should be pruned.
var ErrSubscriptionGone = errors.New("push subscription gone")
