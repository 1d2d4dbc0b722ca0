package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrInvalidOperation indicates an operation that is not allowed in the
// current workflow state, such as removing a seeded debit line or saving
// from a state other than Drafting.
var ErrInvalidOperation = errors.New("invalid operation")

// ErrUnbalanced indicates that a draft voucher's debit and credit totals
// do not match at save time.
var ErrUnbalanced = errors.New("voucher is not balanced")

// ErrPersistence indicates a storage failure while committing a voucher.
// The underlying cause is wrapped alongside it.
var ErrPersistence = errors.New("persistence failure")

// ErrInternal indicates an unexpected internal error.
var ErrInternal = errors.New("internal error")
