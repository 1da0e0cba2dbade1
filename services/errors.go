package services

import (
	"errors"
	"fmt"
)

// Domain error codes. All of these are expected, recoverable, caller-facing
// conditions, never process-ending faults.
const (
	CodeInvalidComposition     = "INVALID_COMPOSITION"
	CodeServiceNotFound        = "SERVICE_NOT_FOUND"
	CodePriceNotDiscounted     = "PRICE_NOT_DISCOUNTED"
	CodeDiscountTooSteep       = "DISCOUNT_TOO_STEEP"
	CodePackageNotFound        = "PACKAGE_NOT_FOUND"
	CodePackageInactive        = "PACKAGE_INACTIVE"
	CodePackageExpired         = "PACKAGE_EXPIRED"
	CodePackageNotYetAvailable = "PACKAGE_NOT_YET_AVAILABLE"
	CodeDayNotAllowed          = "DAY_NOT_ALLOWED"
	CodeTimeWindowViolation    = "TIME_WINDOW_VIOLATION"
	CodeInsufficientLeadTime   = "INSUFFICIENT_LEAD_TIME"
	CodeDailyCapacityReached   = "DAILY_CAPACITY_REACHED"
	CodeStaffNotFound          = "STAFF_NOT_FOUND"
	CodeStaffInactive          = "STAFF_INACTIVE"
	CodeStaffConflict          = "STAFF_CONFLICT"
	CodeSalonMismatch          = "SALON_MISMATCH"
	CodeBookingNotFound        = "BOOKING_NOT_FOUND"
	CodeInvalidInput           = "INVALID_INPUT"
)

// DomainError is a structured rejection with a machine code and a
// human-readable reason.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewDomainError(code, message string) *DomainError {
	return &DomainError{Code: code, Message: message}
}

// AsDomainError unwraps err into a DomainError, if it is one. Callers use
// this to distinguish "your request is invalid/unavailable" from "the system
// could not complete the operation".
func AsDomainError(err error) (*DomainError, bool) {
	var de *DomainError
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}

// StorageError wraps a persistence-layer failure with the operation that hit
// it. Kept distinct from DomainError so transport code maps it to a 500.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func wrapStorage(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StorageError{Op: op, Err: err}
}
