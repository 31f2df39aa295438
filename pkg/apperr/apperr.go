package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies an error for the transport boundary. Services return
// *Error values; controllers map Kind to an HTTP status and never inspect
// error strings.
type Kind int

const (
	KindInternal Kind = iota
	KindNotFound
	KindPreconditionFailed
	KindValidationFailed
	KindConflict
)

// Machine-readable codes carried on the wire.
const (
	CodeProductNotFound         = "PRODUCT_NOT_FOUND"
	CodeProductUnavailable      = "PRODUCT_UNAVAILABLE"
	CodeRestaurantInactive      = "RESTAURANT_INACTIVE"
	CodeCartItemNotFound        = "CART_ITEM_NOT_FOUND"
	CodeNoCartsFound            = "NO_CARTS_FOUND"
	CodeInvalidModifierGroup    = "INVALID_MODIFIER_GROUP"
	CodeInvalidModifierOption   = "INVALID_MODIFIER_OPTION"
	CodeModifierGroupMismatch   = "MODIFIER_GROUP_MISMATCH"
	CodeModifiersRequired       = "MODIFIERS_REQUIRED"
	CodeInvalidSelection        = "INVALID_MODIFIER_SELECTION"
	CodeInvalidProductModifiers = "INVALID_PRODUCT_MODIFIERS"
	CodeCartConflict            = "CART_CONFLICT"
	CodePriceChanged            = "PRICE_CHANGED"
	CodeInternal                = "INTERNAL_ERROR"
)

// Detail is one field-level diagnostic. Which fields are set depends on the
// code: cardinality violations fill the bounds, mismatches fill the expected
// and actual group ids.
type Detail struct {
	Code          string `json:"code"`
	GroupID       uint   `json:"groupId,omitempty"`
	OptionID      uint   `json:"optionId,omitempty"`
	ExpectedGroup uint   `json:"expectedGroupId,omitempty"`
	ActualGroup   uint   `json:"actualGroupId,omitempty"`
	MinSelect     int    `json:"minSelect,omitempty"`
	MaxSelect     int    `json:"maxSelect,omitempty"`
	Selected      int    `json:"selected,omitempty"`
	Message       string `json:"message,omitempty"`
}

type Error struct {
	Kind    Kind
	Code    string
	Message string
	Details []Detail
	wrapped error
}

func (e *Error) Error() string {
	if e.wrapped != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.wrapped)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.wrapped }

func NotFound(code, msg string) *Error {
	return &Error{Kind: KindNotFound, Code: code, Message: msg}
}

func PreconditionFailed(code, msg string) *Error {
	return &Error{Kind: KindPreconditionFailed, Code: code, Message: msg}
}

func Validation(code, msg string, details []Detail) *Error {
	return &Error{Kind: KindValidationFailed, Code: code, Message: msg, Details: details}
}

func Conflict(code, msg string) *Error {
	return &Error{Kind: KindConflict, Code: code, Message: msg}
}

// Internal wraps an unexpected error. The wrapped cause is logged server-side
// and never serialized to the client.
func Internal(err error) *Error {
	return &Error{Kind: KindInternal, Code: CodeInternal, Message: "internal error", wrapped: err}
}

// From extracts the *Error from err, wrapping unknown errors as internal.
func From(err error) *Error {
	var ae *Error
	if errors.As(err, &ae) {
		return ae
	}
	return Internal(err)
}
