package serviceerrors

import (
	"errors"
	"fmt"
)

type ErrorKind int

const (
	KindNotFound ErrorKind = iota
	KindConflict
	KindUnprocessableEntity
	KindValidation
	KindDuplicateSKU
	KindInsufficientStock
	KindInvalidTransition
)

func (k ErrorKind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindUnprocessableEntity:
		return "unprocessable_entity"
	case KindValidation:
		return "validation_error"
	case KindDuplicateSKU:
		return "duplicate_sku"
	case KindInsufficientStock:
		return "insufficient_stock"
	case KindInvalidTransition:
		return "invalid_transition"
	default:
		return "unknown"
	}
}

func IsOfKind(err error, kind ErrorKind) bool {
	var svcErr *ServiceError
	if errors.As(err, &svcErr) {
		return svcErr.Kind == kind
	}
	return false
}

type ServiceError struct {
	Kind    ErrorKind
	Message string
}

func (e *ServiceError) Error() string {
	return e.Message
}

func NewNotFoundError(message string) *ServiceError {
	return &ServiceError{Kind: KindNotFound, Message: message}
}

func NewConflictError(message string) *ServiceError {
	return &ServiceError{Kind: KindConflict, Message: message}
}

func NewUnprocessableEntityError(message string) *ServiceError {
	return &ServiceError{Kind: KindUnprocessableEntity, Message: message}
}

func NewValidationError(message string) *ServiceError {
	return &ServiceError{Kind: KindValidation, Message: message}
}

func NewDuplicateSKUError(sku string) *ServiceError {
	return &ServiceError{Kind: KindDuplicateSKU, Message: fmt.Sprintf("sku %q already exists", sku)}
}

func NewInsufficientStockError(productName string, available, requested int) *ServiceError {
	return &ServiceError{
		Kind:    KindInsufficientStock,
		Message: fmt.Sprintf("insufficient stock for %s: available %d, requested %d", productName, available, requested),
	}
}

func NewInvalidTransitionError(entity string, from, to string) *ServiceError {
	return &ServiceError{
		Kind:    KindInvalidTransition,
		Message: fmt.Sprintf("%s cannot move from %s to %s", entity, from, to),
	}
}
