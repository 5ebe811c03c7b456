package errors

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// ErrorInfo pairs an error code with a user-facing message.
type ErrorInfo struct {
	Code    string
	Message string
}

// ParseError turns a lower-layer error into a code and message that are
// safe to show. Driver details never leak to the response.
func ParseError(err error, context string) ErrorInfo {
	if err == nil {
		return ErrorInfo{
			Code:    InternalServerError,
			Message: "Diçka shkoi keq, provoni përsëri më vonë",
		}
	}

	errStrLower := strings.ToLower(err.Error())

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrorInfo{
			Code:    notFoundCode(context),
			Message: notFoundMessage(context),
		}
	}

	// PostgreSQL constraint violations.
	if strings.Contains(errStrLower, "duplicate key") || strings.Contains(errStrLower, "unique constraint") {
		return ErrorInfo{
			Code:    ResourceAlreadyExists,
			Message: "Këto të dhëna ekzistojnë tashmë",
		}
	}
	if strings.Contains(errStrLower, "violates not-null constraint") {
		return ErrorInfo{
			Code:    ValidationRequired,
			Message: "Mungon një fushë e detyrueshme",
		}
	}

	// Network errors from the mail and storage providers.
	if strings.Contains(errStrLower, "connection refused") ||
		strings.Contains(errStrLower, "no such host") ||
		strings.Contains(errStrLower, "timeout") {
		return ErrorInfo{
			Code:    InternalExternalAPI,
			Message: "Shërbimi i jashtëm nuk u përgjigj, provoni përsëri më vonë",
		}
	}

	return ErrorInfo{
		Code:    InternalServerError,
		Message: "Diçka shkoi keq, provoni përsëri më vonë",
	}
}

func notFoundCode(context string) string {
	contextLower := strings.ToLower(context)

	if strings.Contains(contextLower, "product") {
		return ProductNotFound
	}
	if strings.Contains(contextLower, "order") {
		return OrderNotFound
	}
	return InternalServerError
}

func notFoundMessage(context string) string {
	contextLower := strings.ToLower(context)

	if strings.Contains(contextLower, "product") {
		return "Produkti nuk u gjet"
	}
	if strings.Contains(contextLower, "order") {
		return "Porosia nuk u gjet"
	}
	return "Të dhënat e kërkuara nuk u gjetën"
}
