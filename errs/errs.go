package errs

import (
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type Kind int

const (
	Unknown Kind = iota
	NotFound
	AlreadyExists
	PermissionDenied
	InvalidArgument
	AuthFailure
)

func (k Kind) String() string {
	switch k {
	case NotFound:
		return "NotFound"
	case AlreadyExists:
		return "AlreadyExists"
	case PermissionDenied:
		return "PermissionDenied"
	case InvalidArgument:
		return "InvalidArgument"
	case AuthFailure:
		return "AuthFailure"
	}
	return "Unknown"
}

// Error is a coded backend error. Two errors are the same when their codes
// match, so a sentinel with extra detail still satisfies errors.Is.
type Error struct {
	Code    string
	Kind    Kind
	Message string

	cause error
}

func (e *Error) Error() string {
	return e.Code + ": " + e.Message
}

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

func (e *Error) GRPCStatus() *status.Status {
	return status.New(e.Kind.code(), e.Error())
}

// Unwrap exposes the cause, so driver error labels stay reachable through
// errors.As. The cause never reaches the wire.
func (e *Error) Unwrap() error {
	return e.cause
}

// WithDetail returns a copy of e whose message ends with detail.
func (e *Error) WithDetail(detail string) *Error {
	return &Error{Code: e.Code, Kind: e.Kind, Message: e.Message + ": " + detail, cause: e.cause}
}

// WithCause returns a copy of e that wraps cause.
func (e *Error) WithCause(cause error) *Error {
	return &Error{Code: e.Code, Kind: e.Kind, Message: e.Message, cause: cause}
}

func newError(code string, kind Kind, msg string) *Error {
	return &Error{Code: code, Kind: kind, Message: msg}
}

var (
	ErrNotImplemented         = newError("E0000", Unknown, "not implemented")
	ErrEmailRequired          = newError("E0001", InvalidArgument, "email is required")
	ErrPasswordRequired       = newError("E0002", InvalidArgument, "password is required")
	ErrInvalidEmailOrPassword = newError("E0003", AuthFailure, "invalid email or password")
	ErrDatabase               = newError("E0004", Unknown, "database error")
	ErrCryptographic          = newError("E0005", Unknown, "cryptographic failure")
	ErrJWT                    = newError("E0006", AuthFailure, "JWT failure")
	ErrNameRequired           = newError("E0007", InvalidArgument, "name is required")
	ErrEmailAddressFormat     = newError("E0008", InvalidArgument, "email address format incorrect")
	ErrInvalidRole            = newError("E0009", InvalidArgument, "invalid role")
	ErrAlreadyExists          = newError("E0010", AlreadyExists, "email already in use")
	ErrTokenExpired           = newError("E0011", AuthFailure, "token expired")
	ErrUnauthorized           = newError("E0012", AuthFailure, "must be logged in")
	ErrInvalidStatus          = newError("E0013", InvalidArgument, "invalid attendance status")
	ErrNotFound               = newError("E0014", NotFound, "not found")
	ErrInvalidID              = newError("E0015", InvalidArgument, "invalid ID")
	ErrNotAdmin               = newError("E0016", PermissionDenied, "only admins can do this")
	ErrPermissionDenied       = newError("E0017", PermissionDenied, "permission denied")
	ErrMail                   = newError("E0018", Unknown, "error sending email")
	ErrInvalidResetToken      = newError("E0019", AuthFailure, "reset token invalid")
	ErrQueue                  = newError("E0020", Unknown, "queue error")
	ErrWrongPassword          = newError("E0021", AuthFailure, "current password is incorrect")
	ErrWeakPassword           = newError("E0022", AuthFailure, "new password must be at least 6 characters")
	ErrRateLimited            = newError("E0023", AuthFailure, "too many requests, try again later")
	ErrTeacherCreatesStudents = newError("E0024", PermissionDenied, "teachers can only create students")
	ErrStudentCannotCreate    = newError("E0025", PermissionDenied, "students cannot create users")
	ErrAdminUndeletable       = newError("E0026", PermissionDenied, "admin accounts cannot be deleted")
	ErrCallerNotFound         = newError("E0027", NotFound, "caller user data not found")
	ErrInvalidDate            = newError("E0028", InvalidArgument, "invalid date")
	ErrNotTeacher             = newError("E0029", InvalidArgument, "user is not a teacher")
	ErrNotStudent             = newError("E0030", InvalidArgument, "user is not a student")
	ErrUserIDRequired         = newError("E0031", InvalidArgument, "user ID is required")
	ErrValidation             = newError("E0032", InvalidArgument, "missing or invalid fields")
	ErrMessageRequired        = newError("E0033", InvalidArgument, "message is required")
)

// KindOf classifies err. Status errors coming back over the wire are mapped
// from their gRPC code.
func KindOf(err error) Kind {
	if err == nil {
		return Unknown
	}

	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}

	if s, ok := status.FromError(err); ok {
		switch s.Code() {
		case codes.NotFound:
			return NotFound
		case codes.AlreadyExists:
			return AlreadyExists
		case codes.PermissionDenied:
			return PermissionDenied
		case codes.InvalidArgument:
			return InvalidArgument
		case codes.Unauthenticated:
			return AuthFailure
		}
	}

	return Unknown
}

func (k Kind) code() codes.Code {
	switch k {
	case NotFound:
		return codes.NotFound
	case AlreadyExists:
		return codes.AlreadyExists
	case PermissionDenied:
		return codes.PermissionDenied
	case InvalidArgument:
		return codes.InvalidArgument
	case AuthFailure:
		return codes.Unauthenticated
	}
	return codes.Unknown
}
