package warehouse

import (
	"errors"
	"fmt"
)

type ErrorKind int

const (
	Unknown ErrorKind = iota
	NotFound
	AlreadyExists
	TransientFailure
	PermissionDenied
)

func (k ErrorKind) String() string {
	return [...]string{"Unknown", "NotFound", "AlreadyExists", "TransientFailure", "PermissionDenied"}[k]
}

// ResourceError is the outcome of a failed call against the cloud provider.
type ResourceError struct {
	Kind     ErrorKind
	Resource string
	Name     string
	Err      error
}

func NewResourceError(kind ErrorKind, resource string, name string, err error) *ResourceError {
	return &ResourceError{Kind: kind, Resource: resource, Name: name, Err: err}
}

func (e *ResourceError) Error() string {
	return fmt.Sprintf("%s %s: %s: %v", e.Resource, e.Name, e.Kind.String(), e.Err)
}

func (e *ResourceError) Unwrap() error {
	return e.Err
}

func KindOf(err error) ErrorKind {
	var resourceError *ResourceError
	if errors.As(err, &resourceError) {
		return resourceError.Kind
	}
	return Unknown
}

func IsNotFound(err error) bool {
	return KindOf(err) == NotFound
}

func IsAlreadyExists(err error) bool {
	return KindOf(err) == AlreadyExists
}

func IsTransient(err error) bool {
	return KindOf(err) == TransientFailure
}

func IsPermissionDenied(err error) bool {
	return KindOf(err) == PermissionDenied
}

var ErrPublicIPUnavailable = errors.New("failed to retrieve public IP address")
