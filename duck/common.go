package duck

import (
	"errors"
)

var ErrEmptyNamespaceSupplied = errors.New("empty namespace supplied")
var ErrEmptyActionNameSupplied = errors.New("empty action name supplied")
var ErrNilHandlerSupplied = errors.New("nil handler supplied")
var ErrDuplicateActionName = errors.New("action name is already registered on this duck")
var ErrDuckSealed = errors.New("duck is sealed, registrations after the reducer was built are not allowed")

type NamespaceString = string
type ActionNameString = string
type ActionTypeString = string
