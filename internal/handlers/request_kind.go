package handlers

import (
	"net/http"
	"strings"
)

// RequestKind is the operation a books request maps to
type RequestKind int

const (
	KindUnknown RequestKind = iota
	KindList
	KindGet
	KindCreate
	KindEdit
	KindDelete
)

// String returns the operation name used in logs
func (k RequestKind) String() string {
	switch k {
	case KindList:
		return "list"
	case KindGet:
		return "get"
	case KindCreate:
		return "create"
	case KindEdit:
		return "edit"
	case KindDelete:
		return "delete"
	default:
		return "unknown"
	}
}

// ClassifyRequest maps a method and the presence of a path id to an
// operation. POST ignores the id; PUT and DELETE without one still classify
// so that the missing id is reported as invalid.
func ClassifyRequest(method string, hasID bool) RequestKind {
	switch strings.ToUpper(method) {
	case http.MethodGet:
		if hasID {
			return KindGet
		}
		return KindList
	case http.MethodPost:
		return KindCreate
	case http.MethodPut:
		return KindEdit
	case http.MethodDelete:
		return KindDelete
	default:
		return KindUnknown
	}
}
