package structure

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrSectionTitleRequired  = errors.New("structure: section title is required")
	ErrSectionIDRequired     = errors.New("structure: section id is required")
	ErrSectionNotFound       = errors.New("structure: section not found")
	ErrDocumentTitleRequired = errors.New("structure: document title is required")
	ErrDocumentIDRequired    = errors.New("structure: document id is required")
	ErrSlugRequired          = errors.New("structure: slug is required")
	ErrSlugInvalid           = errors.New("structure: slug contains invalid characters")
	ErrSlugExists            = errors.New("structure: slug already exists")
)

// NotFoundError reports a missing record by resource and lookup key.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	if e == nil {
		return "structure: not found"
	}
	return fmt.Sprintf("structure: %s not found: %s", e.Resource, e.Key)
}

// IsNotFound reports whether err represents a missing section or document.
func IsNotFound(err error) bool {
	if err == nil {
		return false
	}
	var nf *NotFoundError
	if errors.As(err, &nf) {
		return true
	}
	return errors.Is(err, ErrSectionNotFound)
}

// SlugExistsError captures slug uniqueness conflicts surfaced at write time.
type SlugExistsError struct {
	Slug string
}

func (e *SlugExistsError) Error() string {
	if e == nil {
		return ErrSlugExists.Error()
	}
	if slug := strings.TrimSpace(e.Slug); slug != "" {
		return fmt.Sprintf("%s: slug=%s", ErrSlugExists.Error(), slug)
	}
	return ErrSlugExists.Error()
}

func (e *SlugExistsError) Unwrap() error {
	return ErrSlugExists
}
