package content

import (
	"errors"
	"regexp"
	"strings"
)

// Class buckets every requested path into exactly one resource class.
// Classification is a pure function of the path prefix, independent of
// request time or caller identity.
type Class string

const (
	ClassPublicAsset  Class = "PUBLIC_ASSET"
	ClassFreePreview  Class = "FREE_PREVIEW"
	ClassGatedPreview Class = "GATED_PREVIEW"
	ClassGatedFull    Class = "GATED_FULL"
)

// ErrInvalidFilename marks a resource name that fails the allow-list.
var ErrInvalidFilename = errors.New("content: invalid filename")

// filenamePattern is the strict allow-list for servable files: ASCII
// letters, digits, underscore, hyphen, single .html extension. Anything
// else, including path separators and parent-directory segments, is
// rejected before auth ever runs.
var filenamePattern = regexp.MustCompile(`^[A-Za-z0-9_-]+\.html$`)

// ValidateFilename checks a requested name against the allow-list.
func ValidateFilename(name string) error {
	if !filenamePattern.MatchString(name) {
		return ErrInvalidFilename
	}
	return nil
}

// Classify maps a request path onto its resource class via a static
// prefix table.
func Classify(path string) Class {
	switch {
	case strings.HasPrefix(path, "/premium/full/"):
		return ClassGatedFull
	case strings.HasPrefix(path, "/content/"):
		return ClassGatedPreview
	case strings.HasPrefix(path, "/serve-preview/"), strings.HasPrefix(path, "/premium/preview/"):
		return ClassFreePreview
	default:
		return ClassPublicAsset
	}
}

// Dir returns the store subdirectory holding files of the class. Gated
// previews serve the raw source of the preview artifacts, so they share
// the preview directory.
func (c Class) Dir() string {
	switch c {
	case ClassFreePreview, ClassGatedPreview:
		return "premium/preview"
	case ClassGatedFull:
		return "premium/full"
	default:
		return "assets"
	}
}
