package moderator

import "errors"

var (
	// errIncompleteTemplates marks a template file that is missing one
	// of the required buckets.
	errIncompleteTemplates = errors.New("praise templates missing required buckets")
)
