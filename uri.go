package jsonschema

import "net/url"

// ResolveURI resolves relativeURI against baseURI, returning relativeURI unchanged if it
// is already absolute or if either URI fails to parse. This is the exported counterpart of
// the resolution utils.go already performs during compilation, for callers (catalogues,
// loaders, the CLI) that need the same resolution rules outside a compile pass.
func ResolveURI(baseURI, relativeURI string) string {
	return resolveRelativeURI(baseURI, relativeURI)
}

// IsAbsoluteURI reports whether uri has both a scheme and a host.
func IsAbsoluteURI(uri string) bool {
	return isAbsoluteURI(uri)
}

// BaseURI returns the directory-level base URI implied by id, the empty string if id does
// not parse or carries no scheme/host.
func BaseURI(id string) string {
	return getBaseURI(id)
}

// SplitFragment splits a URI into its pre-fragment and fragment parts.
func SplitFragment(ref string) (baseURI string, fragment string) {
	return splitRef(ref)
}

// NormalizeURI parses and re-serializes uri. Dot segments in the path (e.g. "a/./b" and
// "a/../b") are kept as they are, not removed. Returns uri unchanged if it does not parse
// as a URI.
func NormalizeURI(uri string) string {
	u, err := url.Parse(uri)
	if err != nil {
		return uri
	}
	return u.String()
}
