package entities

import (
	"encoding/json"
	"fmt"
	"strings"
)

const (
	componentsRoot = "Components"
	componentURL   = "url"
	refSeparator   = ";"

	// DefaultManifestExtension is the file extension of a packaging manifest.
	DefaultManifestExtension = ".vsman"
)

// ComponentManifestRef is the artifact location and manifest file declared for one component.
type ComponentManifestRef struct {
	ArtifactURL      string
	ManifestFileName string
}

// ExtractManifestRef reads `Components.<component>.url` from a components JSON document
// and splits it into the artifact URL and the manifest file name.
// The component name is used verbatim, dots included.
func ExtractManifestRef(document []byte, component, extension string) (ComponentManifestRef, error) {
	var root any
	if err := json.Unmarshal(document, &root); err != nil {
		return ComponentManifestRef{}, fmt.Errorf("%w: components JSON: %w", ErrMalformedDocument, err)
	}

	raw, err := lookupComponentURL(root, component)
	if err != nil {
		return ComponentManifestRef{}, err
	}

	parts := strings.Split(raw, refSeparator)
	if len(parts) != 2 {
		return ComponentManifestRef{}, fmt.Errorf(
			"%w: couldn't get URL and manifest for %q, got: %q", ErrMalformedReference, component, raw,
		)
	}

	if !strings.HasSuffix(parts[1], extension) {
		return ComponentManifestRef{}, fmt.Errorf(
			"%w: couldn't get URL and manifest for %q, not a %s file? got: %q",
			ErrMalformedReference, component, extension, raw,
		)
	}

	return ComponentManifestRef{ArtifactURL: parts[0], ManifestFileName: parts[1]}, nil
}

// lookupComponentURL walks the field path; any missing step, including a root that is not an
// object, is a missing field.
func lookupComponentURL(root any, component string) (string, error) {
	path := componentsRoot + "." + component + "." + componentURL

	object, ok := root.(map[string]any)
	if !ok {
		return "", fmt.Errorf("%w: field %q is missing", ErrMalformedReference, path)
	}
	components, ok := object[componentsRoot].(map[string]any)
	if !ok {
		return "", fmt.Errorf("%w: field %q is missing", ErrMalformedReference, path)
	}
	entry, ok := components[component].(map[string]any)
	if !ok {
		return "", fmt.Errorf("%w: field %q is missing", ErrMalformedReference, path)
	}
	value, present := entry[componentURL]
	if !present {
		return "", fmt.Errorf("%w: field %q is missing", ErrMalformedReference, path)
	}
	raw, ok := value.(string)
	if !ok {
		return "", fmt.Errorf("%w: field %q is not a string, got: %v", ErrMalformedReference, path, value)
	}
	return raw, nil
}
