package entities

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
)

const (
	packageElement = "package"
	packageIDAttr  = "id"
	packageVerAttr = "version"
)

// ExtractPackageVersion returns the version declared by the first `package` element (no
// namespace) whose `id` equals packageID exactly. found is false when no element matches, which
// is not an error. The whole document is read so that trailing garbage or a second root element
// still reports ErrMalformedDocument.
func ExtractPackageVersion(document []byte, packageID string) (version string, found bool, err error) {
	decoder := xml.NewDecoder(bytes.NewReader(document))
	matched := false
	sawRoot := false
	depth := 0

	for {
		token, tokenErr := decoder.Token()
		if errors.Is(tokenErr, io.EOF) {
			break
		}
		if tokenErr != nil {
			return "", false, fmt.Errorf("%w: package config XML: %w", ErrMalformedDocument, tokenErr)
		}

		if _, isEnd := token.(xml.EndElement); isEnd {
			depth--
			continue
		}
		start, ok := token.(xml.StartElement)
		if !ok {
			continue
		}
		if depth == 0 && sawRoot {
			return "", false, fmt.Errorf(
				"%w: package config XML has more than one root element", ErrMalformedDocument,
			)
		}
		sawRoot = true
		depth++
		if matched || start.Name.Space != "" || start.Name.Local != packageElement {
			continue
		}

		id, hasID := attr(start, packageIDAttr)
		if !hasID || id != packageID {
			continue
		}
		matched = true
		version, found = attr(start, packageVerAttr)
	}

	if !sawRoot {
		return "", false, fmt.Errorf("%w: package config XML has no root element", ErrMalformedDocument)
	}
	return version, found, nil
}

func attr(element xml.StartElement, name string) (string, bool) {
	for _, a := range element.Attr {
		if a.Name.Local == name {
			return a.Value, true
		}
	}
	return "", false
}
