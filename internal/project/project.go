package project

import (
	"encoding/xml"
	"errors"
	"io"
	"strings"

	"snapp-packager/internal/packerrors"
)

// projectElement is the document element carrying the declared name.
const projectElement = "project"

// nameAttribute is the attribute holding the declared project name.
const nameAttribute = "name"

// Descriptor pairs the raw project document with its declared name.
type Descriptor struct {
	// RawXML is the project document exactly as received.
	RawXML string
	// Name is the value of the name attribute on the first project element.
	Name string
}

// Describe extracts the declared name and returns the full descriptor.
func Describe(projectXML string) (*Descriptor, error) {
	name, err := ExtractName(projectXML)
	if err != nil {
		return nil, err
	}

	return &Descriptor{
		RawXML: projectXML,
		Name:   name,
	}, nil
}

// ExtractName scans the document forward and returns the name attribute of
// the first project element that carries a non-empty one. The scan stops at
// the first match; content after it is never read. Reaching the end of the
// document without a match is a hard failure: a bundle without a title is
// useless, so the silent empty-name outcome is rejected here the same way
// the request validator rejects it.
func ExtractName(projectXML string) (string, error) {
	decoder := xml.NewDecoder(strings.NewReader(projectXML))

	for {
		token, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			return "", packerrors.New(packerrors.KindMissingProjectName, "document has no project element with a name attribute")
		}

		if err != nil {
			return "", packerrors.Wrap(packerrors.KindXMLParse, "scan project document", err)
		}

		start, ok := token.(xml.StartElement)
		if !ok || start.Name.Local != projectElement {
			continue
		}

		for _, attr := range start.Attr {
			if attr.Name.Local == nameAttribute && attr.Value != "" {
				return attr.Value, nil
			}
		}
	}
}
