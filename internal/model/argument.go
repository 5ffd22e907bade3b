package model

import (
	"fmt"
	"strings"
)

// Side identifies one of the two opposing parties of a case.
type Side string

const (
	SideA Side = "A"
	SideB Side = "B"
)

// ParseSide accepts "A"/"B" in either case.
func ParseSide(s string) (Side, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "A":
		return SideA, nil
	case "B":
		return SideB, nil
	default:
		return "", fmt.Errorf("invalid side %q: must be A or B", s)
	}
}

// EnumerationFormat is the structural convention an author used to delimit points.
type EnumerationFormat int

const (
	Numbered EnumerationFormat = iota
	Lettered
	Roman
	Bullet
	Paragraph
)

// String returns the lowercase label used in metadata and JSON.
func (f EnumerationFormat) String() string {
	switch f {
	case Numbered:
		return "numbered"
	case Lettered:
		return "lettered"
	case Roman:
		return "roman"
	case Bullet:
		return "bullet"
	case Paragraph:
		return "paragraph"
	default:
		return fmt.Sprintf("EnumerationFormat(%d)", int(f))
	}
}

// ParseFormat is the inverse of String.
func ParseFormat(s string) (EnumerationFormat, error) {
	switch s {
	case "numbered":
		return Numbered, nil
	case "lettered":
		return Lettered, nil
	case "roman":
		return Roman, nil
	case "bullet":
		return Bullet, nil
	case "paragraph":
		return Paragraph, nil
	default:
		return 0, fmt.Errorf("unknown enumeration format %q", s)
	}
}

func (f EnumerationFormat) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

func (f *EnumerationFormat) UnmarshalText(b []byte) error {
	v, err := ParseFormat(string(b))
	if err != nil {
		return err
	}
	*f = v
	return nil
}

// DocumentKind is the document family a file is extracted as.
type DocumentKind int

const (
	PlainText DocumentKind = iota
	PDF
	WordDoc
)

func (k DocumentKind) String() string {
	switch k {
	case PlainText:
		return "text"
	case PDF:
		return "pdf"
	case WordDoc:
		return "word"
	default:
		return fmt.Sprintf("DocumentKind(%d)", int(k))
	}
}

// UploadedFile is one raw upload. It only lives for the duration of a preprocessing call.
type UploadedFile struct {
	Filename string
	Side     Side
	Content  []byte
}

// ArgumentPoint is one segmented unit of argument text.
// Index is the detected marker ("3", "b", "iv") or a sequential number.
type ArgumentPoint struct {
	Index   string `json:"index"`
	Content string `json:"content"`
}
