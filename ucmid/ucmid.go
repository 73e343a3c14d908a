// Package ucmid implements a prefixed ulid ID type for the platform's entities.
package ucmid

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/oklog/ulid/v2"
)

const (
	// Separator for string encoding, we like '-' for showing them in urls.
	Separator = "-"
	// PrefixSize must be this length, to make storage size predictable.
	PrefixSize = 4
	// ZeroPrefix is shown when a zero value is encoded, for recognizing that case easily.
	ZeroPrefix = "zzzz"
	// UseCasePrefix is the prefix for use-case identifiers.
	UseCasePrefix = "ucas"
)

// ID implements a prefixed ULID identifier.
type ID struct {
	p string
	d ulid.ULID
}

// New with default time and entropy sources and panic when it fails.
func New(prefix string) (id ID) {
	id, err := NewFromParts(prefix, ulid.Now(), ulid.DefaultEntropy())
	if err != nil {
		panic("ucmid: " + err.Error())
	}

	return
}

// NewFromParts creates an id from its parts.
func NewFromParts(prefix string, ms uint64, entr io.Reader) (id ID, err error) {
	if len(prefix) != PrefixSize {
		panic(fmt.Sprintf("ucmid: prefix size must be: %d", PrefixSize))
	}

	id.p = prefix

	id.d, err = ulid.New(ms, entr)
	if err != nil {
		return id, fmt.Errorf("unable to init ulid: %w", err)
	}

	return id, nil
}

// Parse an id from its string encoding.
func Parse(s string) (id ID, err error) {
	var found bool

	id.p, s, found = strings.Cut(s, Separator)
	if !found {
		return id, fmt.Errorf("ucmid: missing separator '%s'", Separator) //nolint:goerr113
	}

	id.d, err = ulid.ParseStrict(s)
	if err != nil {
		return id, fmt.Errorf("ucmid: %w", err)
	}

	return id, nil
}

// IsZero returns true when the id holds no data.
func (id ID) IsZero() bool {
	return id == ID{}
}

// Prefix returns the id's prefix part.
func (id ID) Prefix() string {
	return id.p
}

// String implements the fmt.Stringer interface.
func (id ID) String() string {
	if id.p == "" {
		return strings.Join([]string{ZeroPrefix, id.d.String()}, Separator)
	}

	return strings.Join([]string{id.p, id.d.String()}, Separator)
}

// MarshalText implements the encoding.TextMarshaler interface.
func (id ID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// UnmarshalText implements the encoding.TextUnmarshaler interface.
func (id *ID) UnmarshalText(data []byte) (err error) {
	*id, err = Parse(string(data))

	return err
}

// MarshalJSON implements the json.Marshaler interface.
func (id ID) MarshalJSON() (data []byte, err error) {
	return json.Marshal(id.String()) //nolint:wrapcheck
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (id *ID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("ucmid: failed to unmarshal as string: %w", err)
	}

	return id.UnmarshalText([]byte(s))
}
