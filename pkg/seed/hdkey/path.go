package hdkey

import (
	"strconv"
	"strings"

	gserrors "github.com/provide-io/glyphseed/go/glyphseed/pkg/seed/errors"
)

// Path is an ordered list of hardened child indices below the master key.
type Path []uint32

// Hardened maps i into the hardened index range.
func Hardened(i uint32) uint32 {
	return i | HardenedOffset
}

// IsHardened reports whether i is a hardened index.
func IsHardened(i uint32) bool {
	return i >= HardenedOffset
}

// NewPath builds a path from unhardened segment numbers, hardening each.
func NewPath(segments ...uint32) Path {
	p := make(Path, len(segments))
	for i, s := range segments {
		p[i] = Hardened(s)
	}
	return p
}

// ParsePath parses "m/83696968'/39'/0'/12'/0'". Every segment must carry
// a hardened marker (', h or H).
func ParsePath(s string) (Path, error) {
	s = strings.TrimSpace(s)
	parts := strings.Split(s, "/")
	if len(parts) == 0 || (parts[0] != "m" && parts[0] != "M") {
		return nil, gserrors.Field(gserrors.ErrInvalidPath, "path", s)
	}

	path := make(Path, 0, len(parts)-1)
	for _, part := range parts[1:] {
		part = strings.TrimSpace(part)
		if part == "" {
			return nil, gserrors.Field(gserrors.ErrInvalidPath, "path", s)
		}

		hardened := false
		switch part[len(part)-1] {
		case '\'', 'h', 'H':
			hardened = true
			part = part[:len(part)-1]
		}

		n, err := strconv.ParseUint(part, 10, 32)
		if err != nil || n >= HardenedOffset {
			return nil, gserrors.Field(gserrors.ErrInvalidPath, "segment", part)
		}
		if !hardened {
			return nil, gserrors.Field(gserrors.ErrNotHardened, "segment", part)
		}
		path = append(path, Hardened(uint32(n)))
	}

	if len(path) > MaxDepth {
		return nil, gserrors.Field(gserrors.ErrInvalidPath, "depth", len(path))
	}
	return path, nil
}

// String formats the path with ' markers.
func (p Path) String() string {
	var sb strings.Builder
	sb.WriteString("m")
	for _, i := range p {
		sb.WriteByte('/')
		sb.WriteString(strconv.FormatUint(uint64(i&^HardenedOffset), 10))
		if IsHardened(i) {
			sb.WriteByte('\'')
		}
	}
	return sb.String()
}

// Child returns a copy of p extended by the hardened form of segments.
func (p Path) Child(segments ...uint32) Path {
	out := make(Path, len(p), len(p)+len(segments))
	copy(out, p)
	for _, s := range segments {
		out = append(out, Hardened(s))
	}
	return out
}
