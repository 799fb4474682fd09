package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"
)

// Keyer builds cache keys.
type Keyer interface {
	// ArtifactKey identifies a rendered artifact by input hash and options.
	ArtifactKey(inputHash string, opts ArtifactKeyOpts) string

	// SourceKey identifies the raw bytes fetched from url.
	SourceKey(url string) string
}

// ArtifactKeyOpts lists every option that changes a rendered artifact.
// Every field must also appear in canonical; changing that list
// invalidates existing artifact keys.
type ArtifactKeyOpts struct {
	MaxDepth       int     `json:"max_depth"`
	ColorThreshold float64 `json:"color_threshold"`
	SizeThreshold  int     `json:"size_threshold"`
	MaxLeaves      int     `json:"max_leaves"`
	Metric         string  `json:"metric"`
	Format         string  `json:"format"`
	Outline        string  `json:"outline,omitempty"` // empty when outlines are off
	MaxSide        int     `json:"max_side,omitempty"`
}

// DefaultKeyer hashes key components with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// ArtifactKey returns "artifact:<sha256>" over the input hash and options.
func (DefaultKeyer) ArtifactKey(inputHash string, opts ArtifactKeyOpts) string {
	return "artifact:" + Hash([]byte(opts.canonical(inputHash)))
}

// canonical lists every key component in a fixed order. Strings are
// quoted so no component can run into its neighbor. Floats are spelled
// out exactly, NaN and Inf included.
func (o ArtifactKeyOpts) canonical(inputHash string) string {
	var b strings.Builder
	field := func(name, value string) {
		b.WriteString(name)
		b.WriteByte('=')
		b.WriteString(value)
		b.WriteByte(';')
	}
	field("input", strconv.Quote(inputHash))
	field("max_depth", strconv.Itoa(o.MaxDepth))
	field("color_threshold", strconv.FormatFloat(o.ColorThreshold, 'g', -1, 64))
	field("size_threshold", strconv.Itoa(o.SizeThreshold))
	field("max_leaves", strconv.Itoa(o.MaxLeaves))
	field("metric", strconv.Quote(o.Metric))
	field("format", strconv.Quote(o.Format))
	field("outline", strconv.Quote(o.Outline))
	field("max_side", strconv.Itoa(o.MaxSide))
	return b.String()
}

// SourceKey returns "source:<sha256(url)>".
func (DefaultKeyer) SourceKey(url string) string {
	return "source:" + Hash([]byte(url))
}

// Hash returns the hex SHA-256 digest of data. It doubles as the content
// hash recorded for every render input.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
