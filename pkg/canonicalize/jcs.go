// Package canonicalize provides RFC 8785 (JSON Canonicalization Scheme) compliant
// serialization for deterministic hashing of decision bundles.
package canonicalize

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/gowebpki/jcs"
)

// JCS returns the RFC 8785 canonical JSON representation of v.
//
// Key features:
// 1. Map keys are sorted lexicographically by UTF-16 code units per RFC 8785.
// 2. HTML escaping is DISABLED (unlike standard json.Marshal).
// 3. Number formatting follows ECMAScript ToString, so equal values always
//    serialize to equal bytes.
//
// Strategy: Marshal to intermediate JSON (standard, respects json tags), then
// run the jcs transform to normalize key order and formatting.
func JCS(v interface{}) ([]byte, error) {
	intermediate, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("jcs: pre-marshal failed: %w", err)
	}

	canonical, err := jcs.Transform(intermediate)
	if err != nil {
		return nil, fmt.Errorf("jcs: transform failed: %w", err)
	}

	return canonical, nil
}

// CanonicalHash returns the SHA-256 hex digest of the canonical JSON representation of v.
func CanonicalHash(v interface{}) (string, error) {
	b, err := JCS(v)
	if err != nil {
		return "", err
	}
	return HashBytes(b), nil
}

// HashBytes computes SHA-256 hash of raw bytes and returns a lowercase hex string.
func HashBytes(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

// JCSString returns the JCS canonical form as a string.
func JCSString(v interface{}) (string, error) {
	data, err := JCS(v)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// SortKeysDeep returns a copy of v with every map level rebuilt in sorted key
// order. Arrays keep element order; only object keys are reordered. The jcs
// transform already guarantees canonical ordering on the wire; this helper
// exists for callers that need an ordering-stable in-memory structure.
func SortKeysDeep(v interface{}) interface{} {
	switch t := v.(type) {
	case map[string]interface{}:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		out := make(map[string]interface{}, len(t))
		for _, k := range keys {
			out[k] = SortKeysDeep(t[k])
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(t))
		for i, elem := range t {
			out[i] = SortKeysDeep(elem)
		}
		return out
	default:
		return v
	}
}

// ToGeneric round-trips v through JSON into the generic representation
// (map[string]interface{}, []interface{}, json.Number, string, bool, nil).
// Numbers are decoded as json.Number so no float precision is lost before
// canonicalization or schema validation.
func ToGeneric(v interface{}) (interface{}, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("canonicalize: marshal failed: %w", err)
	}

	var generic interface{}
	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.UseNumber()
	if err := decoder.Decode(&generic); err != nil {
		return nil, fmt.Errorf("canonicalize: decode failed: %w", err)
	}
	return generic, nil
}
