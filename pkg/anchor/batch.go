package anchor

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"sort"
)

const (
	leafPrefix = "notia:anchor:leaf:v1"
	nodePrefix = "notia:anchor:node:v1"
)

// BatchLeaf binds a bundle ref to its leaf hash.
type BatchLeaf struct {
	BundleRef string `json:"bundle_ref"`
	LeafHash  string `json:"leaf_hash"`
}

// Batch is a merkle tree over a set of bundle refs. Anchoring the root covers
// every member; inclusion proofs tie individual bundles back to it.
type Batch struct {
	Root   string      `json:"root"`
	Leaves []BatchLeaf `json:"leaves"`

	levels [][]string
}

// ProofStep is one sibling on the path from a leaf to the root.
type ProofStep struct {
	Side        string `json:"side"` // "L" or "R"
	SiblingHash string `json:"sibling_hash"`
}

// InclusionProof proves a bundle ref is covered by a batch root.
type InclusionProof struct {
	BundleRef string      `json:"bundle_ref"`
	LeafHash  string      `json:"leaf_hash"`
	Root      string      `json:"root"`
	Path      []ProofStep `json:"path"`
}

// BuildBatch constructs a merkle batch from bundle refs. Refs are sorted and
// deduplicated first so the root is independent of submission order.
func BuildBatch(refs []string) (*Batch, error) {
	unique := make([]string, 0, len(refs))
	seen := make(map[string]bool, len(refs))
	for _, ref := range refs {
		if ref == "" || seen[ref] {
			continue
		}
		seen[ref] = true
		unique = append(unique, ref)
	}
	if len(unique) == 0 {
		return nil, errors.New("anchor: empty batch")
	}
	sort.Strings(unique)

	leaves := make([]BatchLeaf, len(unique))
	level := make([]string, len(unique))
	for i, ref := range unique {
		h := leafHash(ref)
		leaves[i] = BatchLeaf{BundleRef: ref, LeafHash: h}
		level[i] = h
	}

	batch := &Batch{Leaves: leaves}
	batch.levels = append(batch.levels, level)
	for len(level) > 1 {
		level = nextLevel(level)
		batch.levels = append(batch.levels, level)
	}
	batch.Root = level[0]

	return batch, nil
}

// Proof returns the inclusion proof for a bundle ref in this batch.
func (b *Batch) Proof(bundleRef string) (InclusionProof, error) {
	idx := -1
	for i, leaf := range b.Leaves {
		if leaf.BundleRef == bundleRef {
			idx = i
			break
		}
	}
	if idx < 0 {
		return InclusionProof{}, fmt.Errorf("anchor: ref %s not in batch", bundleRef)
	}

	proof := InclusionProof{
		BundleRef: bundleRef,
		LeafHash:  b.Leaves[idx].LeafHash,
		Root:      b.Root,
	}

	for _, level := range b.levels[:len(b.levels)-1] {
		sibling := idx ^ 1
		if sibling >= len(level) {
			// Odd level: the last node is paired with itself.
			sibling = idx
		}

		side := "R"
		if sibling < idx {
			side = "L"
		}
		proof.Path = append(proof.Path, ProofStep{Side: side, SiblingHash: level[sibling]})
		idx /= 2
	}

	return proof, nil
}

// VerifyInclusion checks a proof against a trusted root.
func VerifyInclusion(proof InclusionProof, expectedRoot string) bool {
	if expectedRoot != "" && proof.Root != expectedRoot {
		return false
	}

	current := proof.LeafHash
	for _, step := range proof.Path {
		if step.Side == "L" {
			current = nodeHash(step.SiblingHash, current)
		} else {
			current = nodeHash(current, step.SiblingHash)
		}
	}

	return current == proof.Root
}

// AnchorBatch builds a batch over refs and anchors its root through the
// submitter. One network transaction covers the whole batch.
func AnchorBatch(ctx context.Context, submitter HashSubmitter, refs []string) (*Batch, Receipt, error) {
	batch, err := BuildBatch(refs)
	if err != nil {
		return nil, Receipt{}, err
	}

	receipt, err := submitter.SubmitHash(ctx, batch.Root)
	if err != nil {
		return nil, Receipt{}, err
	}

	return batch, receipt, nil
}

func leafHash(ref string) string {
	var buf bytes.Buffer
	buf.WriteString(leafPrefix)
	buf.WriteByte(0)
	buf.WriteString(ref)
	return sha256Hex(buf.Bytes())
}

func nextLevel(hashes []string) []string {
	count := len(hashes)
	if count%2 != 0 {
		hashes = append(hashes, hashes[count-1])
		count++
	}

	out := make([]string, count/2)
	for i := 0; i < count; i += 2 {
		out[i/2] = nodeHash(hashes[i], hashes[i+1])
	}
	return out
}

func nodeHash(left, right string) string {
	var buf bytes.Buffer
	buf.WriteString(nodePrefix)
	buf.WriteByte(0)
	buf.Write(hexToBytes(left))
	buf.Write(hexToBytes(right))
	return sha256Hex(buf.Bytes())
}

func sha256Hex(data []byte) string {
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:])
}

func hexToBytes(s string) []byte {
	b, _ := hex.DecodeString(s)
	return b
}
