// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package merkle_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/purchasesd/fault"
	"github.com/bitmark-inc/purchasesd/merkle"
)

func makeLeaves(n int) []merkle.Digest {
	leaves := make([]merkle.Digest, n)
	for i := range leaves {
		leaves[i] = merkle.NewDigest([]byte(fmt.Sprintf("leaf-%d", i)))
	}
	return leaves
}

func TestEmptyRoot(t *testing.T) {
	empty := merkle.EmptyNodes(3)
	root, err := merkle.Root(nil, 3)
	assert.Nil(t, err, "empty tree")
	assert.Equal(t, empty[3], root, "empty root")
	assert.Equal(t, merkle.Digest{}, empty[0], "empty leaf")
}

func TestRootMatchesFullTree(t *testing.T) {
	leaves := makeLeaves(4)

	h := func(a merkle.Digest, b merkle.Digest) merkle.Digest {
		return merkle.NewDigest(append(a[:], b[:]...))
	}
	expected := h(h(leaves[0], leaves[1]), h(leaves[2], leaves[3]))

	root, err := merkle.Root(leaves, 2)
	assert.Nil(t, err, "root")
	assert.Equal(t, expected, root, "hand computed root")
}

func TestRootChangesWithLeaves(t *testing.T) {
	leaves := makeLeaves(5)
	r1, _ := merkle.Root(leaves[:4], 4)
	r2, _ := merkle.Root(leaves, 4)
	assert.NotEqual(t, r1, r2, "appending must change root")
}

func TestProofs(t *testing.T) {
	const depth = 4
	for n := 1; n <= 16; n += 1 {
		leaves := makeLeaves(n)
		root, err := merkle.Root(leaves, depth)
		assert.Nil(t, err, "root of %d", n)

		for i := 0; i < n; i += 1 {
			path, err := merkle.Proof(leaves, uint64(i), depth)
			assert.Nil(t, err, "proof %d of %d", i, n)
			assert.Equal(t, depth, len(path), "path length")
			assert.True(t, merkle.VerifyProof(root, leaves[i], uint64(i), path), "verify %d of %d", i, n)
			assert.False(t, merkle.VerifyProof(root, leaves[i], uint64(i)^1, path), "wrong index %d of %d", i, n)
		}
	}
}

func TestTreeLimits(t *testing.T) {
	_, err := merkle.Root(makeLeaves(5), 2)
	assert.Equal(t, fault.ErrInvalidLength, err, "too many leaves")

	_, err = merkle.Root(nil, 0)
	assert.Equal(t, fault.ErrInvalidLength, err, "zero depth")

	_, err = merkle.Proof(makeLeaves(2), 2, 2)
	assert.Equal(t, fault.ErrInvalidCount, err, "index past end")
}

func TestDigestText(t *testing.T) {
	d := merkle.NewDigest([]byte("text"))
	buffer, err := d.MarshalText()
	assert.Nil(t, err, "marshal")

	var e merkle.Digest
	assert.Nil(t, e.UnmarshalText(buffer), "unmarshal")
	assert.Equal(t, d, e, "round trip")
	assert.Equal(t, string(buffer), d.String(), "string form")

	assert.Equal(t, fault.ErrInvalidLength, e.UnmarshalText([]byte("abcd")), "short text")
}
