// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package merkle

import (
	"github.com/bitmark-inc/purchasesd/fault"
)

// MaximumDepth - deepest tree supported
const MaximumDepth = 30

// a fixed depth tree of 2^depth leaves
//
// unused leaf positions hold the zero digest and every empty subtree
// at level d hashes to emptyNodes[d], so the root is defined even when
// only a few leaves have been appended

// EmptyNodes - digests of empty subtrees for levels 0..depth
func EmptyNodes(depth int) []Digest {
	nodes := make([]Digest, depth+1)
	for d := 1; d <= depth; d += 1 {
		nodes[d] = join(nodes[d-1], nodes[d-1])
	}
	return nodes
}

func checkTree(leafCount int, depth int) error {
	if depth <= 0 || depth > MaximumDepth {
		return fault.ErrInvalidLength
	}
	if uint64(leafCount) > uint64(1)<<uint(depth) {
		return fault.ErrInvalidLength
	}
	return nil
}

// next level up, padding an odd tail with the empty subtree
func parentLevel(level []Digest, empty Digest) []Digest {
	parents := make([]Digest, (len(level)+1)/2)
	for i := range parents {
		left := level[2*i]
		right := empty
		if 2*i+1 < len(level) {
			right = level[2*i+1]
		}
		parents[i] = join(left, right)
	}
	return parents
}

// Root - compute the root of a tree holding the given leaves
func Root(leaves []Digest, depth int) (Digest, error) {
	if err := checkTree(len(leaves), depth); nil != err {
		return Digest{}, err
	}
	empty := EmptyNodes(depth)
	if 0 == len(leaves) {
		return empty[depth], nil
	}

	level := leaves
	for d := 0; d < depth; d += 1 {
		level = parentLevel(level, empty[d])
	}
	return level[0], nil
}

// Proof - sibling path from a leaf up to the root
func Proof(leaves []Digest, index uint64, depth int) ([]Digest, error) {
	if err := checkTree(len(leaves), depth); nil != err {
		return nil, err
	}
	if index >= uint64(len(leaves)) {
		return nil, fault.ErrInvalidCount
	}
	empty := EmptyNodes(depth)

	path := make([]Digest, depth)
	level := leaves
	i := index
	for d := 0; d < depth; d += 1 {
		sibling := i ^ 1
		if sibling < uint64(len(level)) {
			path[d] = level[sibling]
		} else {
			path[d] = empty[d]
		}
		level = parentLevel(level, empty[d])
		i >>= 1
	}
	return path, nil
}

// VerifyProof - check that a leaf at index is committed by root
func VerifyProof(root Digest, leaf Digest, index uint64, path []Digest) bool {
	node := leaf
	i := index
	for _, sibling := range path {
		if 0 == i&1 {
			node = join(node, sibling)
		} else {
			node = join(sibling, node)
		}
		i >>= 1
	}
	return node == root
}
