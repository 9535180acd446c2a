// Copyright 2019 Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package math32

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const tol = 1e-5

func TestQuatRotate(t *testing.T) {
	q := NewQuatAxisAngle(Vec3(0, 1, 0), Pi/2)
	v := Vec3(1, 0, 0).MulQuat(q)
	assert.InDelta(t, 0, v.X, tol)
	assert.InDelta(t, 0, v.Y, tol)
	assert.InDelta(t, -1, v.Z, tol)
}

func TestTransform(t *testing.T) {
	var m Matrix4
	q := Quat{}
	q.SetIdentity()
	m.SetTransform(Vec3(1, 2, 3), q, Vec3(2, 2, 2))
	p := Vec3(1, 1, 1).MulMatrix4(&m)
	assert.Equal(t, Vec3(3, 4, 5), p)
}

func TestMulMatrices(t *testing.T) {
	var a, b Matrix4
	q := Quat{}
	q.SetIdentity()
	a.SetTransform(Vec3(1, 0, 0), q, Vec3(1, 1, 1))
	b.SetTransform(Vec3(0, 2, 0), q, Vec3(1, 1, 1))
	p := Vec3(0, 0, 0).MulMatrix4(a.Mul(&b))
	assert.Equal(t, Vec3(1, 2, 0), p)
}

func TestLookAt(t *testing.T) {
	var m Matrix4
	m.SetLookAt(Vec3(0, 0, 10), Vec3(0, 0, 0), Vec3(0, 1, 0))
	p := Vec3(0, 0, 0).MulMatrix4(&m)
	assert.InDelta(t, -10, p.Z, tol)
}

func TestBox3(t *testing.T) {
	b := B3Empty()
	assert.True(t, b.IsEmpty())
	b.ExpandByPoint(Vec3(-1, 0, 2))
	b.ExpandByPoint(Vec3(1, 3, -2))
	assert.False(t, b.IsEmpty())
	assert.Equal(t, Vec3(2, 3, 4), b.Size())
	assert.Equal(t, Vec3(0, 1.5, 0), b.Center())

	var m Matrix4
	q := Quat{}
	q.SetIdentity()
	m.SetTransform(Vec3(10, 0, 0), q, Vec3(1, 1, 1))
	tb := b.MulMatrix4(&m)
	assert.Equal(t, Vec3(9, 0, -2), tb.Min)
	assert.Equal(t, Vec3(11, 3, 2), tb.Max)
}

func TestClamp(t *testing.T) {
	assert.Equal(t, float32(1), Clamp(5, 0, 1))
	assert.Equal(t, float32(0), Clamp(-5, 0, 1))
	assert.InDelta(t, Pi, DegToRad(180), tol)
}
