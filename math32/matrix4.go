// Copyright 2019 Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Initially copied from G3N: github.com/g3n/engine/math32
// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package math32

// Matrix4 is 4x4 matrix organized internally as column matrix.
type Matrix4 [16]float32

// Identity4 returns a new identity [Matrix4] matrix.
func Identity4() *Matrix4 {
	m := &Matrix4{}
	m.SetIdentity()
	return m
}

// SetIdentity sets this matrix as the identity matrix.
func (m *Matrix4) SetIdentity() {
	*m = Matrix4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Mul returns this matrix times other matrix (this matrix is unchanged)
func (m *Matrix4) Mul(other *Matrix4) *Matrix4 {
	nm := &Matrix4{}
	nm.MulMatrices(m, other)
	return nm
}

// MulMatrices sets this matrix as the matrix product a * b.
func (m *Matrix4) MulMatrices(a, b *Matrix4) {
	var r Matrix4
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			var s float32
			for k := 0; k < 4; k++ {
				s += a[k*4+row] * b[col*4+k]
			}
			r[col*4+row] = s
		}
	}
	*m = r
}

// SetTransform sets this matrix to a transformation matrix for the specified position,
// rotation specified by the quaternion and scale.
func (m *Matrix4) SetTransform(pos Vector3, quat Quat, scale Vector3) {
	x, y, z, w := quat.X, quat.Y, quat.Z, quat.W
	x2, y2, z2 := x+x, y+y, z+z
	xx, xy, xz := x*x2, x*y2, x*z2
	yy, yz, zz := y*y2, y*z2, z*z2
	wx, wy, wz := w*x2, w*y2, w*z2

	m[0] = (1 - (yy + zz)) * scale.X
	m[1] = (xy + wz) * scale.X
	m[2] = (xz - wy) * scale.X
	m[3] = 0
	m[4] = (xy - wz) * scale.Y
	m[5] = (1 - (xx + zz)) * scale.Y
	m[6] = (yz + wx) * scale.Y
	m[7] = 0
	m[8] = (xz + wy) * scale.Z
	m[9] = (yz - wx) * scale.Z
	m[10] = (1 - (xx + yy)) * scale.Z
	m[11] = 0
	m[12] = pos.X
	m[13] = pos.Y
	m[14] = pos.Z
	m[15] = 1
}

// SetLookAt sets this matrix to the view matrix of an eye at the given
// position looking at target with the given up direction.
func (m *Matrix4) SetLookAt(eye, target, up Vector3) {
	f := target.Sub(eye).Normal()
	if f.IsNil() {
		f.Z = -1
	}
	s := f.Cross(up).Normal()
	if s.IsNil() {
		s = f.Cross(Vec3(0, 0, 1)).Normal()
	}
	u := s.Cross(f)
	*m = Matrix4{
		s.X, u.X, -f.X, 0,
		s.Y, u.Y, -f.Y, 0,
		s.Z, u.Z, -f.Z, 0,
		-s.Dot(eye), -u.Dot(eye), f.Dot(eye), 1,
	}
}

// SetPerspective sets this matrix to a perspective projection matrix
// with the specified field of view in degrees,
// aspect ratio (width/height) and near and far planes.
func (m *Matrix4) SetPerspective(fov, aspect, near, far float32) {
	ymax := near * Tan(DegToRad(fov*0.5))
	ymin := -ymax
	xmin := ymin * aspect
	xmax := ymax * aspect

	x := 2 * near / (xmax - xmin)
	y := 2 * near / (ymax - ymin)
	a := (xmax + xmin) / (xmax - xmin)
	b := (ymax + ymin) / (ymax - ymin)
	c := -(far + near) / (far - near)
	d := -2 * far * near / (far - near)

	*m = Matrix4{
		x, 0, 0, 0,
		0, y, 0, 0,
		a, b, c, -1,
		0, 0, d, 0,
	}
}
