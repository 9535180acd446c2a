// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package reflectx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type point struct {
	X, Y float32
}

type inner struct {
	Name string `default:"inner"`
}

type sample struct {
	Name   string   `default:"chart"`
	On     bool     `default:"true"`
	Count  int      `default:"8"`
	Alpha  uint8    `default:"128"`
	Height float64  `default:"2.5"`
	Pos    point    `default:"{'X':4,'Y':6}"`
	Tags   []string `default:"['a','b']"`
	Inner  inner
	Plain  int
	hidden int `default:"3"`
}

func TestSetFromDefaultTags(t *testing.T) {
	s := &sample{Plain: 7}
	require.NoError(t, SetFromDefaultTags(s))
	assert.Equal(t, "chart", s.Name)
	assert.True(t, s.On)
	assert.Equal(t, 8, s.Count)
	assert.Equal(t, uint8(128), s.Alpha)
	assert.Equal(t, 2.5, s.Height)
	assert.Equal(t, point{4, 6}, s.Pos)
	assert.Equal(t, []string{"a", "b"}, s.Tags)
	assert.Equal(t, "inner", s.Inner.Name)
	assert.Equal(t, 7, s.Plain)
	assert.Equal(t, 0, s.hidden)
}

func TestSetFromDefaultTagsErrors(t *testing.T) {
	type bad struct {
		Count int   `default:"many"`
		Alpha uint8 `default:"300"`
	}
	err := SetFromDefaultTags(&bad{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad.Count")
	assert.Contains(t, err.Error(), "bad.Alpha")

	assert.Error(t, SetFromDefaultTags(bad{}))
	assert.Error(t, SetFromDefaultTags((*bad)(nil)))
}
