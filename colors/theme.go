// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package colors

import (
	"fmt"
	"strings"
)

// Themes are the color themes a chart can be rendered in.
// The theme is always passed explicitly; there is no global
// current theme.
type Themes int32

const (
	// Light is the default light theme.
	Light Themes = iota

	// Dark is the dark theme.
	Dark
)

// String returns the lower-case name of the theme.
func (th Themes) String() string {
	if th == Dark {
		return "dark"
	}
	return "light"
}

// IsDark returns whether this is the dark theme.
func (th Themes) IsDark() bool {
	return th == Dark
}

// ParseTheme returns the theme for the given name. Anything other
// than "dark" (case-insensitive) is the light theme.
func ParseTheme(s string) Themes {
	if strings.EqualFold(strings.TrimSpace(s), "dark") {
		return Dark
	}
	return Light
}

// MarshalText implements [encoding.TextMarshaler].
func (th Themes) MarshalText() ([]byte, error) {
	return []byte(th.String()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
// Unlike [ParseTheme] it rejects unknown names, since it is
// used for configuration files.
func (th *Themes) UnmarshalText(text []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(text))) {
	case "", "light":
		*th = Light
	case "dark":
		*th = Dark
	default:
		return fmt.Errorf("colors.Themes: unknown theme %q", text)
	}
	return nil
}
