// Copyright 2024 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package jimage

import "strings"

// verifyPath confirms that candidate is genuinely named path: the
// redirect table only yields a candidate bucket index, never a proven
// match, so every hash hit is checked against the candidate's own
// attribute strings before being returned to a caller.
func verifyPath(candidate Resource, path string) bool {
	p := path

	if module := candidate.Module(); module != "" {
		if len(p) == 0 || p[0] != '/' {
			return false
		}
		rest := p[1:]
		if !strings.HasPrefix(rest, module) {
			return false
		}
		rest = rest[len(module):]
		if len(rest) == 0 || rest[0] != '/' {
			return false
		}
		p = rest[1:]
	}

	if parent := candidate.Parent(); parent != "" {
		if !strings.HasPrefix(p, parent) {
			return false
		}
		rest := p[len(parent):]
		if len(rest) == 0 || rest[0] != '/' {
			return false
		}
		p = rest[1:]
	}

	base := candidate.Base()
	if !strings.HasPrefix(p, base) {
		return false
	}
	p = p[len(base):]

	if ext := candidate.Extension(); ext != "" {
		if len(p) == 0 || p[0] != '.' {
			return false
		}
		rest := p[1:]
		if !strings.HasPrefix(rest, ext) {
			return false
		}
		p = rest[len(ext):]
	}

	return p == ""
}
