// SPDX-License-Identifier: MIT

package maxent

import "errors"

// ErrNilSet indicates a nil constraint set.
var ErrNilSet = errors.New("maxent: nil constraint set")
