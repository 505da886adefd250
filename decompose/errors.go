// SPDX-License-Identifier: MIT

package decompose

import "errors"

// ErrNilSet indicates a nil constraint set.
var ErrNilSet = errors.New("decompose: nil constraint set")
