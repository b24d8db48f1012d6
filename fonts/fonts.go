// Package fonts bundles the TTF used for document export, so building a
// report never depends on deployment-time font setup.
package fonts

import _ "embed"

//go:embed DejaVuSans.ttf
var DejaVuSans []byte
