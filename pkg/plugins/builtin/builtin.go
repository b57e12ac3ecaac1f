// Package builtin registers the bundled plugins and fixes their order.
package builtin

import (
	copyplugin "github.com/arthur-debert/bundlechain/pkg/plugins/copy"
	"github.com/arthur-debert/bundlechain/pkg/plugins/css"
	"github.com/arthur-debert/bundlechain/pkg/plugins/extract"
)

// DefaultOrder is the order hooks run in when no plugin list is given
var DefaultOrder = []string{
	css.Name,
	extract.Name,
	copyplugin.Name,
}

// Names returns a copy of DefaultOrder
func Names() []string {
	return append([]string(nil), DefaultOrder...)
}
