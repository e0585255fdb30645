// Package icon renders status symbols in the variant selected by icons.variant.
package icon

import (
	"github.com/shopfetch/shopfetch/key"
	"github.com/spf13/viper"
)

const (
	emoji   = "emoji"
	plain   = "plain"
	squares = "squares"
)

// AvailableVariants lists the supported icons.variant values.
func AvailableVariants() []string {
	return []string{emoji, plain, squares}
}

type Icon int

const (
	Success Icon = iota
	Fail
	Progress
	Network
)

type iconDef struct {
	emoji, plain, squares string
}

var icons = map[Icon]*iconDef{
	Success:  {emoji: "✅", plain: "✓", squares: "🟩"},
	Fail:     {emoji: "❌", plain: "✖", squares: "🟥"},
	Progress: {emoji: "⏳", plain: "…", squares: "🟨"},
	Network:  {emoji: "🌐", plain: "~", squares: "🟦"},
}

func (d *iconDef) get() string {
	switch viper.GetString(key.IconsVariant) {
	case emoji:
		return d.emoji
	case plain:
		return d.plain
	case squares:
		return d.squares
	default:
		return ""
	}
}

// Get renders icon i.
func Get(i Icon) string {
	return icons[i].get()
}
