// Package icon provides a flexible multi-variant rendering engine for UI symbols and feedback indicators.
package icon

// Icon identifies a UI symbol in the global registry.
type Icon int

const (
	Success Icon = iota
	Fail
	Progress
	Question
	Download
	Video
	Audio
	Mirror
	Offline
)

// icons maps each Icon identifier to its per-variant visual representations.
var icons = map[Icon]*iconDef{
	Success:  {emoji: "✅", nerd: "", plain: "+", kaomoji: "(￣▽￣)ノ", squares: "🟩"},
	Fail:     {emoji: "❌", nerd: "", plain: "x", kaomoji: "(╯°□°)╯", squares: "🟥"},
	Progress: {emoji: "⏳", nerd: "", plain: "*", kaomoji: "(・・;)", squares: "🟨"},
	Question: {emoji: "❓", nerd: "", plain: "?", kaomoji: "(・・?)", squares: "🟦"},
	Download: {emoji: "⬇️", nerd: "", plain: "v", kaomoji: "(っ・ω・)っ", squares: "🟪"},
	Video:    {emoji: "🎬", nerd: "", plain: "#", kaomoji: "(⌐■_■)", squares: "🟫"},
	Audio:    {emoji: "🎵", nerd: "", plain: "~", kaomoji: "(￣▿￣)", squares: "🟧"},
	Mirror:   {emoji: "🪞", nerd: "", plain: "=", kaomoji: "(o_o)", squares: "⬜"},
	Offline:  {emoji: "📡", nerd: "", plain: "-", kaomoji: "(x_x)", squares: "⬛"},
}
