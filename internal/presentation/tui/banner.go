package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

var bannerLines = []struct {
	text  string
	color string
}{
	{` _                     _          _     _    `, "#fbbf24"},
	{`| |__   ___  _ __ ___ | |__  _ __(_)___| | __`, "#f59e0b"},
	{`| '_ \ / _ \| '_ ' _ \| '_ \| '__| / __| |/ /`, "#f97316"},
	{`| |_) | (_) | | | | | | |_) | |  | \__ \   < `, "#ef4444"},
	{`|_.__/ \___/|_| |_| |_|_.__/|_|  |_|___/_|\_\`, "#dc2626"},
}

// PrintBanner writes the bombrisk banner, coloured when out supports it.
func PrintBanner(out io.Writer) {
	o := termenv.NewOutput(out)
	fmt.Fprintln(out)
	for _, l := range bannerLines {
		fmt.Fprintln(out, o.String(l.text).Foreground(o.Color(l.color)))
	}
	fmt.Fprintln(out)
}
