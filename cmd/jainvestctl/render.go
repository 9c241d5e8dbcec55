package main

import (
	"fmt"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/charmbracelet/glamour"
	"github.com/shopspring/decimal"
)

const wrapWidth = 100

// formatINR renders an amount in rupees with western digit grouping, e.g. ₹100,000.00.
func formatINR(amount decimal.Decimal) string {
	paise := amount.Shift(2).Round(0).IntPart()
	return money.New(paise, money.INR).Display()
}

// renderMarkdown styles md for the terminal. style is a glamour standard
// style name, or "auto" to detect one. Rendering failures fall back to md.
func renderMarkdown(md, style string) string {
	opt := glamour.WithAutoStyle()
	if style != "auto" {
		opt = glamour.WithStandardStyle(style)
	}
	r, err := glamour.NewTermRenderer(opt, glamour.WithWordWrap(wrapWidth))
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimSpace(out)
}

func printMarkdown(md string) {
	fmt.Println(renderMarkdown(md, "auto"))
}
