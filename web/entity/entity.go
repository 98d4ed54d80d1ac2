// Package entity defines view-level data structures shared by the web layer.
package entity

// Flash categories, matching the CSS classes used by the page header.
const (
	FlashSuccess = "success"
	FlashDanger  = "danger"
	FlashWarning = "warning"
	FlashInfo    = "info"
)

// Flash is a one-shot notice shown on the next rendered page.
type Flash struct {
	Category string
	Message  string
}
