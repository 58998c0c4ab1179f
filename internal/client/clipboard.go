package client

import "github.com/atotto/clipboard"

// systemClipboard writes to the OS clipboard.
type systemClipboard struct{}

// SystemClipboard returns the OS clipboard.
func SystemClipboard() Clipboard {
	return systemClipboard{}
}

func (systemClipboard) WriteAll(text string) error {
	return clipboard.WriteAll(text)
}
