package ui

import (
	"github.com/schollz/progressbar/v3"
)

// Progress is a byte-progress bar implementing the downloader's observer.
// When the upstream advertises no Content-Length the bar's upper bound grows
// with each chunk, so the indicator stays monotone instead of overflowing.
type Progress struct {
	bar      *progressbar.ProgressBar
	unknown  bool
	received int64
}

// NewProgress returns an empty progress observer. The bar is created on
// Start, once the total is known.
func NewProgress() *Progress {
	return &Progress{}
}

// Start initializes the bar. A total <= 0 means the size is unknown.
func (p *Progress) Start(name string, total int64) {
	p.unknown = total <= 0
	p.received = 0
	if p.unknown {
		total = 1
	}
	p.bar = progressbar.DefaultBytes(total, name)
}

// Add advances the bar by n bytes.
func (p *Progress) Add(n int64) {
	if p.bar == nil {
		return
	}
	if p.unknown {
		p.received += n
		p.bar.ChangeMax64(p.received)
	}
	_ = p.bar.Add64(n)
}

// Finish completes the bar.
func (p *Progress) Finish() {
	if p.bar != nil {
		_ = p.bar.Finish()
	}
}
