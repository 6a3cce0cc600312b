package view

import (
	"fmt"
	"io"
	"sync"

	"github.com/jcmexdev/grocery-pos/internal/pos/core/domain/entity"
	"github.com/jcmexdev/grocery-pos/internal/pos/core/ports"
)

var _ ports.Notifier = (*NoticeWriter)(nil)

// NoticeWriter prints notices as one line each, e.g. "[warning] Cart is empty!".
// Debounced filter results and checkout callbacks can write from other
// goroutines, so writes are serialized.
type NoticeWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func NewNoticeWriter(w io.Writer) *NoticeWriter {
	return &NoticeWriter{w: w}
}

func (n *NoticeWriter) Notify(notice entity.Notice) {
	n.mu.Lock()
	defer n.mu.Unlock()
	fmt.Fprintf(n.w, "[%s] %s\n", notice.Level, notice.Message)
}
