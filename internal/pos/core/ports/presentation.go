package ports

import "github.com/jcmexdev/grocery-pos/internal/pos/core/domain/entity"

type Renderer interface {
	Render(view entity.CartView)
}

type ReceiptPresenter interface {
	ShowReceipt(invoice *entity.Invoice)
}

type Notifier interface {
	Notify(notice entity.Notice)
}
