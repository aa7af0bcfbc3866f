package payment

import (
	"context"

	"github.com/iepin-personal/planilla-backend-go/internal/domain/auth"
)

type Service interface {
	List(ctx context.Context, filter Filter) ([]PaymentResponse, error)
	Get(ctx context.Context, id string) (PaymentResponse, error)
	Create(ctx context.Context, session auth.Session, req CreatePaymentRequest) (PaymentResponse, error)
	Complete(ctx context.Context, id string) (PaymentResponse, error)
	Fail(ctx context.Context, id string) (PaymentResponse, error)
	Cancel(ctx context.Context, id string) (PaymentResponse, error)

	// Subscribe streams full payment-list snapshots: the current list first,
	// then a fresh snapshot after every change.
	Subscribe(ctx context.Context) (<-chan []PaymentResponse, func(), error)
}
