package usecase

import (
	"context"
	"fmt"
	"time"

	"box-office/internal/data/entity"
	"box-office/internal/data/repository"
	"box-office/internal/dto/response"

	"go.uber.org/zap"
)

// PaymentService records payments against anything Payable.
type PaymentService interface {
	// NewPayment builds a completed payment for payable. It is not persisted.
	NewPayment(payable entity.Payable, provider entity.PaymentProvider, value int64, transactionID *string) *entity.Payment
	GetPayments(ctx context.Context, payable entity.Payable) ([]response.PaymentResponse, error)
}

type paymentService struct {
	repo repository.PaymentRepository
	log  *zap.Logger
}

func NewPaymentService(repo repository.PaymentRepository, log *zap.Logger) PaymentService {
	return &paymentService{
		repo: repo,
		log:  log.With(zap.String("service", "payment")),
	}
}

func (s *paymentService) NewPayment(payable entity.Payable, provider entity.PaymentProvider, value int64, transactionID *string) *entity.Payment {
	return &entity.Payment{
		Base:          entity.NewBase(time.Now()),
		PayableID:     payable.PaymentReferenceID(),
		PayableType:   payable.PayableType(),
		Provider:      provider,
		Value:         value,
		Status:        entity.PaymentStatusCompleted,
		TransactionID: transactionID,
	}
}

func (s *paymentService) GetPayments(ctx context.Context, payable entity.Payable) ([]response.PaymentResponse, error) {
	payments, err := s.repo.FindByPayable(ctx, payable)
	if err != nil {
		return nil, fmt.Errorf("get payments: %w", err)
	}

	resp := make([]response.PaymentResponse, len(payments))
	for i, p := range payments {
		resp[i] = response.PaymentToResponse(p)
	}
	return resp, nil
}
