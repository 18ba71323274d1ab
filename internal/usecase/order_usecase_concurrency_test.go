package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"

	"transcribe_billing/internal/adapter/persistence/repository"
	"transcribe_billing/internal/domain/entities"
	"transcribe_billing/internal/infrastructure/payments"
)

func newMemoryOrderUseCase(t *testing.T) (*OrderUseCase, *repository.OrderMemoryRepository) {
	t.Helper()
	repo := repository.NewOrderMemoryRepository()
	verifier, err := payments.NewMercadoPagoVerifier("", DefaultCurrency, true, nil)
	if err != nil {
		t.Fatalf("verifier: %v", err)
	}
	return NewOrderUseCase(repo, verifier, nil, newEngine(t), OrderConfig{}, nil), repo
}

func TestOrderUseCase_ConcurrentConfirmSettlesOnce(t *testing.T) {
	ctx := context.Background()
	uc, _ := newMemoryOrderUseCase(t)
	o, err := uc.CreateOrder(ctx, customer, validCreateInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	const callers = 20
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		ok      int
		already int
	)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.ConfirmPayment(ctx, customer, o.PaymentReference, "MOCK-5490")
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				ok++
			case errors.Is(err, ErrAlreadyProcessed):
				already++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	if ok != 1 || already != callers-1 {
		t.Fatalf("expected exactly one settlement, got ok=%d already=%d", ok, already)
	}
	final, err := uc.GetByID(ctx, customer, o.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if final.PaymentStatus != entities.PaymentStatusPaid || len(final.History) != 2 {
		t.Fatalf("expected one paid transition in history, got %+v", final.History)
	}
}

func TestOrderUseCase_ConcurrentCreateReferencesAreUnique(t *testing.T) {
	ctx := context.Background()
	uc, repo := newMemoryOrderUseCase(t)

	const workers, perWorker = 50, 20
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		numbers = map[string]bool{}
		refs    = map[string]bool{}
	)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				o, err := uc.CreateOrder(ctx, customer, validCreateInput())
				if err != nil {
					t.Errorf("create: %v", err)
					return
				}
				mu.Lock()
				if numbers[o.OrderNumber] || refs[o.PaymentReference] {
					t.Errorf("duplicate references %s / %s", o.OrderNumber, o.PaymentReference)
				}
				numbers[o.OrderNumber] = true
				refs[o.PaymentReference] = true
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if len(numbers) != workers*perWorker || len(refs) != workers*perWorker {
		t.Fatalf("expected %d unique references, got %d numbers and %d payment references", workers*perWorker, len(numbers), len(refs))
	}
	stats, err := repo.Stats(ctx, fixedNow)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.TotalOrders != workers*perWorker {
		t.Fatalf("expected %d stored orders, got %d", workers*perWorker, stats.TotalOrders)
	}
}

func TestOrderUseCase_TransactionSettlesOneOrder(t *testing.T) {
	ctx := context.Background()
	uc, _ := newMemoryOrderUseCase(t)
	first, err := uc.CreateOrder(ctx, customer, validCreateInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	second, err := uc.CreateOrder(ctx, customer, validCreateInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := uc.ConfirmPayment(ctx, customer, first.PaymentReference, "MOCK-5490"); err != nil {
		t.Fatalf("first confirm: %v", err)
	}
	_, err = uc.ConfirmPayment(ctx, customer, second.PaymentReference, "MOCK-5490")
	if !errors.Is(err, ErrAmountMismatch) {
		t.Fatalf("expected reused transaction to be refused, got %v", err)
	}

	still, _ := uc.GetByID(ctx, customer, second.ID)
	if still.PaymentStatus != entities.PaymentStatusPending {
		t.Fatalf("refused settlement must leave the order payable, got %s", still.PaymentStatus)
	}
	paid, err := uc.ConfirmPayment(ctx, customer, second.PaymentReference, "MOCK-5490-second")
	if err != nil || paid.PaymentStatus != entities.PaymentStatusPaid {
		t.Fatalf("expected a fresh transaction to settle the order, got %+v %v", paid, err)
	}
}
