package repository

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"transcribe_billing/internal/domain/entities"
	"transcribe_billing/internal/domain/pricing"
	"transcribe_billing/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

type fakeDynamo struct {
	items map[string]map[string]types.AttributeValue

	transactIn  *dynamodb.TransactWriteItemsInput
	transactErr error
	updateIn    *dynamodb.UpdateItemInput
	updateOut   *dynamodb.UpdateItemOutput
	updateErr   error
	queryIns    []*dynamodb.QueryInput
	pages       []*dynamodb.QueryOutput
	scanIns     []*dynamodb.ScanInput
	scanPages   []*dynamodb.ScanOutput
}

func (f *fakeDynamo) GetItem(_ context.Context, in *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	id := in.Key["id"].(*types.AttributeValueMemberS).Value
	return &dynamodb.GetItemOutput{Item: f.items[id]}, nil
}

func (f *fakeDynamo) Query(_ context.Context, in *dynamodb.QueryInput, _ ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	f.queryIns = append(f.queryIns, in)
	page := f.pages[0]
	f.pages = f.pages[1:]
	return page, nil
}

func (f *fakeDynamo) Scan(_ context.Context, in *dynamodb.ScanInput, _ ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error) {
	f.scanIns = append(f.scanIns, in)
	page := f.scanPages[0]
	f.scanPages = f.scanPages[1:]
	return page, nil
}

func (f *fakeDynamo) UpdateItem(_ context.Context, in *dynamodb.UpdateItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error) {
	f.updateIn = in
	return f.updateOut, f.updateErr
}

func (f *fakeDynamo) TransactWriteItems(_ context.Context, in *dynamodb.TransactWriteItemsInput, _ ...func(*dynamodb.Options)) (*dynamodb.TransactWriteItemsOutput, error) {
	f.transactIn = in
	if f.transactErr != nil {
		return nil, f.transactErr
	}
	if f.items == nil {
		f.items = map[string]map[string]types.AttributeValue{}
	}
	for _, ti := range in.TransactItems {
		if ti.Put == nil {
			continue
		}
		id := ti.Put.Item["id"].(*types.AttributeValueMemberS).Value
		f.items[id] = ti.Put.Item
	}
	return &dynamodb.TransactWriteItemsOutput{}, nil
}

func sampleOrder(t *testing.T) entities.Order {
	t.Helper()
	engine, err := pricing.NewEngine(pricing.DefaultConfig())
	if err != nil {
		t.Fatalf("engine: %v", err)
	}
	spec := pricing.Specification{DurationMinutes: 60.5, SpeakerCount: 2, Turnaround: pricing.TurnaroundStandard, TimestampDensity: pricing.TimestampNone}
	res, err := engine.Compute(spec)
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return entities.Order{
		ID:               "order-1",
		OrderNumber:      "TT-123456789",
		UserID:           "user-1",
		Specification:    spec,
		Customer:         entities.CustomerInfo{Name: "Ada", Email: "ada@example.com"},
		Pricing:          res,
		PricingVersion:   res.Version,
		AmountMinor:      res.TotalMinor,
		Currency:         "NGN",
		PaymentStatus:    entities.PaymentStatusPending,
		PaymentReference: "TT-1767225600123-0A1B2C3D",
		History: []entities.StatusChange{{
			To: entities.PaymentStatusPending, ActorID: "user-1", ActorRole: entities.RoleUser, At: now,
		}},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestOrderDynamoRepository_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	fake := &fakeDynamo{}
	repo := NewOrderDynamoRepository(fake, "")
	o := sampleOrder(t)

	if _, err := repo.Create(ctx, o); err != nil {
		t.Fatalf("create: %v", err)
	}
	if len(fake.transactIn.TransactItems) != 3 {
		t.Fatalf("expected order plus two guard items, got %d", len(fake.transactIn.TransactItems))
	}
	for _, ti := range fake.transactIn.TransactItems {
		if aws.ToString(ti.Put.ConditionExpression) != "attribute_not_exists(#id)" {
			t.Fatalf("expected conditional put, got %q", aws.ToString(ti.Put.ConditionExpression))
		}
		if aws.ToString(ti.Put.TableName) != DefaultOrdersTableName {
			t.Fatalf("unexpected table %q", aws.ToString(ti.Put.TableName))
		}
	}

	got, err := repo.GetByPaymentReference(ctx, o.PaymentReference)
	if err != nil {
		t.Fatalf("get by reference: %v", err)
	}
	if got.ID != o.ID || got.AmountMinor != 5490 || got.Customer != o.Customer || got.Specification != o.Specification {
		t.Fatalf("unexpected order: %+v", got)
	}
	if !got.Pricing.Equal(o.Pricing) {
		t.Fatalf("pricing snapshot did not survive storage: %+v vs %+v", got.Pricing, o.Pricing)
	}
	if len(got.History) != 1 || !got.History[0].At.Equal(o.History[0].At) {
		t.Fatalf("unexpected history: %+v", got.History)
	}

	missing, err := repo.GetByID(ctx, "nope")
	if err != nil || missing.ID != "" {
		t.Fatalf("expected zero order, got %+v %v", missing, err)
	}
	guard, err := repo.GetByID(ctx, orderNumberGuardPrefix+o.OrderNumber)
	if err != nil || guard.ID != "" {
		t.Fatalf("guard item must not decode as an order, got %+v %v", guard, err)
	}
}

func TestOrderDynamoRepository_CreateDuplicate(t *testing.T) {
	fake := &fakeDynamo{transactErr: &types.TransactionCanceledException{
		Message: aws.String("Transaction cancelled"),
		CancellationReasons: []types.CancellationReason{
			{Code: aws.String("None")},
			{Code: aws.String("ConditionalCheckFailed")},
			{Code: aws.String("None")},
		},
	}}
	repo := NewOrderDynamoRepository(fake, "orders")

	_, err := repo.Create(context.Background(), sampleOrder(t))
	if !errors.Is(err, interfaces.ErrDuplicateKey) {
		t.Fatalf("expected ErrDuplicateKey, got %v", err)
	}
}

func TestOrderDynamoRepository_TransitionStatus(t *testing.T) {
	ctx := context.Background()
	paidAt := time.Date(2026, 3, 1, 13, 0, 0, 0, time.UTC)
	paid := entities.StatusTransition{
		From:                     entities.PaymentStatusPending,
		To:                       entities.PaymentStatusPaid,
		Change:                   entities.StatusChange{From: entities.PaymentStatusPending, To: entities.PaymentStatusPaid, ActorID: "system", ActorRole: entities.RoleSystem, At: paidAt},
		ExternalPaymentReference: "123",
		PaymentMethod:            "card",
		PaidAt:                   &paidAt,
		UpdatedAt:                paidAt,
	}
	failed := entities.StatusTransition{
		From:                     entities.PaymentStatusPending,
		To:                       entities.PaymentStatusFailed,
		Change:                   entities.StatusChange{From: entities.PaymentStatusPending, To: entities.PaymentStatusFailed, ActorID: "system", ActorRole: entities.RoleSystem, At: paidAt},
		ExternalPaymentReference: "123",
		FailureReason:            "amount mismatch",
		UpdatedAt:                paidAt,
	}
	itemAfter := func(t *testing.T, tr entities.StatusTransition) map[string]types.AttributeValue {
		t.Helper()
		item, err := toOrderItem(sampleOrder(t).Apply(tr))
		if err != nil {
			t.Fatalf("to item: %v", err)
		}
		attrs, err := attributevalue.MarshalMap(item)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		return attrs
	}
	cancelled := func(codes ...string) error {
		reasons := make([]types.CancellationReason, 0, len(codes))
		for _, c := range codes {
			reasons = append(reasons, types.CancellationReason{Code: aws.String(c)})
		}
		return &types.TransactionCanceledException{Message: aws.String("Transaction cancelled"), CancellationReasons: reasons}
	}

	t.Run("paid settles with a transaction guard", func(t *testing.T) {
		fake := &fakeDynamo{items: map[string]map[string]types.AttributeValue{"order-1": itemAfter(t, paid)}}
		repo := NewOrderDynamoRepository(fake, "orders")

		got, err := repo.TransitionStatus(ctx, "order-1", paid)
		if err != nil {
			t.Fatalf("transition: %v", err)
		}
		if got.PaymentStatus != entities.PaymentStatusPaid || got.PaidAt == nil || len(got.History) != 2 {
			t.Fatalf("unexpected order: %+v", got)
		}
		if fake.updateIn != nil {
			t.Fatalf("paid transition must not use a plain update")
		}

		items := fake.transactIn.TransactItems
		if len(items) != 2 || items[0].Update == nil || items[1].Put == nil {
			t.Fatalf("expected update plus guard put, got %+v", items)
		}
		up := items[0].Update
		if aws.ToString(up.ConditionExpression) != "attribute_exists(#id) AND #status = :from" {
			t.Fatalf("unexpected condition %q", aws.ToString(up.ConditionExpression))
		}
		if up.ExpressionAttributeValues[":from"].(*types.AttributeValueMemberS).Value != "pending" {
			t.Fatalf("expected :from pending")
		}
		expr := aws.ToString(up.UpdateExpression)
		for _, part := range []string{"list_append(if_not_exists(#history, :empty), :change)", "#payment_method = :payment_method", "#paid_at = :paid_at"} {
			if !strings.Contains(expr, part) {
				t.Fatalf("update expression %q missing %q", expr, part)
			}
		}
		if strings.Contains(expr, "admin_notes") {
			t.Fatalf("empty fields must not be written: %q", expr)
		}
		guard := items[1].Put
		if guard.Item["id"].(*types.AttributeValueMemberS).Value != externalReferenceGuardPrefix+"123" ||
			aws.ToString(guard.ConditionExpression) != "attribute_not_exists(#id)" {
			t.Fatalf("unexpected guard put: %+v", guard)
		}
	})

	t.Run("transaction already settled another order", func(t *testing.T) {
		fake := &fakeDynamo{transactErr: cancelled("None", "ConditionalCheckFailed")}
		repo := NewOrderDynamoRepository(fake, "orders")
		if _, err := repo.TransitionStatus(ctx, "order-2", paid); !errors.Is(err, interfaces.ErrTransactionAlreadySettled) {
			t.Fatalf("expected ErrTransactionAlreadySettled, got %v", err)
		}
	})

	t.Run("lost race on paid transition", func(t *testing.T) {
		fake := &fakeDynamo{transactErr: cancelled("ConditionalCheckFailed", "ConditionalCheckFailed")}
		repo := NewOrderDynamoRepository(fake, "orders")
		got, err := repo.TransitionStatus(ctx, "order-1", paid)
		if err != nil || got.ID != "" {
			t.Fatalf("expected zero order without error, got %+v %v", got, err)
		}
	})

	t.Run("failed uses a conditional update", func(t *testing.T) {
		fake := &fakeDynamo{updateOut: &dynamodb.UpdateItemOutput{Attributes: itemAfter(t, failed)}}
		repo := NewOrderDynamoRepository(fake, "orders")

		got, err := repo.TransitionStatus(ctx, "order-1", failed)
		if err != nil {
			t.Fatalf("transition: %v", err)
		}
		if got.PaymentStatus != entities.PaymentStatusFailed || got.FailureReason != "amount mismatch" {
			t.Fatalf("unexpected order: %+v", got)
		}
		if fake.transactIn != nil {
			t.Fatalf("failed transition must not claim the transaction")
		}
		if aws.ToString(fake.updateIn.ConditionExpression) != "attribute_exists(#id) AND #status = :from" {
			t.Fatalf("unexpected condition %q", aws.ToString(fake.updateIn.ConditionExpression))
		}
	})

	t.Run("condition failed", func(t *testing.T) {
		fake := &fakeDynamo{updateErr: &types.ConditionalCheckFailedException{Message: aws.String("conditional")}}
		repo := NewOrderDynamoRepository(fake, "orders")
		got, err := repo.TransitionStatus(ctx, "order-1", failed)
		if err != nil || got.ID != "" {
			t.Fatalf("expected zero order without error, got %+v %v", got, err)
		}
	})

	t.Run("other errors propagate", func(t *testing.T) {
		fake := &fakeDynamo{updateErr: errors.New("throttled")}
		repo := NewOrderDynamoRepository(fake, "orders")
		if _, err := repo.TransitionStatus(ctx, "order-1", failed); err == nil {
			t.Fatalf("expected error")
		}
	})
}

func TestOrderDynamoRepository_Stats(t *testing.T) {
	since := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	page := func(status string, amount int64, created time.Time) map[string]types.AttributeValue {
		attrs, err := attributevalue.MarshalMap(statsItem{Status: status, AmountMinor: amount, CreatedAt: formatTime(created)})
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		return attrs
	}
	fake := &fakeDynamo{scanPages: []*dynamodb.ScanOutput{
		{
			Items: []map[string]types.AttributeValue{
				page("paid", 5400, since.AddDate(0, 0, -3)),
				page("paid", 2700, since.AddDate(0, 0, 3)),
			},
			LastEvaluatedKey: map[string]types.AttributeValue{"id": &types.AttributeValueMemberS{Value: "order-2"}},
		},
		{Items: []map[string]types.AttributeValue{page("pending", 900, since.AddDate(0, 0, 4))}},
	}}
	repo := NewOrderDynamoRepository(fake, "orders")

	stats, err := repo.Stats(context.Background(), since)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if len(fake.scanIns) != 2 || aws.ToString(fake.scanIns[0].FilterExpression) != "attribute_exists(#user_id)" {
		t.Fatalf("expected a filtered scan over two pages, got %d", len(fake.scanIns))
	}
	if stats.TotalOrders != 3 || stats.Count(entities.PaymentStatusPaid) != 2 || stats.Count(entities.PaymentStatusPending) != 1 {
		t.Fatalf("unexpected counts: %+v", stats)
	}
	if stats.TotalRevenueMinor != 8100 || stats.RecentRevenueMinor != 2700 {
		t.Fatalf("unexpected revenue: %+v", stats)
	}
}

func TestOrderDynamoRepository_ListByUserID(t *testing.T) {
	o := sampleOrder(t)
	item, err := toOrderItem(o)
	if err != nil {
		t.Fatalf("to item: %v", err)
	}
	attrs, err := attributevalue.MarshalMap(item)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	fake := &fakeDynamo{pages: []*dynamodb.QueryOutput{
		{Items: []map[string]types.AttributeValue{attrs}, LastEvaluatedKey: map[string]types.AttributeValue{"id": &types.AttributeValueMemberS{Value: "order-1"}}},
		{Items: []map[string]types.AttributeValue{attrs}},
	}}
	repo := NewOrderDynamoRepository(fake, "orders")

	got, err := repo.ListByUserID(context.Background(), "user-1", entities.PaymentStatusPending)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 2 || len(fake.queryIns) != 2 {
		t.Fatalf("expected two pages, got %d orders in %d queries", len(got), len(fake.queryIns))
	}
	in := fake.queryIns[0]
	if aws.ToString(in.IndexName) != ordersUserIDIndex || aws.ToString(in.FilterExpression) != "#status = :status" {
		t.Fatalf("unexpected query input: %+v", in)
	}
}
