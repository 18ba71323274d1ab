package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"transcribe_billing/internal/domain/entities"
	"transcribe_billing/internal/domain/pricing"
	"transcribe_billing/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	DefaultOrdersTableName = "orders"
	ordersUserIDIndex      = "user_id-index"

	orderNumberGuardPrefix       = "order_number#"
	paymentReferenceGuardPrefix  = "payment_reference#"
	externalReferenceGuardPrefix = "external_payment_reference#"
)

// dynamoAPI is the subset of *dynamodb.Client used by the repository.
type dynamoAPI interface {
	GetItem(ctx context.Context, in *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	Query(ctx context.Context, in *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	Scan(ctx context.Context, in *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
	UpdateItem(ctx context.Context, in *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	TransactWriteItems(ctx context.Context, in *dynamodb.TransactWriteItemsInput, optFns ...func(*dynamodb.Options)) (*dynamodb.TransactWriteItemsOutput, error)
}

type specificationItem struct {
	DurationMinutes  float64 `dynamodbav:"duration_minutes"`
	SpeakerCount     int     `dynamodbav:"speaker_count"`
	Turnaround       string  `dynamodbav:"turnaround"`
	TimestampDensity string  `dynamodbav:"timestamp_density"`
	FullVerbatim     bool    `dynamodbav:"full_verbatim"`
}

type customerItem struct {
	Name  string `dynamodbav:"name"`
	Email string `dynamodbav:"email"`
	Phone string `dynamodbav:"phone,omitempty"`
}

type statusChangeItem struct {
	From      string `dynamodbav:"from"`
	To        string `dynamodbav:"to"`
	ActorID   string `dynamodbav:"actor_id"`
	ActorRole string `dynamodbav:"actor_role"`
	Reason    string `dynamodbav:"reason,omitempty"`
	At        string `dynamodbav:"at"`
}

type orderItem struct {
	ID               string            `dynamodbav:"id"`
	OrderNumber      string            `dynamodbav:"order_number"`
	UserID           string            `dynamodbav:"user_id"`
	Specification    specificationItem `dynamodbav:"specification"`
	Customer         customerItem      `dynamodbav:"customer"`
	SpecialRequests  string            `dynamodbav:"special_requests,omitempty"`
	PricingSnapshot  string            `dynamodbav:"pricing_snapshot"`
	PricingVersion   string            `dynamodbav:"pricing_version"`
	AmountMinor      int64             `dynamodbav:"amount_minor"`
	Currency         string            `dynamodbav:"currency"`
	Status           string            `dynamodbav:"status"`
	PaymentReference string            `dynamodbav:"payment_reference"`

	ExternalPaymentReference string `dynamodbav:"external_payment_reference,omitempty"`
	PaymentMethod            string `dynamodbav:"payment_method,omitempty"`
	PaidAt                   string `dynamodbav:"paid_at,omitempty"`
	FailureReason            string `dynamodbav:"failure_reason,omitempty"`
	AdminNotes               string `dynamodbav:"admin_notes,omitempty"`

	History   []statusChangeItem `dynamodbav:"history"`
	CreatedAt string             `dynamodbav:"created_at"`
	UpdatedAt string             `dynamodbav:"updated_at"`
}

// guardItem reserves a unique value. It has no user_id so it never shows up in the GSI.
type guardItem struct {
	ID      string `dynamodbav:"id"`
	OrderID string `dynamodbav:"order_id"`
}

// OrderDynamoRepository persists Order entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI user_id-index: user_id (string)
//
// Order numbers and payment references are unique through guard items written
// in the same transaction as the order. A paid transition writes a guard item
// for the provider transaction in the same transaction as the status update.

type OrderDynamoRepository struct {
	ddb       dynamoAPI
	tableName string
}

var _ interfaces.IOrderRepository = (*OrderDynamoRepository)(nil)

func NewOrderDynamoRepository(ddb dynamoAPI, tableName string) *OrderDynamoRepository {
	if tableName == "" {
		tableName = DefaultOrdersTableName
	}
	return &OrderDynamoRepository{ddb: ddb, tableName: tableName}
}

func (r *OrderDynamoRepository) Create(ctx context.Context, o entities.Order) (entities.Order, error) {
	it, err := toOrderItem(o)
	if err != nil {
		return entities.Order{}, err
	}
	av, err := attributevalue.MarshalMap(it)
	if err != nil {
		return entities.Order{}, err
	}
	numberGuard, err := attributevalue.MarshalMap(guardItem{ID: orderNumberGuardPrefix + o.OrderNumber, OrderID: o.ID})
	if err != nil {
		return entities.Order{}, err
	}
	refGuard, err := attributevalue.MarshalMap(guardItem{ID: paymentReferenceGuardPrefix + o.PaymentReference, OrderID: o.ID})
	if err != nil {
		return entities.Order{}, err
	}

	put := func(item map[string]types.AttributeValue) types.TransactWriteItem {
		return types.TransactWriteItem{Put: &types.Put{
			TableName:                aws.String(r.tableName),
			Item:                     item,
			ConditionExpression:      aws.String("attribute_not_exists(#id)"),
			ExpressionAttributeNames: map[string]string{"#id": "id"},
		}}
	}

	_, err = r.ddb.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{put(av), put(numberGuard), put(refGuard)},
	})
	if err != nil {
		var tce *types.TransactionCanceledException
		if errors.As(err, &tce) && hasConditionalFailure(tce) {
			return entities.Order{}, fmt.Errorf("%w: %s / %s", interfaces.ErrDuplicateKey, o.OrderNumber, o.PaymentReference)
		}
		return entities.Order{}, err
	}
	return o, nil
}

// cancelledAt reports whether the i-th item of a cancelled transaction failed its condition.
func cancelledAt(tce *types.TransactionCanceledException, i int) bool {
	return len(tce.CancellationReasons) > i && aws.ToString(tce.CancellationReasons[i].Code) == "ConditionalCheckFailed"
}

func hasConditionalFailure(tce *types.TransactionCanceledException) bool {
	if len(tce.CancellationReasons) == 0 {
		return true
	}
	for _, reason := range tce.CancellationReasons {
		if aws.ToString(reason.Code) == "ConditionalCheckFailed" {
			return true
		}
	}
	return false
}

func (r *OrderDynamoRepository) GetByID(ctx context.Context, id string) (entities.Order, error) {
	raw, err := r.getItem(ctx, id)
	if err != nil || len(raw) == 0 {
		return entities.Order{}, err
	}
	var it orderItem
	if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
		return entities.Order{}, err
	}
	if it.UserID == "" {
		// a guard item, not an order
		return entities.Order{}, nil
	}
	return fromOrderItem(it)
}

func (r *OrderDynamoRepository) GetByPaymentReference(ctx context.Context, paymentReference string) (entities.Order, error) {
	raw, err := r.getItem(ctx, paymentReferenceGuardPrefix+paymentReference)
	if err != nil || len(raw) == 0 {
		return entities.Order{}, err
	}
	var g guardItem
	if err := attributevalue.UnmarshalMap(raw, &g); err != nil {
		return entities.Order{}, err
	}
	if g.OrderID == "" {
		return entities.Order{}, nil
	}
	return r.GetByID(ctx, g.OrderID)
}

func (r *OrderDynamoRepository) getItem(ctx context.Context, id string) (map[string]types.AttributeValue, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, err
	}
	return out.Item, nil
}

func (r *OrderDynamoRepository) ListByUserID(ctx context.Context, userID string, status entities.PaymentStatus) ([]entities.Order, error) {
	in := &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(ordersUserIDIndex),
		KeyConditionExpression: aws.String("user_id = :uid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":uid": &types.AttributeValueMemberS{Value: userID},
		},
	}
	if status != "" {
		in.FilterExpression = aws.String("#status = :status")
		in.ExpressionAttributeNames = map[string]string{"#status": "status"}
		in.ExpressionAttributeValues[":status"] = &types.AttributeValueMemberS{Value: string(status)}
	}

	orders := make([]entities.Order, 0)
	p := dynamodb.NewQueryPaginator(r.ddb, in)
	for p.HasMorePages() {
		out, err := p.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, raw := range out.Items {
			var it orderItem
			if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
				return nil, err
			}
			o, err := fromOrderItem(it)
			if err != nil {
				return nil, err
			}
			orders = append(orders, o)
		}
	}
	return orders, nil
}

func (r *OrderDynamoRepository) TransitionStatus(ctx context.Context, id string, t entities.StatusTransition) (entities.Order, error) {
	update, err := r.transitionUpdate(id, t)
	if err != nil {
		return entities.Order{}, err
	}
	if tx := t.SettledTransaction(); tx != "" {
		return r.settle(ctx, id, tx, update)
	}

	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 update.TableName,
		Key:                       update.Key,
		ConditionExpression:       update.ConditionExpression,
		UpdateExpression:          update.UpdateExpression,
		ExpressionAttributeValues: update.ExpressionAttributeValues,
		ExpressionAttributeNames:  update.ExpressionAttributeNames,
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return entities.Order{}, nil
		}
		return entities.Order{}, err
	}
	if len(out.Attributes) == 0 {
		return entities.Order{}, nil
	}
	var it orderItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &it); err != nil {
		return entities.Order{}, err
	}
	return fromOrderItem(it)
}

// settle applies a paid transition together with the guard item of its
// provider transaction. Transactions return no attributes, so the order is
// read back afterwards.
func (r *OrderDynamoRepository) settle(ctx context.Context, id, tx string, update *types.Update) (entities.Order, error) {
	guard, err := attributevalue.MarshalMap(guardItem{ID: externalReferenceGuardPrefix + tx, OrderID: id})
	if err != nil {
		return entities.Order{}, err
	}

	_, err = r.ddb.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{Update: update},
			{Put: &types.Put{
				TableName:                aws.String(r.tableName),
				Item:                     guard,
				ConditionExpression:      aws.String("attribute_not_exists(#id)"),
				ExpressionAttributeNames: map[string]string{"#id": "id"},
			}},
		},
	})
	if err != nil {
		var tce *types.TransactionCanceledException
		if errors.As(err, &tce) {
			switch {
			case cancelledAt(tce, 0):
				return entities.Order{}, nil
			case cancelledAt(tce, 1):
				return entities.Order{}, fmt.Errorf("%w: %s", interfaces.ErrTransactionAlreadySettled, tx)
			}
		}
		return entities.Order{}, err
	}
	return r.GetByID(ctx, id)
}

func (r *OrderDynamoRepository) transitionUpdate(id string, t entities.StatusTransition) (*types.Update, error) {
	change, err := attributevalue.Marshal([]statusChangeItem{toStatusChangeItem(t.Change)})
	if err != nil {
		return nil, err
	}

	expr := "SET #status = :to, #updated_at = :updated_at, #history = list_append(if_not_exists(#history, :empty), :change)"
	names := map[string]string{
		"#status":     "status",
		"#updated_at": "updated_at",
		"#history":    "history",
	}
	values := map[string]types.AttributeValue{
		":from":       &types.AttributeValueMemberS{Value: string(t.From)},
		":to":         &types.AttributeValueMemberS{Value: string(t.To)},
		":updated_at": &types.AttributeValueMemberS{Value: formatTime(t.UpdatedAt)},
		":empty":      &types.AttributeValueMemberL{Value: []types.AttributeValue{}},
		":change":     change,
	}
	optional := []struct {
		attr, value string
	}{
		{"external_payment_reference", t.ExternalPaymentReference},
		{"payment_method", t.PaymentMethod},
		{"failure_reason", t.FailureReason},
		{"admin_notes", t.AdminNotes},
	}
	if t.PaidAt != nil {
		optional = append(optional, struct{ attr, value string }{"paid_at", formatTime(*t.PaidAt)})
	}
	for _, f := range optional {
		if f.value == "" {
			continue
		}
		expr += fmt.Sprintf(", #%s = :%s", f.attr, f.attr)
		names["#"+f.attr] = f.attr
		values[":"+f.attr] = &types.AttributeValueMemberS{Value: f.value}
	}

	return &types.Update{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConditionExpression:       aws.String("attribute_exists(#id) AND #status = :from"),
		UpdateExpression:          aws.String(expr),
		ExpressionAttributeValues: values,
		ExpressionAttributeNames:  mergeNames(names, map[string]string{"#id": "id"}),
	}, nil
}

type statsItem struct {
	Status      string `dynamodbav:"status"`
	AmountMinor int64  `dynamodbav:"amount_minor"`
	CreatedAt   string `dynamodbav:"created_at"`
}

// Stats scans the table. Guard items carry no user_id and are filtered out.
func (r *OrderDynamoRepository) Stats(ctx context.Context, since time.Time) (entities.OrderStats, error) {
	p := dynamodb.NewScanPaginator(r.ddb, &dynamodb.ScanInput{
		TableName:            aws.String(r.tableName),
		FilterExpression:     aws.String("attribute_exists(#user_id)"),
		ProjectionExpression: aws.String("#status, #amount_minor, #created_at"),
		ExpressionAttributeNames: map[string]string{
			"#user_id":      "user_id",
			"#status":       "status",
			"#amount_minor": "amount_minor",
			"#created_at":   "created_at",
		},
	})

	stats := entities.NewOrderStats(since)
	for p.HasMorePages() {
		out, err := p.NextPage(ctx)
		if err != nil {
			return entities.OrderStats{}, err
		}
		var items []statsItem
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &items); err != nil {
			return entities.OrderStats{}, err
		}
		for _, it := range items {
			stats.Add(entities.Order{
				PaymentStatus: entities.PaymentStatus(it.Status),
				AmountMinor:   it.AmountMinor,
				CreatedAt:     parseTime(it.CreatedAt),
			})
		}
	}
	return stats, nil
}

func toOrderItem(o entities.Order) (orderItem, error) {
	snapshot, err := json.Marshal(o.Pricing)
	if err != nil {
		return orderItem{}, err
	}
	history := make([]statusChangeItem, 0, len(o.History))
	for _, c := range o.History {
		history = append(history, toStatusChangeItem(c))
	}
	it := orderItem{
		ID:          o.ID,
		OrderNumber: o.OrderNumber,
		UserID:      o.UserID,
		Specification: specificationItem{
			DurationMinutes:  o.Specification.DurationMinutes,
			SpeakerCount:     o.Specification.SpeakerCount,
			Turnaround:       string(o.Specification.Turnaround),
			TimestampDensity: string(o.Specification.TimestampDensity),
			FullVerbatim:     o.Specification.FullVerbatim,
		},
		Customer:                 customerItem(o.Customer),
		SpecialRequests:          o.SpecialRequests,
		PricingSnapshot:          string(snapshot),
		PricingVersion:           string(o.PricingVersion),
		AmountMinor:              o.AmountMinor,
		Currency:                 o.Currency,
		Status:                   string(o.PaymentStatus),
		PaymentReference:         o.PaymentReference,
		ExternalPaymentReference: o.ExternalPaymentReference,
		PaymentMethod:            o.PaymentMethod,
		FailureReason:            o.FailureReason,
		AdminNotes:               o.AdminNotes,
		History:                  history,
		CreatedAt:                formatTime(o.CreatedAt),
		UpdatedAt:                formatTime(o.UpdatedAt),
	}
	if o.PaidAt != nil {
		it.PaidAt = formatTime(*o.PaidAt)
	}
	return it, nil
}

func fromOrderItem(it orderItem) (entities.Order, error) {
	var res pricing.Result
	if it.PricingSnapshot != "" {
		if err := json.Unmarshal([]byte(it.PricingSnapshot), &res); err != nil {
			return entities.Order{}, fmt.Errorf("order %s: decode pricing snapshot: %w", it.ID, err)
		}
	}
	history := make([]entities.StatusChange, 0, len(it.History))
	for _, c := range it.History {
		history = append(history, fromStatusChangeItem(c))
	}
	o := entities.Order{
		ID:          it.ID,
		OrderNumber: it.OrderNumber,
		UserID:      it.UserID,
		Specification: pricing.Specification{
			DurationMinutes:  it.Specification.DurationMinutes,
			SpeakerCount:     it.Specification.SpeakerCount,
			Turnaround:       pricing.TurnaroundTier(it.Specification.Turnaround),
			TimestampDensity: pricing.TimestampDensity(it.Specification.TimestampDensity),
			FullVerbatim:     it.Specification.FullVerbatim,
		},
		Customer:                 entities.CustomerInfo(it.Customer),
		SpecialRequests:          it.SpecialRequests,
		Pricing:                  res,
		PricingVersion:           pricing.Version(it.PricingVersion),
		AmountMinor:              it.AmountMinor,
		Currency:                 it.Currency,
		PaymentStatus:            entities.PaymentStatus(it.Status),
		PaymentReference:         it.PaymentReference,
		ExternalPaymentReference: it.ExternalPaymentReference,
		PaymentMethod:            it.PaymentMethod,
		FailureReason:            it.FailureReason,
		AdminNotes:               it.AdminNotes,
		History:                  history,
		CreatedAt:                parseTime(it.CreatedAt),
		UpdatedAt:                parseTime(it.UpdatedAt),
	}
	if it.PaidAt != "" {
		paidAt := parseTime(it.PaidAt)
		o.PaidAt = &paidAt
	}
	return o, nil
}

func toStatusChangeItem(c entities.StatusChange) statusChangeItem {
	return statusChangeItem{
		From:      string(c.From),
		To:        string(c.To),
		ActorID:   c.ActorID,
		ActorRole: string(c.ActorRole),
		Reason:    c.Reason,
		At:        formatTime(c.At),
	}
}

func fromStatusChangeItem(c statusChangeItem) entities.StatusChange {
	return entities.StatusChange{
		From:      entities.PaymentStatus(c.From),
		To:        entities.PaymentStatus(c.To),
		ActorID:   c.ActorID,
		ActorRole: entities.Role(c.ActorRole),
		Reason:    c.Reason,
		At:        parseTime(c.At),
	}
}
