package repository

import (
	"context"
	"errors"
	"sort"
	"time"

	"renomarket/internal/domain/entities"
	"renomarket/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	defaultPaymentsTableName = "payments"
	paymentsProposalIDIndex  = "proposal_id-index"
)

type paymentItem struct {
	ID                 string `dynamodbav:"id"`
	ProposalID         string `dynamodbav:"proposal_id"`
	JobID              string `dynamodbav:"job_id,omitempty"`
	Type               string `dynamodbav:"type"`
	Status             string `dynamodbav:"status"`
	AmountCents        int64  `dynamodbav:"amount_cents"`
	PlatformFeeCents   int64  `dynamodbav:"platform_fee_cents"`
	NetAmountCents     int64  `dynamodbav:"net_amount_cents"`
	Currency           string `dynamodbav:"currency"`
	MilestoneSeq       int    `dynamodbav:"milestone_seq,omitempty"`
	ProviderPaymentID  string `dynamodbav:"provider_payment_id,omitempty"`
	ConfirmationHandle string `dynamodbav:"confirmation_handle,omitempty"`
	CreatedAt          string `dynamodbav:"created_at"`
}

// PaymentDynamoRepository persists the Payment ledger in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: proposal_id-index (PK: proposal_id)
//
// Payment ids are deterministic per money movement, so the conditional
// put in CreateOnce doubles as the idempotency barrier: the second writer
// gets the first writer's row back instead of a duplicate charge record.
type PaymentDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IPaymentRepository = (*PaymentDynamoRepository)(nil)

func NewPaymentDynamoRepository(ddb *dynamodb.Client) *PaymentDynamoRepository {
	return &PaymentDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("PAYMENTS_TABLE", defaultPaymentsTableName),
	}
}

func (r *PaymentDynamoRepository) CreateOnce(ctx context.Context, p entities.Payment) (entities.Payment, bool, error) {
	av, err := attributevalue.MarshalMap(toPaymentItem(p))
	if err != nil {
		return entities.Payment{}, false, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			existing, gerr := r.GetByID(ctx, p.ID)
			if gerr != nil {
				return entities.Payment{}, false, gerr
			}
			return existing, false, nil
		}
		return entities.Payment{}, false, err
	}
	return p, true, nil
}

func (r *PaymentDynamoRepository) GetByID(ctx context.Context, id string) (entities.Payment, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Payment{}, err
	}
	if len(out.Item) == 0 {
		return entities.Payment{}, nil
	}

	var it paymentItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Payment{}, err
	}
	return fromPaymentItem(it), nil
}

func (r *PaymentDynamoRepository) ListByProposalID(ctx context.Context, proposalID string) ([]entities.Payment, error) {
	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(paymentsProposalIDIndex),
		KeyConditionExpression: aws.String("#proposal_id = :proposal_id"),
		ExpressionAttributeNames: map[string]string{
			"#proposal_id": "proposal_id",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":proposal_id": &types.AttributeValueMemberS{Value: proposalID},
		},
	})
	if err != nil {
		return nil, err
	}

	payments := make([]entities.Payment, 0, len(out.Items))
	for _, item := range out.Items {
		var it paymentItem
		if err := attributevalue.UnmarshalMap(item, &it); err != nil {
			return nil, err
		}
		payments = append(payments, fromPaymentItem(it))
	}
	sort.Slice(payments, func(i, j int) bool { return payments[i].CreatedAt.Before(payments[j].CreatedAt) })
	return payments, nil
}

func toPaymentItem(p entities.Payment) paymentItem {
	return paymentItem{
		ID:                 p.ID,
		ProposalID:         p.ProposalID,
		JobID:              p.JobID,
		Type:               string(p.Type),
		Status:             string(p.Status),
		AmountCents:        p.AmountCents,
		PlatformFeeCents:   p.PlatformFeeCents,
		NetAmountCents:     p.NetAmountCents,
		Currency:           p.Currency,
		MilestoneSeq:       p.MilestoneSeq,
		ProviderPaymentID:  p.ProviderPaymentID,
		ConfirmationHandle: p.ConfirmationHandle,
		CreatedAt:          p.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func fromPaymentItem(it paymentItem) entities.Payment {
	createdAt, _ := time.Parse(time.RFC3339Nano, it.CreatedAt)
	return entities.Payment{
		ID:                 it.ID,
		ProposalID:         it.ProposalID,
		JobID:              it.JobID,
		Type:               entities.PaymentType(it.Type),
		Status:             entities.PaymentStatus(it.Status),
		AmountCents:        it.AmountCents,
		PlatformFeeCents:   it.PlatformFeeCents,
		NetAmountCents:     it.NetAmountCents,
		Currency:           it.Currency,
		MilestoneSeq:       it.MilestoneSeq,
		ProviderPaymentID:  it.ProviderPaymentID,
		ConfirmationHandle: it.ConfirmationHandle,
		CreatedAt:          createdAt,
	}
}
