package repository

import (
	"context"
	"errors"
	"strconv"
	"time"

	"renomarket/internal/domain/entities"
	"renomarket/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	defaultContractorsTableName     = "contractors"
	defaultRateSubmissionsTableName = "rate_submissions"
	rateSubmissionsCategoryIndex    = "category-index"
)

type contractorItem struct {
	ID               string `dynamodbav:"id"`
	Name             string `dynamodbav:"name"`
	PaymentAccountID string `dynamodbav:"payment_account_id,omitempty"`
	CreatedAt        string `dynamodbav:"created_at"`
	UpdatedAt        string `dynamodbav:"updated_at"`
}

type rateSubmissionItem struct {
	ContractorID string `dynamodbav:"contractor_id"`
	Category     string `dynamodbav:"category"`
	MinRate      string `dynamodbav:"min_rate"`
	MaxRate      string `dynamodbav:"max_rate"`
	SubmittedAt  string `dynamodbav:"submitted_at"`
}

// ContractorDynamoRepository reads contractor profiles and their hourly
// rate submissions.
//
// Table requirements:
//   - contractors: PK id (string)
//   - rate_submissions: PK contractor_id, GSI category-index (PK: category)
type ContractorDynamoRepository struct {
	ddb        *dynamodb.Client
	tableName  string
	ratesTable string
}

var _ interfaces.IContractorRepository = (*ContractorDynamoRepository)(nil)

func NewContractorDynamoRepository(ddb *dynamodb.Client) *ContractorDynamoRepository {
	return &ContractorDynamoRepository{
		ddb:        ddb,
		tableName:  getenvDefault("CONTRACTORS_TABLE", defaultContractorsTableName),
		ratesTable: getenvDefault("RATE_SUBMISSIONS_TABLE", defaultRateSubmissionsTableName),
	}
}

func (r *ContractorDynamoRepository) GetByID(ctx context.Context, id string) (entities.Contractor, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Contractor{}, err
	}
	if len(out.Item) == 0 {
		return entities.Contractor{}, nil
	}

	var it contractorItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Contractor{}, err
	}
	return fromContractorItem(it), nil
}

func (r *ContractorDynamoRepository) SetPaymentAccountID(ctx context.Context, id, accountID string) (entities.Contractor, error) {
	now := time.Now().UTC().Format(time.RFC3339Nano)

	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConditionExpression: aws.String("attribute_exists(#id)"),
		UpdateExpression:    aws.String("SET #payment_account_id = :account_id, #updated_at = :updated_at"),
		ExpressionAttributeNames: map[string]string{
			"#id":                 "id",
			"#payment_account_id": "payment_account_id",
			"#updated_at":         "updated_at",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":account_id": &types.AttributeValueMemberS{Value: accountID},
			":updated_at": &types.AttributeValueMemberS{Value: now},
		},
		ReturnValues: types.ReturnValueAllNew,
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return entities.Contractor{}, nil
		}
		return entities.Contractor{}, err
	}
	if len(out.Attributes) == 0 {
		return entities.Contractor{}, nil
	}

	var it contractorItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &it); err != nil {
		return entities.Contractor{}, err
	}
	return fromContractorItem(it), nil
}

func (r *ContractorDynamoRepository) ListRateSubmissions(ctx context.Context, category string) ([]entities.RateSubmission, error) {
	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.ratesTable),
		IndexName:              aws.String(rateSubmissionsCategoryIndex),
		KeyConditionExpression: aws.String("#category = :category"),
		ExpressionAttributeNames: map[string]string{
			"#category": "category",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":category": &types.AttributeValueMemberS{Value: category},
		},
	})
	if err != nil {
		return nil, err
	}

	subs := make([]entities.RateSubmission, 0, len(out.Items))
	for _, item := range out.Items {
		var it rateSubmissionItem
		if err := attributevalue.UnmarshalMap(item, &it); err != nil {
			return nil, err
		}
		minRate, _ := strconv.ParseFloat(it.MinRate, 64)
		maxRate, _ := strconv.ParseFloat(it.MaxRate, 64)
		submittedAt, _ := time.Parse(time.RFC3339Nano, it.SubmittedAt)
		subs = append(subs, entities.RateSubmission{
			ContractorID: it.ContractorID,
			Category:     it.Category,
			MinRate:      minRate,
			MaxRate:      maxRate,
			SubmittedAt:  submittedAt,
		})
	}
	return subs, nil
}

func fromContractorItem(it contractorItem) entities.Contractor {
	createdAt, _ := time.Parse(time.RFC3339Nano, it.CreatedAt)
	updatedAt, _ := time.Parse(time.RFC3339Nano, it.UpdatedAt)
	return entities.Contractor{
		ID:               it.ID,
		Name:             it.Name,
		PaymentAccountID: it.PaymentAccountID,
		CreatedAt:        createdAt,
		UpdatedAt:        updatedAt,
	}
}
