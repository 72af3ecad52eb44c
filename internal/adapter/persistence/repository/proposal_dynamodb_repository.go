package repository

import (
	"context"
	"encoding/json"
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

const defaultProposalsTableName = "proposals"

type proposalItem struct {
	ID                string `dynamodbav:"id"`
	JobID             string `dynamodbav:"job_id"`
	ContractorID      string `dynamodbav:"contractor_id"`
	Status            string `dynamodbav:"status"`
	EstimatedCost     string `dynamodbav:"estimated_cost"`
	DurationDays      int    `dynamodbav:"duration_days"`
	Steps             string `dynamodbav:"steps,omitempty"`
	PaymentMilestones string `dynamodbav:"payment_milestones,omitempty"`
	HoldbackPercent   string `dynamodbav:"holdback_percent"`
	WarrantyTerms     string `dynamodbav:"warranty_terms,omitempty"`
	HasLicensedDesign bool   `dynamodbav:"has_licensed_design"`
	ExpiresAt         string `dynamodbav:"expires_at,omitempty"`
	CreatedAt         string `dynamodbav:"created_at"`
	UpdatedAt         string `dynamodbav:"updated_at"`
}

// ProposalDynamoRepository persists Proposal entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//
// Steps and payment milestones are stored as JSON documents inside the item:
// they are owned by the proposal, written once at authoring and immutable
// after send, so they never need item-level access.
type ProposalDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IProposalRepository = (*ProposalDynamoRepository)(nil)

func NewProposalDynamoRepository(ddb *dynamodb.Client) *ProposalDynamoRepository {
	return &ProposalDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("PROPOSALS_TABLE", defaultProposalsTableName),
	}
}

func (r *ProposalDynamoRepository) Create(ctx context.Context, p entities.Proposal) (entities.Proposal, error) {
	it, err := toProposalItem(p)
	if err != nil {
		return entities.Proposal{}, err
	}
	av, err := attributevalue.MarshalMap(it)
	if err != nil {
		return entities.Proposal{}, err
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
		return entities.Proposal{}, err
	}
	return p, nil
}

func (r *ProposalDynamoRepository) GetByID(ctx context.Context, id string) (entities.Proposal, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Proposal{}, err
	}
	if len(out.Item) == 0 {
		return entities.Proposal{}, nil
	}

	var it proposalItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Proposal{}, err
	}
	return fromProposalItem(it)
}

// UpdateStatusIfCurrent performs the check-and-write of a lifecycle
// transition as one conditional update. A failed condition (someone else
// transitioned first, or the proposal does not exist) comes back as a
// zero-value Proposal, never as a blind overwrite.
func (r *ProposalDynamoRepository) UpdateStatusIfCurrent(ctx context.Context, id string, expected, next entities.ProposalStatus) (entities.Proposal, error) {
	now := time.Now().UTC().Format(time.RFC3339Nano)

	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConditionExpression: aws.String("attribute_exists(#id) AND #status = :expected"),
		UpdateExpression:    aws.String("SET #status = :next, #updated_at = :updated_at"),
		ExpressionAttributeNames: map[string]string{
			"#id":         "id",
			"#status":     "status",
			"#updated_at": "updated_at",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":expected":   &types.AttributeValueMemberS{Value: string(expected)},
			":next":       &types.AttributeValueMemberS{Value: string(next)},
			":updated_at": &types.AttributeValueMemberS{Value: now},
		},
		ReturnValues: types.ReturnValueAllNew,
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return entities.Proposal{}, nil
		}
		return entities.Proposal{}, err
	}
	if len(out.Attributes) == 0 {
		return entities.Proposal{}, nil
	}

	var it proposalItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &it); err != nil {
		return entities.Proposal{}, err
	}
	return fromProposalItem(it)
}

func toProposalItem(p entities.Proposal) (proposalItem, error) {
	steps, err := json.Marshal(p.Steps)
	if err != nil {
		return proposalItem{}, err
	}
	milestones, err := json.Marshal(p.PaymentMilestones)
	if err != nil {
		return proposalItem{}, err
	}

	it := proposalItem{
		ID:                p.ID,
		JobID:             p.JobID,
		ContractorID:      p.ContractorID,
		Status:            string(p.Status),
		EstimatedCost:     floatToString(p.EstimatedCost),
		DurationDays:      p.DurationDays,
		Steps:             string(steps),
		PaymentMilestones: string(milestones),
		HoldbackPercent:   floatToString(p.HoldbackPercent),
		WarrantyTerms:     p.WarrantyTerms,
		HasLicensedDesign: p.HasLicensedDesign,
		CreatedAt:         p.CreatedAt.UTC().Format(time.RFC3339Nano),
		UpdatedAt:         p.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}
	if p.ExpiresAt != nil {
		it.ExpiresAt = p.ExpiresAt.UTC().Format(time.RFC3339Nano)
	}
	return it, nil
}

func fromProposalItem(it proposalItem) (entities.Proposal, error) {
	createdAt, _ := time.Parse(time.RFC3339Nano, it.CreatedAt)
	updatedAt, _ := time.Parse(time.RFC3339Nano, it.UpdatedAt)
	cost, _ := strconv.ParseFloat(it.EstimatedCost, 64)
	holdback, _ := strconv.ParseFloat(it.HoldbackPercent, 64)

	p := entities.Proposal{
		ID:                it.ID,
		JobID:             it.JobID,
		ContractorID:      it.ContractorID,
		Status:            entities.ProposalStatus(it.Status),
		EstimatedCost:     cost,
		DurationDays:      it.DurationDays,
		HoldbackPercent:   holdback,
		WarrantyTerms:     it.WarrantyTerms,
		HasLicensedDesign: it.HasLicensedDesign,
		CreatedAt:         createdAt,
		UpdatedAt:         updatedAt,
	}
	if it.Steps != "" {
		if err := json.Unmarshal([]byte(it.Steps), &p.Steps); err != nil {
			return entities.Proposal{}, err
		}
	}
	if it.PaymentMilestones != "" {
		if err := json.Unmarshal([]byte(it.PaymentMilestones), &p.PaymentMilestones); err != nil {
			return entities.Proposal{}, err
		}
	}
	if it.ExpiresAt != "" {
		if t, err := time.Parse(time.RFC3339Nano, it.ExpiresAt); err == nil {
			p.ExpiresAt = &t
		}
	}
	return p, nil
}
