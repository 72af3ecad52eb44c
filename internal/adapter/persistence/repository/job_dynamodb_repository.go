package repository

import (
	"context"
	"encoding/json"
	"time"

	"renomarket/internal/domain/entities"
	"renomarket/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const defaultJobsTableName = "jobs"

type jobItem struct {
	ID          string `dynamodbav:"id"`
	HomeownerID string `dynamodbav:"homeowner_id"`
	Category    string `dynamodbav:"category"`
	Attributes  string `dynamodbav:"attributes,omitempty"`
	Location    string `dynamodbav:"location,omitempty"`
	CreatedAt   string `dynamodbav:"created_at"`
}

// JobDynamoRepository reads homeowner jobs. Jobs are written by the
// marketplace front end; the estimation engine only ever reads them.
//
// Table requirements:
//   - PK: id (string)
type JobDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IJobRepository = (*JobDynamoRepository)(nil)

func NewJobDynamoRepository(ddb *dynamodb.Client) *JobDynamoRepository {
	return &JobDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("JOBS_TABLE", defaultJobsTableName),
	}
}

func (r *JobDynamoRepository) GetByID(ctx context.Context, id string) (entities.Job, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
	})
	if err != nil {
		return entities.Job{}, err
	}
	if len(out.Item) == 0 {
		return entities.Job{}, nil
	}

	var it jobItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Job{}, err
	}
	return fromJobItem(it)
}

func fromJobItem(it jobItem) (entities.Job, error) {
	createdAt, _ := time.Parse(time.RFC3339Nano, it.CreatedAt)
	job := entities.Job{
		ID:          it.ID,
		HomeownerID: it.HomeownerID,
		Category:    it.Category,
		Attributes:  entities.AttributeMap{},
		CreatedAt:   createdAt,
	}
	if it.Attributes != "" {
		if err := json.Unmarshal([]byte(it.Attributes), &job.Attributes); err != nil {
			return entities.Job{}, err
		}
	}
	if it.Location != "" {
		var loc entities.Location
		if err := json.Unmarshal([]byte(it.Location), &loc); err != nil {
			return entities.Job{}, err
		}
		job.Location = &loc
	}
	return job, nil
}
