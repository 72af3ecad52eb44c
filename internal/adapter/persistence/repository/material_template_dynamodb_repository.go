package repository

import (
	"context"
	"sort"
	"strconv"

	"renomarket/internal/domain/entities"
	"renomarket/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const defaultMaterialTemplatesTableName = "material_templates"

type materialTemplateItem struct {
	Category        string `dynamodbav:"category"`
	SortKey         int    `dynamodbav:"sort_key"`
	Name            string `dynamodbav:"name"`
	Formula         string `dynamodbav:"formula"`
	DefaultQuantity string `dynamodbav:"default_quantity,omitempty"`
	Unit            string `dynamodbav:"unit,omitempty"`
	UnitPrice       string `dynamodbav:"unit_price"`
	IsRequired      bool   `dynamodbav:"is_required"`
}

// MaterialTemplateDynamoRepository reads the per-category materials catalog.
//
// Table requirements:
//   - PK: category (string)
//   - SK: sort_key (number)
//
// Templates are administrator-configured reference data; this repository
// never writes them.
type MaterialTemplateDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IMaterialTemplateRepository = (*MaterialTemplateDynamoRepository)(nil)

func NewMaterialTemplateDynamoRepository(ddb *dynamodb.Client) *MaterialTemplateDynamoRepository {
	return &MaterialTemplateDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("MATERIAL_TEMPLATES_TABLE", defaultMaterialTemplatesTableName),
	}
}

func (r *MaterialTemplateDynamoRepository) ListByCategory(ctx context.Context, category string) ([]entities.MaterialTemplate, error) {
	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
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

	templates := make([]entities.MaterialTemplate, 0, len(out.Items))
	for _, item := range out.Items {
		var it materialTemplateItem
		if err := attributevalue.UnmarshalMap(item, &it); err != nil {
			return nil, err
		}
		templates = append(templates, fromMaterialTemplateItem(it))
	}
	sort.Slice(templates, func(i, j int) bool { return templates[i].SortKey < templates[j].SortKey })
	return templates, nil
}

func fromMaterialTemplateItem(it materialTemplateItem) entities.MaterialTemplate {
	defaultQty, _ := strconv.ParseFloat(it.DefaultQuantity, 64)
	unitPrice, _ := strconv.ParseFloat(it.UnitPrice, 64)
	return entities.MaterialTemplate{
		Category:        it.Category,
		SortKey:         it.SortKey,
		Name:            it.Name,
		Formula:         it.Formula,
		DefaultQuantity: defaultQty,
		Unit:            it.Unit,
		UnitPrice:       unitPrice,
		IsRequired:      it.IsRequired,
	}
}
