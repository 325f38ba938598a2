package orders

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/piwi3910/BoardCut/internal/model"
)

// DynamoAPI is the subset of the DynamoDB client used by DynamoRecorder.
type DynamoAPI interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	dynamodb.ScanAPIClient
}

// DynamoRecorder stores one item per order in a DynamoDB table keyed by "id".
type DynamoRecorder struct {
	Client DynamoAPI
	Table  string
}

func NewDynamoRecorder(cfg aws.Config, table string) *DynamoRecorder {
	return &DynamoRecorder{
		Client: dynamodb.NewFromConfig(cfg),
		Table:  table,
	}
}

func (r *DynamoRecorder) Record(ctx context.Context, order model.Order) error {
	_, err := r.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.Table),
		Item:      orderItem(order),
	})
	if err != nil {
		return fmt.Errorf("failed to put order item: %w", err)
	}
	return nil
}

func (r *DynamoRecorder) List(ctx context.Context) ([]model.Order, error) {
	list := []model.Order{}
	paginator := dynamodb.NewScanPaginator(r.Client, &dynamodb.ScanInput{
		TableName: aws.String(r.Table),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to scan orders: %w", err)
		}
		for _, item := range page.Items {
			list = append(list, itemOrder(item))
		}
	}
	return list, nil
}

func orderItem(o model.Order) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"id":            &types.AttributeValueMemberS{Value: o.ID},
		"customer_name": &types.AttributeValueMemberS{Value: o.CustomerName},
		"phone_number":  &types.AttributeValueMemberS{Value: o.Phone},
		"file_key":      &types.AttributeValueMemberS{Value: o.FileKey},
		"excel_url":     &types.AttributeValueMemberS{Value: o.ExcelURL},
		"created_at":    &types.AttributeValueMemberS{Value: o.CreatedAt.UTC().Format(time.RFC3339Nano)},
	}
}

func itemOrder(item map[string]types.AttributeValue) model.Order {
	o := model.Order{
		ID:           stringAttr(item, "id"),
		CustomerName: stringAttr(item, "customer_name"),
		Phone:        stringAttr(item, "phone_number"),
		FileKey:      stringAttr(item, "file_key"),
		ExcelURL:     stringAttr(item, "excel_url"),
	}
	if ts, err := time.Parse(time.RFC3339Nano, stringAttr(item, "created_at")); err == nil {
		o.CreatedAt = ts
	}
	return o
}

func stringAttr(item map[string]types.AttributeValue, name string) string {
	if v, ok := item[name].(*types.AttributeValueMemberS); ok {
		return v.Value
	}
	return ""
}
