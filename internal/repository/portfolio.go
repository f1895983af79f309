// Package repository implements the portfolio data source over a DynamoDB
// single table. Project items are keyed PK=PORTFOLIO, SK=PROJECT#<order> so
// one Query returns them in display order.
package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"portfolio-chat/internal/domain"
)

const (
	pkPortfolio     = "PORTFOLIO"
	skPrefixProject = "PROJECT#"
)

// dynamodbAPI is the minimal DynamoDB interface required by Client.
// Defined here for testability.
type dynamodbAPI interface {
	Query(ctx context.Context, in *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
}

// Client wraps the portfolio table for read access.
type Client struct {
	api       dynamodbAPI
	tableName string
}

func New(api dynamodbAPI, tableName string) (*Client, error) {
	if api == nil {
		return nil, errors.New("repository: api must not be nil")
	}
	if strings.TrimSpace(tableName) == "" {
		return nil, errors.New("repository: table name must not be empty")
	}
	return &Client{api: api, tableName: tableName}, nil
}

// ListProjects returns every project item in sort-key order. The context
// builder turns any error from here into its fixed fallback text.
func (c *Client) ListProjects(ctx context.Context) ([]domain.Project, error) {
	in := &dynamodb.QueryInput{
		TableName:              aws.String(c.tableName),
		KeyConditionExpression: aws.String("PK = :pk AND begins_with(SK, :prefix)"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk":     &types.AttributeValueMemberS{Value: pkPortfolio},
			":prefix": &types.AttributeValueMemberS{Value: skPrefixProject},
		},
		ScanIndexForward: aws.Bool(true),
	}

	out, err := c.api.Query(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("repository: ListProjects query: %w", err)
	}

	projects := make([]domain.Project, 0, len(out.Items))
	for _, item := range out.Items {
		p, err := itemToProject(item)
		if err != nil {
			return nil, fmt.Errorf("repository: ListProjects unmarshal: %w", err)
		}
		projects = append(projects, p)
	}
	return projects, nil
}

// itemToProject converts a DynamoDB attribute map to a Project. Title is
// required; everything else is optional.
func itemToProject(item map[string]types.AttributeValue) (domain.Project, error) {
	title, err := strAttr(item, "title")
	if err != nil {
		return domain.Project{}, err
	}
	description, _ := strAttr(item, "description")
	repositoryURL, _ := strAttr(item, "repositoryUrl")
	sortOrder, _ := intAttr(item, "sortOrder")

	return domain.Project{
		Title:         title,
		Description:   description,
		Technologies:  stringListAttr(item, "technologies"),
		Contributions: stringListAttr(item, "contributions"),
		RepositoryURL: repositoryURL,
		SortOrder:     sortOrder,
	}, nil
}

func strAttr(item map[string]types.AttributeValue, key string) (string, error) {
	v, ok := item[key]
	if !ok {
		return "", fmt.Errorf("repository: missing attribute %q", key)
	}
	s, ok := v.(*types.AttributeValueMemberS)
	if !ok {
		return "", fmt.Errorf("repository: attribute %q is not a string", key)
	}
	return s.Value, nil
}

func intAttr(item map[string]types.AttributeValue, key string) (int, error) {
	v, ok := item[key]
	if !ok {
		return 0, fmt.Errorf("repository: missing attribute %q", key)
	}
	n, ok := v.(*types.AttributeValueMemberN)
	if !ok {
		return 0, fmt.Errorf("repository: attribute %q is not a number", key)
	}
	parsed, err := strconv.Atoi(n.Value)
	if err != nil {
		return 0, fmt.Errorf("repository: parse attribute %q: %w", key, err)
	}
	return parsed, nil
}

// stringListAttr accepts either a DynamoDB list of strings or a string set;
// anything else decodes as empty.
func stringListAttr(item map[string]types.AttributeValue, key string) []string {
	switch v := item[key].(type) {
	case *types.AttributeValueMemberL:
		vals := make([]string, 0, len(v.Value))
		for _, member := range v.Value {
			if s, ok := member.(*types.AttributeValueMemberS); ok {
				vals = append(vals, s.Value)
			}
		}
		return vals
	case *types.AttributeValueMemberSS:
		return v.Value
	default:
		return nil
	}
}
