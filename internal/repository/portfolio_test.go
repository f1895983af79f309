package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/require"

	"portfolio-chat/internal/domain"
)

type fakeAPI struct {
	out    *dynamodb.QueryOutput
	err    error
	lastIn *dynamodb.QueryInput
}

func (f *fakeAPI) Query(_ context.Context, in *dynamodb.QueryInput, _ ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	f.lastIn = in
	return f.out, f.err
}

func str(v string) types.AttributeValue { return &types.AttributeValueMemberS{Value: v} }

func strList(vals ...string) types.AttributeValue {
	members := make([]types.AttributeValue, 0, len(vals))
	for _, v := range vals {
		members = append(members, str(v))
	}
	return &types.AttributeValueMemberL{Value: members}
}

func projectItem(title string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"PK":            str("PORTFOLIO"),
		"SK":            str("PROJECT#001"),
		"title":         str(title),
		"description":   str("A sample project."),
		"technologies":  strList("Go", "DynamoDB"),
		"contributions": &types.AttributeValueMemberSS{Value: []string{"Built the API"}},
		"repositoryUrl": str("https://example.com/repo"),
		"sortOrder":     &types.AttributeValueMemberN{Value: "1"},
	}
}

func TestNew_Validations(t *testing.T) {
	_, err := New(nil, "table")
	require.Error(t, err)

	_, err = New(&fakeAPI{}, "  ")
	require.Error(t, err)
}

func TestListProjects_HappyPath(t *testing.T) {
	api := &fakeAPI{out: &dynamodb.QueryOutput{Items: []map[string]types.AttributeValue{
		projectItem("Portfolio Site"),
	}}}
	client, err := New(api, "portfolio")
	require.NoError(t, err)

	projects, err := client.ListProjects(context.Background())
	require.NoError(t, err)
	require.Equal(t, []domain.Project{{
		Title:         "Portfolio Site",
		Description:   "A sample project.",
		Technologies:  []string{"Go", "DynamoDB"},
		Contributions: []string{"Built the API"},
		RepositoryURL: "https://example.com/repo",
		SortOrder:     1,
	}}, projects)

	// Projects come back in sort-key order from one partition query.
	require.NotNil(t, api.lastIn.ScanIndexForward)
	require.True(t, *api.lastIn.ScanIndexForward)
	require.Equal(t, "portfolio", *api.lastIn.TableName)
}

func TestListProjects_OptionalAttributesMayBeAbsent(t *testing.T) {
	api := &fakeAPI{out: &dynamodb.QueryOutput{Items: []map[string]types.AttributeValue{
		{"PK": str("PORTFOLIO"), "SK": str("PROJECT#002"), "title": str("Bare Project")},
	}}}
	client, err := New(api, "portfolio")
	require.NoError(t, err)

	projects, err := client.ListProjects(context.Background())
	require.NoError(t, err)
	require.Len(t, projects, 1)
	require.Equal(t, "Bare Project", projects[0].Title)
	require.Empty(t, projects[0].Technologies)
}

func TestListProjects_MissingTitleIsAnError(t *testing.T) {
	api := &fakeAPI{out: &dynamodb.QueryOutput{Items: []map[string]types.AttributeValue{
		{"PK": str("PORTFOLIO"), "SK": str("PROJECT#003")},
	}}}
	client, err := New(api, "portfolio")
	require.NoError(t, err)

	_, err = client.ListProjects(context.Background())
	require.ErrorContains(t, err, "title")
}

func TestListProjects_QueryError(t *testing.T) {
	api := &fakeAPI{err: errors.New("throughput exceeded")}
	client, err := New(api, "portfolio")
	require.NoError(t, err)

	_, err = client.ListProjects(context.Background())
	require.ErrorContains(t, err, "throughput exceeded")
}
