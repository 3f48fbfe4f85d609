package integrationtest

import (
	"fmt"
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/stretchr/testify/assert"

	"yatube/model"
)

func loadGroupFixtures(sess *session.Session) error {
	db := dynamodb.New(sess)
	if err := deleteTable(db, "group"); err != nil {
		fmt.Printf("Warn: Delete table 'group' failed: %s\n", err)
	}
	return createGroupTable(db)
}

func createGroupTable(db *dynamodb.DynamoDB) error {
	params := &dynamodb.CreateTableInput{
		TableName: aws.String("group"),
		KeySchema: []*dynamodb.KeySchemaElement{
			{
				AttributeName: aws.String("slug"),
				KeyType:       aws.String("HASH"),
			},
		},
		AttributeDefinitions: []*dynamodb.AttributeDefinition{
			{
				AttributeName: aws.String("slug"),
				AttributeType: aws.String("S"),
			},
		},
		ProvisionedThroughput: throughput(),
	}
	_, err := db.CreateTable(params)
	return err
}

func TestGroupPeer(t *testing.T) {
	assert := assert.New(t)
	setup()
	peer := mmodel.GroupPeer()

	g := peer.NewGroup("test-slug")
	g.Title = "Testing"
	g.Description = "All about tests"
	assert.NoError(peer.SaveNew(g))

	got, err := peer.GetBySlug("test-slug")
	assert.NoError(err)
	assert.Equal(g.ID, got.ID)
	assert.Equal("Testing", got.Title)

	_, err = peer.GetBySlug("unknown")
	assert.ErrorIs(err, model.ErrNotFound)

	groups, err := peer.GetGroups()
	assert.NoError(err)
	assert.NotEmpty(groups)
}
