package awsdynamo

import (
	"errors"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	uuid "github.com/satori/go.uuid"

	"yatube/model"
)

type DynamoGroupPeer struct {
	model *DynamoModel
}

func (p *DynamoGroupPeer) GetBySlug(slug string) (*model.Group, error) {
	params := &dynamodb.GetItemInput{
		Key: map[string]*dynamodb.AttributeValue{
			"slug": {
				S: aws.String(slug),
			},
		},
		TableName: aws.String("group"),
	}
	resp, err := p.model.db.GetItem(params)
	if err != nil {
		return nil, err
	}
	if resp.Item == nil {
		return nil, model.ErrNotFound
	}

	g := &model.Group{
		Peer: p,
	}
	if err := unmarshalGroup(g, resp.Item); err != nil {
		return nil, err
	}
	return g, nil
}

// GetGroups scans the whole group table. The table stays small enough for
// the form's group choices.
func (p *DynamoGroupPeer) GetGroups() ([]*model.Group, error) {
	params := &dynamodb.ScanInput{
		TableName: aws.String("group"),
	}
	var groups []*model.Group
	err := p.model.db.ScanPages(params, func(resp *dynamodb.ScanOutput, last bool) bool {
		for _, item := range resp.Items {
			g := &model.Group{Peer: p}
			if err := unmarshalGroup(g, item); err != nil {
				continue
			}
			groups = append(groups, g)
		}
		return true
	})
	if err != nil {
		return nil, err
	}
	return groups, nil
}

func (p *DynamoGroupPeer) NewGroup(slug string) *model.Group {
	return &model.Group{
		Peer: p,
		ID:   uuid.NewV4().String(),
		Slug: slug,
	}
}

func (p *DynamoGroupPeer) SaveNew(g *model.Group) error {
	if g == nil {
		return errors.New("group is nil")
	}
	items := make(map[string]*dynamodb.AttributeValue)
	if err := marshalGroup(g, items); err != nil {
		return err
	}
	params := &dynamodb.PutItemInput{
		Item:                items,
		TableName:           aws.String("group"),
		ConditionExpression: aws.String("attribute_not_exists(slug)"),
	}
	_, err := p.model.db.PutItem(params)
	return err
}

func marshalGroup(g *model.Group, items map[string]*dynamodb.AttributeValue) error {
	if g == nil {
		return errors.New("undefined group")
	}
	items["id"] = &dynamodb.AttributeValue{S: aws.String(g.ID)}
	items["slug"] = &dynamodb.AttributeValue{S: aws.String(g.Slug)}
	if g.Title != "" {
		items["title"] = &dynamodb.AttributeValue{S: aws.String(g.Title)}
	}
	if g.Description != "" {
		items["description"] = &dynamodb.AttributeValue{S: aws.String(g.Description)}
	}
	return nil
}

func unmarshalGroup(g *model.Group, items map[string]*dynamodb.AttributeValue) error {
	if g == nil {
		return errors.New("undefined group")
	}
	if v, ok := items["id"]; ok {
		if v.S != nil {
			g.ID = *v.S
		}
	}
	if v, ok := items["slug"]; ok {
		if v.S != nil {
			g.Slug = *v.S
		}
	}
	if v, ok := items["title"]; ok {
		if v.S != nil {
			g.Title = *v.S
		}
	}
	if v, ok := items["description"]; ok {
		if v.S != nil {
			g.Description = *v.S
		}
	}
	return nil
}
