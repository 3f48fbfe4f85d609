// Package awsdynamo implements the model peers on DynamoDB.
//
// Tables: `post` keyed (feed_id, created_at) with the IDIndex, AuthorIndex
// and GroupIndex GSIs, `user` keyed by id with the UsernameIndex GSI, and
// `group` keyed by slug.
package awsdynamo

import (
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"

	"yatube/model"
)

type DynamoModel struct {
	db        *dynamodb.DynamoDB
	userPeer  *DynamoUserPeer
	postPeer  *DynamoPostPeer
	groupPeer *DynamoGroupPeer
}

func NewModelFromSession(s *session.Session) *DynamoModel {
	m := &DynamoModel{
		db: dynamodb.New(s),
	}
	m.userPeer = &DynamoUserPeer{model: m}
	m.postPeer = &DynamoPostPeer{model: m}
	m.groupPeer = &DynamoGroupPeer{model: m}
	return m
}

func (m *DynamoModel) UserPeer() model.UserPeer {
	return m.userPeer
}

func (m *DynamoModel) PostPeer() model.PostPeer {
	return m.postPeer
}

func (m *DynamoModel) GroupPeer() model.GroupPeer {
	return m.groupPeer
}
