package awsdynamo

import (
	"errors"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	uuid "github.com/satori/go.uuid"
	"github.com/sirupsen/logrus"

	"yatube/model"
)

var ulog *logrus.Entry

func init() {
	ulog = logrus.New().WithFields(logrus.Fields{
		"env": "DynamoUserPeer",
	})
}

type DynamoUserPeer struct {
	model *DynamoModel
}

func (p *DynamoUserPeer) GetByID(id string) (*model.User, error) {
	params := &dynamodb.GetItemInput{
		Key: map[string]*dynamodb.AttributeValue{
			"id": {
				S: aws.String(id),
			},
		},
		TableName:      aws.String("user"),
		ConsistentRead: aws.Bool(true),
	}
	resp, err := p.model.db.GetItem(params)
	if err != nil {
		return nil, err
	}
	if resp.Item == nil {
		return nil, model.ErrNotFound
	}

	u := &model.User{
		Peer: p,
	}
	if err := unmarshalUser(u, resp.Item); err != nil {
		return nil, err
	}
	return u, nil
}

func (p *DynamoUserPeer) GetByUsername(username string) (*model.User, error) {
	params := &dynamodb.QueryInput{
		TableName:              aws.String("user"),
		IndexName:              aws.String("UsernameIndex"),
		KeyConditionExpression: aws.String("username = :username"),
		ExpressionAttributeValues: map[string]*dynamodb.AttributeValue{
			":username": {
				S: aws.String(username),
			},
		},
	}

	resp, err := p.model.db.Query(params)
	if err != nil {
		return nil, err
	}
	if resp.Count == nil || *resp.Count != 1 || len(resp.Items) != 1 {
		return nil, model.ErrNotFound
	}

	u := &model.User{
		Peer: p,
	}
	if err := unmarshalUser(u, resp.Items[0]); err != nil {
		return nil, err
	}
	return u, nil
}

func (p *DynamoUserPeer) NewUser() *model.User {
	return &model.User{
		Peer:      p,
		ID:        uuid.NewV4().String(),
		CreatedAt: time.Now(),
	}
}

func (p *DynamoUserPeer) SaveNew(u *model.User) error {
	if u == nil {
		return errors.New("user is nil")
	}
	items := make(map[string]*dynamodb.AttributeValue)
	if err := marshalUser(u, items); err != nil {
		return err
	}
	params := &dynamodb.PutItemInput{
		Item:                items,
		TableName:           aws.String("user"),
		ConditionExpression: aws.String("attribute_not_exists(id)"),
	}
	_, err := p.model.db.PutItem(params)
	return err
}

func (p *DynamoUserPeer) UpdateLastLogin(id string) error {
	params := &dynamodb.UpdateItemInput{
		TableName: aws.String("user"),
		Key: map[string]*dynamodb.AttributeValue{
			"id": {
				S: aws.String(id),
			},
		},
		UpdateExpression: aws.String("SET lastlogin = :lastlogin"),
		ExpressionAttributeValues: map[string]*dynamodb.AttributeValue{
			":lastlogin": {
				N: aws.String(strconv.FormatInt(time.Now().Unix(), 10)),
			},
		},
		ReturnValues: aws.String("ALL_NEW"),
	}

	_, err := p.model.db.UpdateItem(params)
	return err
}

func marshalUser(u *model.User, items map[string]*dynamodb.AttributeValue) error {
	if u == nil {
		return errors.New("undefined user")
	}
	items["id"] = &dynamodb.AttributeValue{S: aws.String(u.ID)}
	if u.Username != "" {
		items["username"] = &dynamodb.AttributeValue{S: aws.String(u.Username)}
	}
	if u.PasswordHash != "" {
		items["password_hash"] = &dynamodb.AttributeValue{S: aws.String(u.PasswordHash)}
	}
	items["created_at"] = &dynamodb.AttributeValue{N: aws.String(strconv.FormatInt(u.CreatedAt.Unix(), 10))}
	items["lastlogin"] = &dynamodb.AttributeValue{N: aws.String(strconv.FormatInt(u.LastLogin.Unix(), 10))}

	return nil
}

func unmarshalUser(u *model.User, items map[string]*dynamodb.AttributeValue) error {
	if u == nil {
		return errors.New("undefined user")
	}
	if v, ok := items["id"]; ok {
		if v.S != nil {
			u.ID = *v.S
		}
	}
	if v, ok := items["username"]; ok {
		if v.S != nil {
			u.Username = *v.S
		}
	}
	if v, ok := items["password_hash"]; ok {
		if v.S != nil {
			u.PasswordHash = *v.S
		}
	}
	if v, ok := items["lastlogin"]; ok {
		if v.N != nil {
			ts64, err := strconv.ParseInt(*v.N, 10, 64)
			if err == nil {
				u.LastLogin = time.Unix(ts64, 0)
			} else {
				ulog.Warnf("Unable to parse 'lastlogin' on %s: %s", items["id"], err)
			}
		}
	}
	if v, ok := items["created_at"]; ok {
		if v.N != nil {
			ts64, err := strconv.ParseInt(*v.N, 10, 64)
			if err == nil {
				u.CreatedAt = time.Unix(ts64, 0)
			} else {
				ulog.Warnf("Unable to parse 'created_at' on %s: %s", items["id"], err)
			}
		}
	}
	return nil
}
