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

var plog *logrus.Entry

func init() {
	plog = logrus.New().WithFields(logrus.Fields{
		"env": "DynamoPostPeer",
	})
}

// Every post lives on the single feed partition so one range query returns
// the whole feed newest-first.
const feedID = "1"

type DynamoPostPeer struct {
	model *DynamoModel
}

func (pp *DynamoPostPeer) GetByID(id string) (*model.Post, error) {
	params := &dynamodb.QueryInput{
		TableName:              aws.String("post"),
		IndexName:              aws.String("IDIndex"),
		KeyConditionExpression: aws.String("id = :id"),
		ExpressionAttributeValues: map[string]*dynamodb.AttributeValue{
			":id": {
				S: aws.String(id),
			},
		},
		Limit: aws.Int64(1),
	}
	respQuery, err := pp.model.db.Query(params)
	if err != nil {
		return nil, err
	}
	if respQuery.Count == nil || *respQuery.Count != 1 || len(respQuery.Items) != 1 {
		return nil, model.ErrNotFound
	}
	item := respQuery.Items[0]
	if item["feed_id"] == nil || item["created_at"] == nil {
		return nil, errors.New("fields 'feed_id' or 'created_at' nil")
	}
	paramsQuery := &dynamodb.GetItemInput{
		Key: map[string]*dynamodb.AttributeValue{
			"feed_id": {
				S: item["feed_id"].S,
			},
			"created_at": {
				N: item["created_at"].N,
			},
		},
		TableName: aws.String("post"),
	}
	resp, err := pp.model.db.GetItem(paramsQuery)
	if err != nil {
		return nil, err
	}
	if resp.Item == nil {
		return nil, model.ErrNotFound
	}

	p := &model.Post{
		Peer: pp,
	}
	if err := unmarshalPost(p, resp.Item); err != nil {
		return nil, err
	}
	return p, nil
}

func (pp *DynamoPostPeer) NewPost(uid string) *model.Post {
	return &model.Post{
		Peer:      pp,
		ID:        uuid.NewV4().String(),
		UID:       uid,
		CreatedAt: time.Now(),
	}
}

func (pp *DynamoPostPeer) SaveNew(p *model.Post) error {
	if p == nil {
		return errors.New("post is nil")
	}
	items := make(map[string]*dynamodb.AttributeValue)
	items["feed_id"] = &dynamodb.AttributeValue{
		S: aws.String(feedID),
	}
	if err := marshalPost(p, items); err != nil {
		return err
	}
	params := &dynamodb.PutItemInput{
		Item:      items,
		TableName: aws.String("post"),
	}
	_, err := pp.model.db.PutItem(params)
	return err
}

func (pp *DynamoPostPeer) Update(p *model.Post) error {
	if p == nil {
		return errors.New("post is nil")
	}
	params := &dynamodb.UpdateItemInput{
		TableName: aws.String("post"),
		Key: map[string]*dynamodb.AttributeValue{
			"feed_id": {
				S: aws.String(feedID),
			},
			"created_at": {
				N: aws.String(strconv.FormatInt(p.CreatedAt.UnixNano(), 10)),
			},
		},
		// `text` is a reserved word in update expressions.
		UpdateExpression: aws.String("SET #text = :text"),
		ExpressionAttributeNames: map[string]*string{
			"#text": aws.String("text"),
		},
		ExpressionAttributeValues: map[string]*dynamodb.AttributeValue{
			":text": {
				S: aws.String(p.Text),
			},
			":id": {
				S: aws.String(p.ID),
			},
		},
		ConditionExpression: aws.String("id = :id"),
	}
	// group_id is a GSI key and must not be an empty string.
	if p.GroupID != "" {
		params.UpdateExpression = aws.String("SET #text = :text, group_id = :gid")
		params.ExpressionAttributeValues[":gid"] = &dynamodb.AttributeValue{S: aws.String(p.GroupID)}
	} else {
		params.UpdateExpression = aws.String("SET #text = :text REMOVE group_id")
	}
	_, err := pp.model.db.UpdateItem(params)
	return err
}

// queryPosts runs the query and follows LastEvaluatedKey until the result
// is complete.
func (pp *DynamoPostPeer) queryPosts(params *dynamodb.QueryInput, lastKey map[string]*dynamodb.AttributeValue) ([]*model.Post, error) {
	if lastKey != nil {
		params.ExclusiveStartKey = lastKey
	}
	resp, err := pp.model.db.Query(params)
	if err != nil {
		return nil, err
	}
	posts := make([]*model.Post, 0, len(resp.Items))
	for _, postResp := range resp.Items {
		p := &model.Post{Peer: pp}
		if err := unmarshalPost(p, postResp); err != nil {
			plog.Warnf("Error unmarshal post: %#v", postResp)
			continue
		}
		posts = append(posts, p)
	}
	if resp.LastEvaluatedKey != nil {
		more, err := pp.queryPosts(params, resp.LastEvaluatedKey)
		if err != nil {
			return nil, err
		}
		posts = append(posts, more...)
	}
	return posts, nil
}

func (pp *DynamoPostPeer) GetPosts() ([]*model.Post, error) {
	params := &dynamodb.QueryInput{
		TableName:              aws.String("post"),
		KeyConditionExpression: aws.String("feed_id = :fid"),
		ExpressionAttributeValues: map[string]*dynamodb.AttributeValue{
			":fid": {
				S: aws.String(feedID),
			},
		},
		ScanIndexForward: aws.Bool(false),
	}
	return pp.queryPosts(params, nil)
}

func (pp *DynamoPostPeer) GetByAuthor(uid string) ([]*model.Post, error) {
	params := &dynamodb.QueryInput{
		TableName:              aws.String("post"),
		IndexName:              aws.String("AuthorIndex"),
		KeyConditionExpression: aws.String("uid = :uid"),
		ExpressionAttributeValues: map[string]*dynamodb.AttributeValue{
			":uid": {
				S: aws.String(uid),
			},
		},
		ScanIndexForward: aws.Bool(false),
	}
	return pp.queryPosts(params, nil)
}

func (pp *DynamoPostPeer) GetByGroup(groupID string) ([]*model.Post, error) {
	params := &dynamodb.QueryInput{
		TableName:              aws.String("post"),
		IndexName:              aws.String("GroupIndex"),
		KeyConditionExpression: aws.String("group_id = :gid"),
		ExpressionAttributeValues: map[string]*dynamodb.AttributeValue{
			":gid": {
				S: aws.String(groupID),
			},
		},
		ScanIndexForward: aws.Bool(false),
	}
	return pp.queryPosts(params, nil)
}

func unmarshalPost(p *model.Post, items map[string]*dynamodb.AttributeValue) error {
	if p == nil {
		return errors.New("undefined post")
	}
	if v, ok := items["id"]; ok {
		if v.S != nil {
			p.ID = *v.S
		}
	}
	if v, ok := items["uid"]; ok {
		if v.S != nil {
			p.UID = *v.S
		}
	}
	if v, ok := items["username"]; ok {
		if v.S != nil {
			p.Username = *v.S
		}
	}
	if v, ok := items["text"]; ok {
		if v.S != nil {
			p.Text = *v.S
		}
	}
	if v, ok := items["group_id"]; ok {
		if v.S != nil {
			p.GroupID = *v.S
		}
	}
	if v, ok := items["created_at"]; ok {
		if v.N != nil {
			ts64, err := strconv.ParseInt(*v.N, 10, 64)
			if err == nil {
				p.CreatedAt = time.Unix(0, ts64)
			} else {
				plog.Warnf("Unable to parse 'created_at' on %s: %s", items["id"], err)
			}
		}
	}
	return nil
}

func marshalPost(p *model.Post, items map[string]*dynamodb.AttributeValue) error {
	if p == nil {
		return errors.New("undefined post")
	}
	items["id"] = &dynamodb.AttributeValue{S: aws.String(p.ID)}
	items["uid"] = &dynamodb.AttributeValue{S: aws.String(p.UID)}
	if p.Text != "" {
		items["text"] = &dynamodb.AttributeValue{S: aws.String(p.Text)}
	}
	if p.Username != "" {
		items["username"] = &dynamodb.AttributeValue{S: aws.String(p.Username)}
	}
	if p.GroupID != "" {
		items["group_id"] = &dynamodb.AttributeValue{S: aws.String(p.GroupID)}
	}
	items["created_at"] = &dynamodb.AttributeValue{N: aws.String(strconv.FormatInt(p.CreatedAt.UnixNano(), 10))}

	return nil
}
