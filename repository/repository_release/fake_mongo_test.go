package repository_release

import (
	"context"

	"github.com/newreleases/admin-console/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	driver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// fakeDB 记录调用参数，Find 返回预设文档
type fakeDB struct {
	coll *fakeCollection
}

func newFakeDB(docs ...interface{}) *fakeDB {
	return &fakeDB{coll: &fakeCollection{docs: docs}}
}

func (d *fakeDB) Collection(string) mongo.Collection { return d.coll }
func (d *fakeDB) Client() mongo.Client               { return nil }

type fakeCollection struct {
	docs []interface{}

	inserted    []interface{}
	findFilter  interface{}
	findOpts    []*options.FindOptions
	updateQuery interface{}
	update      interface{}
	matched     int64
	deleteQuery interface{}
	deleted     int64
	err         error
}

func (c *fakeCollection) FindOne(context.Context, interface{}) mongo.SingleResult {
	return fakeSingle{err: driver.ErrNoDocuments}
}

func (c *fakeCollection) InsertOne(_ context.Context, doc interface{}) (interface{}, error) {
	if c.err != nil {
		return nil, c.err
	}
	c.inserted = append(c.inserted, doc)
	return primitive.NewObjectID(), nil
}

func (c *fakeCollection) DeleteOne(context.Context, interface{}) (int64, error) {
	return c.deleted, c.err
}

func (c *fakeCollection) DeleteMany(_ context.Context, filter interface{}) (int64, error) {
	c.deleteQuery = filter
	return c.deleted, c.err
}

func (c *fakeCollection) Find(_ context.Context, filter interface{}, opts ...*options.FindOptions) (mongo.Cursor, error) {
	c.findFilter = filter
	c.findOpts = opts
	if c.err != nil {
		return nil, c.err
	}
	return &fakeCursor{docs: c.docs, pos: -1}, nil
}

func (c *fakeCollection) CountDocuments(context.Context, interface{}, ...*options.CountOptions) (int64, error) {
	return int64(len(c.docs)), c.err
}

func (c *fakeCollection) UpdateOne(_ context.Context, filter interface{}, update interface{}, _ ...*options.UpdateOptions) (*driver.UpdateResult, error) {
	c.updateQuery = filter
	c.update = update
	if c.err != nil {
		return nil, c.err
	}
	return &driver.UpdateResult{MatchedCount: c.matched, ModifiedCount: c.matched}, nil
}

func (c *fakeCollection) Indexes() mongo.IndexView { return nil }

type fakeSingle struct{ err error }

func (s fakeSingle) Decode(interface{}) error { return s.err }

type fakeCursor struct {
	docs []interface{}
	pos  int
}

func (c *fakeCursor) Close(context.Context) error { return nil }
func (c *fakeCursor) Err() error                  { return nil }

func (c *fakeCursor) Next(context.Context) bool {
	c.pos++
	return c.pos < len(c.docs)
}

func (c *fakeCursor) Decode(v interface{}) error {
	raw, err := bson.Marshal(c.docs[c.pos])
	if err != nil {
		return err
	}
	return bson.Unmarshal(raw, v)
}
