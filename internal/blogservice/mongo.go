package blogservice

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sushihentaime/inkwell/internal/common"
)

// blogDocument stores content as JSON text so editor output round-trips unchanged.
type blogDocument struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	BlogID      string             `bson:"blog_id"`
	Title       string             `bson:"title"`
	Des         string             `bson:"des"`
	Banner      string             `bson:"banner"`
	Content     string             `bson:"content"`
	Tags        []string           `bson:"tags"`
	Author      primitive.ObjectID `bson:"author"`
	Activity    activityDocument   `bson:"activity"`
	Draft       bool               `bson:"draft"`
	PublishedAt time.Time          `bson:"publishedAt"`
	UpdatedAt   time.Time          `bson:"updatedAt"`

	// AuthorInfo is filled by $lookup and never written.
	AuthorInfo []authorDocument `bson:"author_info,omitempty"`
}

type activityDocument struct {
	TotalReads int `bson:"total_reads"`
}

type authorDocument struct {
	PersonalInfo struct {
		Fullname   string `bson:"fullname"`
		Username   string `bson:"username"`
		ProfileImg string `bson:"profile_img"`
	} `bson:"personal_info"`
}

func NewMongoModel(db *mongo.Database) *MongoModel {
	return &MongoModel{
		blogs: db.Collection(common.BlogsCollection),
		users: db.Collection(common.UsersCollection),
	}
}

func (m *MongoModel) EnsureIndexes(ctx context.Context) error {
	_, err := m.blogs.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "blog_id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("blogs_blog_id_key"),
		},
		{
			Keys:    bson.D{{Key: "draft", Value: 1}, {Key: "publishedAt", Value: -1}},
			Options: options.Index().SetName("blogs_published_idx"),
		},
	})
	return err
}

func (m *MongoModel) ListLatestPublished(ctx context.Context, limit int) ([]Blog, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"draft": false}}},
		{{Key: "$sort", Value: bson.D{{Key: "publishedAt", Value: -1}}}},
		{{Key: "$limit", Value: limit}},
		{{Key: "$lookup", Value: bson.M{
			"from":         common.UsersCollection,
			"localField":   "author",
			"foreignField": "_id",
			"as":           "author_info",
		}}},
		{{Key: "$project", Value: bson.M{"content": 0}}},
	}

	cur, err := m.blogs.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	blogs := []Blog{}
	for cur.Next(ctx) {
		var doc blogDocument
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		b := doc.toBlog()
		b.Content = nil
		blogs = append(blogs, *b)
	}

	if err := cur.Err(); err != nil {
		return nil, err
	}

	return blogs, nil
}

func (m *MongoModel) Insert(ctx context.Context, b *Blog) error {
	author, err := primitive.ObjectIDFromHex(b.AuthorID)
	if err != nil {
		return ErrUserForeignKey
	}

	if len(b.Content) == 0 {
		b.Content = emptyContent
	}

	now := time.Now().UTC().Truncate(time.Millisecond)
	doc := blogDocument{
		BlogID:      b.BlogID,
		Title:       b.Title,
		Des:         b.Des,
		Banner:      b.Banner,
		Content:     string(b.Content),
		Tags:        b.Tags,
		Author:      author,
		Draft:       b.Draft,
		PublishedAt: now,
		UpdatedAt:   now,
	}

	res, err := m.blogs.InsertOne(ctx, doc)
	if err != nil {
		if common.DuplicateKey(err, "blogs_blog_id_key") {
			return ErrDuplicateBlogID
		}
		return err
	}

	b.ID = res.InsertedID.(primitive.ObjectID).Hex()
	b.PublishedAt = now

	return nil
}

// UpdateOwned reports whether the blog was a draft before the update.
func (m *MongoModel) UpdateOwned(ctx context.Context, b *Blog) (bool, error) {
	author, err := primitive.ObjectIDFromHex(b.AuthorID)
	if err != nil {
		return false, ErrNotFoundOrUnauthorized
	}

	if len(b.Content) == 0 {
		b.Content = emptyContent
	}

	update := bson.M{"$set": bson.M{
		"title":     b.Title,
		"des":       b.Des,
		"banner":    b.Banner,
		"content":   string(b.Content),
		"tags":      b.Tags,
		"draft":     b.Draft,
		"updatedAt": time.Now().UTC(),
	}}

	var prev blogDocument
	err = m.blogs.FindOneAndUpdate(ctx,
		bson.M{"blog_id": b.BlogID, "author": author},
		update,
		options.FindOneAndUpdate().SetReturnDocument(options.Before),
	).Decode(&prev)
	if err != nil {
		switch {
		case errors.Is(err, mongo.ErrNoDocuments):
			return false, ErrNotFoundOrUnauthorized
		default:
			return false, err
		}
	}

	b.ID = prev.ID.Hex()
	b.PublishedAt = prev.PublishedAt

	return prev.Draft, nil
}

func (m *MongoModel) IncrementReads(ctx context.Context, blogID string, delta int) (*Blog, error) {
	var doc blogDocument

	err := m.blogs.FindOneAndUpdate(ctx,
		bson.M{"blog_id": blogID},
		bson.M{"$inc": bson.M{"activity.total_reads": delta}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		switch {
		case errors.Is(err, mongo.ErrNoDocuments):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}

	var author authorDocument
	err = m.users.FindOne(ctx, bson.M{"_id": doc.Author}).Decode(&author)
	if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, err
	}
	doc.AuthorInfo = []authorDocument{author}

	return doc.toBlog(), nil
}

func (m *MongoModel) GetOwned(ctx context.Context, blogID, authorID string) (*Blog, error) {
	author, err := primitive.ObjectIDFromHex(authorID)
	if err != nil {
		return nil, ErrNotFoundOrUnauthorized
	}

	var doc blogDocument
	err = m.blogs.FindOne(ctx, bson.M{"blog_id": blogID, "author": author}).Decode(&doc)
	if err != nil {
		switch {
		case errors.Is(err, mongo.ErrNoDocuments):
			return nil, ErrNotFoundOrUnauthorized
		default:
			return nil, err
		}
	}

	return doc.toBlog(), nil
}

func (m *MongoModel) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrRecordNotFound
	}

	res, err := m.blogs.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}

	if res.DeletedCount == 0 {
		return ErrRecordNotFound
	}

	return nil
}

func (d *blogDocument) toBlog() *Blog {
	b := &Blog{
		ID:          d.ID.Hex(),
		AuthorID:    d.Author.Hex(),
		BlogID:      d.BlogID,
		Title:       d.Title,
		Des:         d.Des,
		Banner:      d.Banner,
		Tags:        d.Tags,
		Activity:    Activity{TotalReads: d.Activity.TotalReads},
		Draft:       d.Draft,
		PublishedAt: d.PublishedAt,
	}

	if d.Content != "" {
		b.Content = json.RawMessage(d.Content)
	}

	if b.Tags == nil {
		b.Tags = []string{}
	}

	if len(d.AuthorInfo) > 0 {
		b.Author.PersonalInfo = AuthorInfo{
			Fullname:   d.AuthorInfo[0].PersonalInfo.Fullname,
			Username:   d.AuthorInfo[0].PersonalInfo.Username,
			ProfileImg: d.AuthorInfo[0].PersonalInfo.ProfileImg,
		}
	}

	return b
}
