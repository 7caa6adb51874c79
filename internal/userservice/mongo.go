package userservice

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sushihentaime/inkwell/internal/common"
)

type userDocument struct {
	ID           primitive.ObjectID   `bson:"_id,omitempty"`
	PersonalInfo personalInfoDocument `bson:"personal_info"`
	AccountInfo  accountInfoDocument  `bson:"account_info"`
	Blogs        []primitive.ObjectID `bson:"blogs"`
	JoinedAt     time.Time            `bson:"joinedAt"`
}

type personalInfoDocument struct {
	Fullname   string `bson:"fullname"`
	Email      string `bson:"email"`
	Username   string `bson:"username"`
	Password   []byte `bson:"password"`
	ProfileImg string `bson:"profile_img"`
}

type accountInfoDocument struct {
	TotalPosts int `bson:"total_posts"`
	TotalReads int `bson:"total_reads"`
}

func NewMongoModel(db *mongo.Database) *MongoModel {
	return &MongoModel{users: db.Collection(common.UsersCollection)}
}

// EnsureIndexes creates the unique email and username indexes.
func (m *MongoModel) EnsureIndexes(ctx context.Context) error {
	_, err := m.users.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "personal_info.email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("users_email_key"),
		},
		{
			Keys:    bson.D{{Key: "personal_info.username", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("users_username_key"),
		},
	})
	return err
}

func (m *MongoModel) Insert(ctx context.Context, u *User) error {
	doc := userDocument{
		PersonalInfo: personalInfoDocument{
			Fullname:   u.PersonalInfo.Fullname,
			Email:      u.PersonalInfo.Email,
			Username:   u.PersonalInfo.Username,
			Password:   u.PersonalInfo.Password.hash,
			ProfileImg: u.PersonalInfo.ProfileImg,
		},
		Blogs:    []primitive.ObjectID{},
		JoinedAt: time.Now().UTC().Truncate(time.Millisecond),
	}

	res, err := m.users.InsertOne(ctx, doc)
	if err != nil {
		switch {
		case common.DuplicateKey(err, "users_email_key"):
			return ErrDuplicateEmail
		case common.DuplicateKey(err, "users_username_key"):
			return ErrDuplicateUsername
		default:
			return err
		}
	}

	u.ID = res.InsertedID.(primitive.ObjectID).Hex()
	u.JoinedAt = doc.JoinedAt

	return nil
}

func (m *MongoModel) GetByEmail(ctx context.Context, email string) (*User, error) {
	var doc userDocument

	err := m.users.FindOne(ctx, bson.M{"personal_info.email": email}).Decode(&doc)
	if err != nil {
		switch {
		case errors.Is(err, mongo.ErrNoDocuments):
			return nil, ErrNotFound
		default:
			return nil, err
		}
	}

	return doc.toUser(), nil
}

func (m *MongoModel) UsernameExists(ctx context.Context, username string) (bool, error) {
	n, err := m.users.CountDocuments(ctx, bson.M{"personal_info.username": username}, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}

	return n > 0, nil
}

func (m *MongoModel) AddOwnedBlog(ctx context.Context, userID, blogID string, postDelta int) error {
	return m.updateByID(ctx, userID, blogID, bson.M{
		"$inc": bson.M{"account_info.total_posts": postDelta},
	}, "$push")
}

func (m *MongoModel) RemoveOwnedBlog(ctx context.Context, userID, blogID string, postDelta int) error {
	return m.updateByID(ctx, userID, blogID, bson.M{
		"$inc": bson.M{"account_info.total_posts": postDelta},
	}, "$pull")
}

func (m *MongoModel) AdjustTotalPosts(ctx context.Context, userID string, postDelta int) error {
	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return ErrNotFound
	}

	res, err := m.users.UpdateOne(ctx, bson.M{"_id": uid}, bson.M{"$inc": bson.M{"account_info.total_posts": postDelta}})
	if err != nil {
		return err
	}

	if res.MatchedCount == 0 {
		return ErrNotFound
	}

	return nil
}

// updateByID applies update plus a membership operator (op) for blogID.
func (m *MongoModel) updateByID(ctx context.Context, userID, blogID string, update bson.M, op string) error {
	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return ErrNotFound
	}

	bid, err := primitive.ObjectIDFromHex(blogID)
	if err != nil {
		return err
	}

	update[op] = bson.M{"blogs": bid}

	res, err := m.users.UpdateOne(ctx, bson.M{"_id": uid}, update)
	if err != nil {
		return err
	}

	if res.MatchedCount == 0 {
		return ErrNotFound
	}

	return nil
}

func (m *MongoModel) IncrementReadCount(ctx context.Context, username string, delta int) error {
	res, err := m.users.UpdateOne(ctx,
		bson.M{"personal_info.username": username},
		bson.M{"$inc": bson.M{"account_info.total_reads": delta}},
	)
	if err != nil {
		return err
	}

	if res.MatchedCount == 0 {
		return ErrNotFound
	}

	return nil
}

func (d *userDocument) toUser() *User {
	u := &User{
		ID: d.ID.Hex(),
		PersonalInfo: PersonalInfo{
			Fullname:   d.PersonalInfo.Fullname,
			Email:      d.PersonalInfo.Email,
			Username:   d.PersonalInfo.Username,
			Password:   Password{hash: d.PersonalInfo.Password},
			ProfileImg: d.PersonalInfo.ProfileImg,
		},
		AccountInfo: AccountInfo{
			TotalPosts: d.AccountInfo.TotalPosts,
			TotalReads: d.AccountInfo.TotalReads,
		},
		Blogs:    make([]string, 0, len(d.Blogs)),
		JoinedAt: d.JoinedAt,
	}

	for _, id := range d.Blogs {
		u.Blogs = append(u.Blogs, id.Hex())
	}

	return u
}
