package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/msomdec/users-api/internal/domain"
)

// userDocument is the stored shape of a user.
type userDocument struct {
	ID       primitive.ObjectID `bson:"_id,omitempty"`
	Name     string             `bson:"name"`
	Email    string             `bson:"email"`
	Password string             `bson:"password"`
}

func toDocument(u *domain.User) (userDocument, error) {
	doc := userDocument{Name: u.Name, Email: u.Email, Password: u.Password}
	if u.ID != "" {
		oid, err := primitive.ObjectIDFromHex(u.ID)
		if err != nil {
			return userDocument{}, fmt.Errorf("%w: malformed id %q", domain.ErrInvalidInput, u.ID)
		}
		doc.ID = oid
	}
	return doc, nil
}

func (d userDocument) toDomain() *domain.User {
	return &domain.User{
		ID:       d.ID.Hex(),
		Name:     d.Name,
		Email:    d.Email,
		Password: d.Password,
	}
}

// UserRepository implements domain.UserRepository on a MongoDB collection.
type UserRepository struct {
	coll *mongo.Collection
}

func (r *UserRepository) Save(ctx context.Context, user *domain.User) (*domain.User, error) {
	doc, err := toDocument(user)
	if err != nil {
		return nil, err
	}

	if doc.ID.IsZero() {
		doc.ID = primitive.NewObjectID()
		_, err = r.coll.InsertOne(ctx, doc)
	} else {
		_, err = r.coll.ReplaceOne(ctx, byID(doc.ID), doc, options.Replace().SetUpsert(true))
	}
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("save user: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		// No document can carry an id that is not an ObjectID.
		return nil, false, nil
	}
	return decodeOne(r.coll.FindOne(ctx, byID(oid)), "find user by id")
}

func (r *UserRepository) FindAll(ctx context.Context) ([]domain.User, error) {
	cur, err := r.coll.Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("find users: %w", err)
	}

	var docs []userDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}

	users := make([]domain.User, len(docs))
	for i, d := range docs {
		users[i] = *d.toDomain()
	}
	return users, nil
}

func (r *UserRepository) FindAndRemove(ctx context.Context, id string) (*domain.User, bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, false, nil
	}
	return decodeOne(r.coll.FindOneAndDelete(ctx, byID(oid)), "find and remove user")
}

func byID(id primitive.ObjectID) bson.D {
	return bson.D{{Key: "_id", Value: id}}
}

func decodeOne(res *mongo.SingleResult, op string) (*domain.User, bool, error) {
	var doc userDocument
	if err := res.Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("%s: %w", op, err)
	}
	return doc.toDomain(), true, nil
}
