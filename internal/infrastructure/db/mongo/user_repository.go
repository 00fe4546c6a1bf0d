package mongo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/taskboard/task-api/internal/core/domain"
)

type UserRepository struct {
	coll *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{coll: db.Collection(collectionUsers)}
}

type mongoUser struct {
	ID                   primitive.ObjectID `bson:"_id,omitempty"`
	Username             string             `bson:"username"`
	Email                string             `bson:"email"`
	PasswordHash         string             `bson:"password"`
	ProfileImage         string             `bson:"profileImage,omitempty"`
	LinkedInURL          string             `bson:"linkedinUrl,omitempty"`
	LinkedInName         string             `bson:"linkedInName,omitempty"`
	LinkedInProfileURL   string             `bson:"linkedInProfileUrl,omitempty"`
	LinkedInProfileImage string             `bson:"linkedInProfileImage,omitempty"`
	CreatedAt            time.Time          `bson:"createdAt"`
	UpdatedAt            time.Time          `bson:"updatedAt"`
}

func (mu *mongoUser) toDomain() *domain.User {
	return &domain.User{
		ID:                   mu.ID.Hex(),
		Username:             mu.Username,
		Email:                mu.Email,
		PasswordHash:         mu.PasswordHash,
		ProfileImage:         mu.ProfileImage,
		LinkedInURL:          mu.LinkedInURL,
		LinkedInName:         mu.LinkedInName,
		LinkedInProfileURL:   mu.LinkedInProfileURL,
		LinkedInProfileImage: mu.LinkedInProfileImage,
		CreatedAt:            mu.CreatedAt.UTC(),
		UpdatedAt:            mu.UpdatedAt.UTC(),
	}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoUser{
		Username:     user.Username,
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
		CreatedAt:    user.CreatedAt.UTC(),
		UpdatedAt:    user.UpdatedAt.UTC(),
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, duplicateUserError(err)
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		doc.ID = oid
	}
	return doc.toDomain(), nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"username": username})
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mu mongoUser
	if err := r.coll.FindOne(ctx, filter).Decode(&mu); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return mu.toDomain(), nil
}

func (r *UserRepository) Update(ctx context.Context, id string, patch domain.UserPatch) (*domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	set := bson.M{"updatedAt": time.Now().UTC()}
	setIf := func(field string, v *string) {
		if v != nil {
			set[field] = *v
		}
	}
	setIf("username", patch.Username)
	setIf("email", patch.Email)
	setIf("profileImage", patch.ProfileImage)
	setIf("linkedinUrl", patch.LinkedInURL)
	setIf("linkedInName", patch.LinkedInName)
	setIf("linkedInProfileUrl", patch.LinkedInProfileURL)
	setIf("linkedInProfileImage", patch.LinkedInProfileImage)

	var mu mongoUser
	err = r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, afterUpdate()).Decode(&mu)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		if mongo.IsDuplicateKeyError(err) {
			return nil, duplicateUserError(err)
		}
		return nil, fmt.Errorf("update user: %w", err)
	}
	return mu.toDomain(), nil
}

// duplicateUserError maps a unique index violation to the field that collided.
func duplicateUserError(err error) error {
	if strings.Contains(err.Error(), "username") {
		return domain.ErrUsernameTaken
	}
	return domain.ErrEmailTaken
}
