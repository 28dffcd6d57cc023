package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"

	"github.com/staffdir/directory-api/internal/core/domain"
	"github.com/staffdir/directory-api/internal/core/ports"
)

// MongoUserRepository implements ports.UserRepository on MongoDB. This is the
// single place passwords are hashed: callers hand over the plaintext and only
// the bcrypt hash is ever persisted.
type MongoUserRepository struct {
	db *mongo.Database
}

func NewUserRepository(db *mongo.Database) *MongoUserRepository {
	return &MongoUserRepository{db: db}
}

func (r *MongoUserRepository) coll() *mongo.Collection {
	return r.db.Collection(usersCollection)
}

func (r *MongoUserRepository) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	var user domain.User
	if err := r.coll().FindOne(ctx, bson.M{"_id": id}).Decode(&user); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &user, nil
}

func (r *MongoUserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	var user domain.User
	if err := r.coll().FindOne(ctx, bson.M{"username": username}).Decode(&user); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user by username: %w", err)
	}
	return &user, nil
}

func (r *MongoUserRepository) List(ctx context.Context, filter ports.UserFilter, page, pageSize int) ([]domain.User, error) {
	query := bson.M{}
	if filter.CompanyID != nil {
		query["company_id"] = *filter.CompanyID
	}
	if filter.Role != nil {
		query["role"] = *filter.Role
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: -1}}).
		SetSkip(int64((page - 1) * pageSize)).
		SetLimit(int64(pageSize))

	cur, err := r.coll().Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer cur.Close(ctx)

	users := make([]domain.User, 0, pageSize)
	if err := cur.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}
	return users, nil
}

func (r *MongoUserRepository) Create(ctx context.Context, user *domain.User, password string) (*domain.User, error) {
	if err := r.checkCompany(ctx, user.CompanyID); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user.PasswordHash = string(hash)

	id, err := nextSequence(ctx, r.db, usersCollection)
	if err != nil {
		return nil, err
	}
	user.ID = id

	if _, err := r.coll().InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrUsernameTaken
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return user, nil
}

func (r *MongoUserRepository) Update(ctx context.Context, user *domain.User, password string) error {
	if err := r.checkCompany(ctx, user.CompanyID); err != nil {
		return err
	}

	set := bson.M{
		"name":       user.Name,
		"username":   user.Username,
		"role":       user.Role,
		"updated_at": user.UpdatedAt,
	}
	if user.CompanyID != nil {
		set["company_id"] = *user.CompanyID
	}
	if password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("hash password: %w", err)
		}
		set["password_hash"] = string(hash)
	}

	update := bson.M{"$set": set}
	if user.CompanyID == nil {
		update["$unset"] = bson.M{"company_id": ""}
	}

	res, err := r.coll().UpdateOne(ctx, bson.M{"_id": user.ID}, update)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrUsernameTaken
		}
		return fmt.Errorf("update user: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *MongoUserRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.coll().DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *MongoUserRepository) SetCompany(ctx context.Context, userID int64, companyID *int64) error {
	if err := r.checkCompany(ctx, companyID); err != nil {
		return err
	}

	var update bson.M
	if companyID != nil {
		update = bson.M{"$set": bson.M{"company_id": *companyID}}
	} else {
		update = bson.M{"$unset": bson.M{"company_id": ""}}
	}

	res, err := r.coll().UpdateOne(ctx, bson.M{"_id": userID}, update)
	if err != nil {
		return fmt.Errorf("set user company: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// checkCompany enforces referential integrity for the company link.
func (r *MongoUserRepository) checkCompany(ctx context.Context, companyID *int64) error {
	if companyID == nil {
		return nil
	}
	n, err := r.db.Collection(companiesCollection).CountDocuments(ctx, bson.M{"_id": *companyID})
	if err != nil {
		return fmt.Errorf("check company: %w", err)
	}
	if n == 0 {
		return domain.ErrCompanyNotFound
	}
	return nil
}
