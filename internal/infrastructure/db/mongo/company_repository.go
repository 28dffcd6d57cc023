package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/staffdir/directory-api/internal/core/domain"
)

// MongoCompanyRepository implements ports.CompanyRepository on MongoDB.
// Name uniqueness rides on the unique index created by EnsureIndexes.
type MongoCompanyRepository struct {
	db *mongo.Database
}

func NewCompanyRepository(db *mongo.Database) *MongoCompanyRepository {
	return &MongoCompanyRepository{db: db}
}

func (r *MongoCompanyRepository) coll() *mongo.Collection {
	return r.db.Collection(companiesCollection)
}

func (r *MongoCompanyRepository) FindByID(ctx context.Context, id int64) (*domain.Company, error) {
	var company domain.Company
	if err := r.coll().FindOne(ctx, bson.M{"_id": id}).Decode(&company); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrCompanyNotFound
		}
		return nil, fmt.Errorf("find company: %w", err)
	}
	return &company, nil
}

func (r *MongoCompanyRepository) List(ctx context.Context, page, pageSize int) ([]domain.Company, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: -1}}).
		SetSkip(int64((page - 1) * pageSize)).
		SetLimit(int64(pageSize))

	cur, err := r.coll().Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list companies: %w", err)
	}
	defer cur.Close(ctx)

	companies := make([]domain.Company, 0, pageSize)
	if err := cur.All(ctx, &companies); err != nil {
		return nil, fmt.Errorf("decode companies: %w", err)
	}
	return companies, nil
}

func (r *MongoCompanyRepository) UsersOf(ctx context.Context, companyID int64) ([]domain.User, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: -1}})
	cur, err := r.db.Collection(usersCollection).Find(ctx, bson.M{"company_id": companyID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list company users: %w", err)
	}
	defer cur.Close(ctx)

	users := make([]domain.User, 0)
	if err := cur.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("decode company users: %w", err)
	}
	return users, nil
}

func (r *MongoCompanyRepository) Create(ctx context.Context, company *domain.Company) (*domain.Company, error) {
	id, err := nextSequence(ctx, r.db, companiesCollection)
	if err != nil {
		return nil, err
	}
	company.ID = id

	if _, err := r.coll().InsertOne(ctx, company); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrCompanyNameTaken
		}
		return nil, fmt.Errorf("insert company: %w", err)
	}
	return company, nil
}

func (r *MongoCompanyRepository) Update(ctx context.Context, company *domain.Company) error {
	res, err := r.coll().UpdateOne(ctx,
		bson.M{"_id": company.ID},
		bson.M{"$set": bson.M{
			"name":       company.Name,
			"updated_at": company.UpdatedAt,
		}},
	)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrCompanyNameTaken
		}
		return fmt.Errorf("update company: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrCompanyNotFound
	}
	return nil
}

// Delete removes the company and detaches its members. Users keep their
// records; only the tenant link is cleared.
func (r *MongoCompanyRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.coll().DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete company: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrCompanyNotFound
	}

	_, err = r.db.Collection(usersCollection).UpdateMany(ctx,
		bson.M{"company_id": id},
		bson.M{"$unset": bson.M{"company_id": ""}},
	)
	if err != nil {
		return fmt.Errorf("detach company users: %w", err)
	}
	return nil
}
