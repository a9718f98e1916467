package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/recordkeep/customer-api/internal/core/domain"
)

const customersCollection = "customers"

type MongoCustomerRepository struct {
	coll *mongo.Collection
}

func NewCustomerRepository(db *mongo.Database) *MongoCustomerRepository {
	return &MongoCustomerRepository{coll: db.Collection(customersCollection)}
}

type mongoCustomer struct {
	ID          string    `bson:"_id"`
	FirstName   string    `bson:"first_name"`
	LastName    string    `bson:"last_name"`
	Email       string    `bson:"email"`
	DateOfBirth time.Time `bson:"date_of_birth"`
	PhoneNumber string    `bson:"phone_number,omitempty"`
	CreatedAt   int64     `bson:"created_at"`
	UpdatedAt   int64     `bson:"updated_at"`
}

func toMongoCustomer(c *domain.Customer) mongoCustomer {
	return mongoCustomer{
		ID:          c.ID,
		FirstName:   c.FirstName,
		LastName:    c.LastName,
		Email:       c.Email,
		DateOfBirth: c.DateOfBirth.UTC(),
		PhoneNumber: c.PhoneNumber,
		CreatedAt:   c.CreatedAt.Unix(),
		UpdatedAt:   c.UpdatedAt.Unix(),
	}
}

func (mc mongoCustomer) toDomain() *domain.Customer {
	return &domain.Customer{
		ID:          mc.ID,
		FirstName:   mc.FirstName,
		LastName:    mc.LastName,
		Email:       mc.Email,
		DateOfBirth: mc.DateOfBirth.UTC(),
		PhoneNumber: mc.PhoneNumber,
		CreatedAt:   unixToTime(mc.CreatedAt),
		UpdatedAt:   unixToTime(mc.UpdatedAt),
	}
}

func (r *MongoCustomerRepository) Create(ctx context.Context, customer *domain.Customer) (*domain.Customer, error) {
	_, err := r.coll.InsertOne(ctx, toMongoCustomer(customer))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("insert customer: %w", err)
	}
	return customer, nil
}

func (r *MongoCustomerRepository) FindByID(ctx context.Context, id string) (*domain.Customer, error) {
	var mc mongoCustomer
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&mc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrCustomerNotFound
		}
		return nil, fmt.Errorf("find customer: %w", err)
	}
	return mc.toDomain(), nil
}

func (r *MongoCustomerRepository) List(ctx context.Context, offset, limit int64) ([]*domain.Customer, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}}).
		SetSkip(offset).
		SetLimit(limit)

	cur, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	defer cur.Close(ctx)

	return decodeCustomers(ctx, cur)
}

func (r *MongoCustomerRepository) Update(ctx context.Context, customer *domain.Customer) (*domain.Customer, error) {
	doc := toMongoCustomer(customer)
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": customer.ID}, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("update customer: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrCustomerNotFound
	}
	return customer, nil
}

func (r *MongoCustomerRepository) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete customer: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrCustomerNotFound
	}
	return nil
}

// AverageAge computes the mean age server-side with an aggregation
// pipeline: age = floor((now - date_of_birth) / one year of millis).
func (r *MongoCustomerRepository) AverageAge(ctx context.Context) (float64, error) {
	const yearMillis = 365.25 * 24 * 60 * 60 * 1000

	pipeline := mongo.Pipeline{
		{{Key: "$project", Value: bson.M{
			"age": bson.M{"$floor": bson.M{"$divide": bson.A{
				bson.M{"$subtract": bson.A{"$$NOW", "$date_of_birth"}},
				yearMillis,
			}}},
		}}},
		{{Key: "$group", Value: bson.M{
			"_id":         nil,
			"average_age": bson.M{"$avg": "$age"},
		}}},
	}

	cur, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, fmt.Errorf("aggregate average age: %w", err)
	}
	defer cur.Close(ctx)

	var result struct {
		AverageAge float64 `bson:"average_age"`
	}
	if cur.Next(ctx) {
		if err := cur.Decode(&result); err != nil {
			return 0, fmt.Errorf("decode average age: %w", err)
		}
	}
	return result.AverageAge, cur.Err()
}

func (r *MongoCustomerRepository) FindByBirthDateRange(ctx context.Context, from, to time.Time) ([]*domain.Customer, error) {
	filter := bson.M{"date_of_birth": bson.M{
		"$gt":  from.UTC(),
		"$lte": to.UTC(),
	}}
	opts := options.Find().SetSort(bson.D{{Key: "date_of_birth", Value: 1}})

	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find customers by birth date: %w", err)
	}
	defer cur.Close(ctx)

	return decodeCustomers(ctx, cur)
}

func decodeCustomers(ctx context.Context, cur *mongo.Cursor) ([]*domain.Customer, error) {
	customers := make([]*domain.Customer, 0)
	for cur.Next(ctx) {
		var mc mongoCustomer
		if err := cur.Decode(&mc); err != nil {
			return nil, fmt.Errorf("decode customer: %w", err)
		}
		customers = append(customers, mc.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterate customers: %w", err)
	}
	return customers, nil
}
