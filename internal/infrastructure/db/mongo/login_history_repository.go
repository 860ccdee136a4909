package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/fleetworks/account-service/internal/core/domain"
)

const loginHistoryCollection = "login_history"

type MongoLoginHistoryRepository struct {
	coll *mongo.Collection
}

func NewLoginHistoryRepository(db *mongo.Database) *MongoLoginHistoryRepository {
	return &MongoLoginHistoryRepository{coll: db.Collection(loginHistoryCollection)}
}

type loginRecordDoc struct {
	ID                     primitive.ObjectID `bson:"_id,omitempty"`
	AccountID              string             `bson:"account_id"`
	LoginAt                int64              `bson:"login_at"`
	LogoutAt               *int64             `bson:"logout_at,omitempty"`
	IP                     string             `bson:"ip"`
	UserAgent              string             `bson:"user_agent"`
	Active                 bool               `bson:"active"`
	SessionDurationSeconds int64              `bson:"session_duration_seconds,omitempty"`
}

func (r *MongoLoginHistoryRepository) Append(ctx context.Context, record *domain.LoginRecord) error {
	doc := loginRecordDoc{
		AccountID: record.AccountID,
		LoginAt:   record.LoginAt.Unix(),
		IP:        record.IP,
		UserAgent: record.UserAgent,
		Active:    true,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("append login record: %w", err)
	}
	return nil
}

// CloseOpen closes the newest open record for the account, computing the
// session duration from its login time. No open record is a no-op.
func (r *MongoLoginHistoryRepository) CloseOpen(ctx context.Context, accountID string, at time.Time) error {
	var doc loginRecordDoc
	err := r.coll.FindOne(ctx,
		bson.M{"account_id": accountID, "active": true},
		options.FindOne().SetSort(bson.D{{Key: "login_at", Value: -1}}),
	).Decode(&doc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil
		}
		return fmt.Errorf("find open login record: %w", err)
	}

	duration := at.Unix() - doc.LoginAt
	if duration < 0 {
		duration = 0
	}

	_, err = r.coll.UpdateByID(ctx, doc.ID, bson.M{"$set": bson.M{
		"logout_at":                at.Unix(),
		"active":                   false,
		"session_duration_seconds": duration,
	}})
	if err != nil {
		return fmt.Errorf("close login record: %w", err)
	}
	return nil
}
