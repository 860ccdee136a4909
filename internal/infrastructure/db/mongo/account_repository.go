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
	"github.com/fleetworks/account-service/internal/core/ports"
)

const accountCollection = "accounts"

type MongoAccountRepository struct {
	coll *mongo.Collection
}

func NewAccountRepository(db *mongo.Database) *MongoAccountRepository {
	return &MongoAccountRepository{coll: db.Collection(accountCollection)}
}

// EnsureIndexes creates the unique email index. Concurrent registrations of
// the same address are serialized here and surface as ErrAccountExists.
func (r *MongoAccountRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("create email index: %w", err)
	}
	return nil
}

type tokenDoc struct {
	Value     string `bson:"value"`
	ExpiresAt int64  `bson:"expires_at"`
}

type accountDoc struct {
	ID                primitive.ObjectID `bson:"_id,omitempty"`
	Email             string             `bson:"email"`
	Name              string             `bson:"name"`
	PasswordHash      string             `bson:"password_hash"`
	Role              string             `bson:"role"`
	Active            bool               `bson:"active"`
	Approved          bool               `bson:"approved"`
	EmailVerified     bool               `bson:"email_verified"`
	Deleted           bool               `bson:"deleted"`
	VerificationToken *tokenDoc          `bson:"verification_token,omitempty"`
	ResetToken        *tokenDoc          `bson:"reset_token,omitempty"`
	LastOTPRequestAt  int64              `bson:"last_otp_request_at,omitempty"`
	CreatedAt         int64              `bson:"created_at"`
	UpdatedAt         int64              `bson:"updated_at"`
}

func (r *MongoAccountRepository) Create(ctx context.Context, account *domain.Account) (*domain.Account, error) {
	doc := accountDoc{
		Email:             account.Email,
		Name:              account.Name,
		PasswordHash:      account.PasswordHash,
		Role:              account.Role,
		Active:            account.Active,
		Approved:          account.Approved,
		EmailVerified:     account.EmailVerified,
		Deleted:           false,
		VerificationToken: toTokenDoc(account.VerificationToken),
		ResetToken:        toTokenDoc(account.ResetToken),
		CreatedAt:         account.CreatedAt.Unix(),
		UpdatedAt:         account.UpdatedAt.Unix(),
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrAccountExists
		}
		return nil, fmt.Errorf("insert account: %w", err)
	}

	created := *account
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *MongoAccountRepository) FindByEmail(ctx context.Context, email string) (*domain.Account, error) {
	return r.findOne(ctx, bson.M{"email": email, "deleted": false})
}

func (r *MongoAccountRepository) FindByID(ctx context.Context, id string) (*domain.Account, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrAccountNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid, "deleted": false})
}

func (r *MongoAccountRepository) FindByVerificationToken(ctx context.Context, token string) (*domain.Account, error) {
	return r.findOne(ctx, bson.M{"verification_token.value": token, "deleted": false})
}

// AdminFindByID is the explicit administrative lookup; it does not filter
// soft-deleted records.
func (r *MongoAccountRepository) AdminFindByID(ctx context.Context, id string) (*domain.Account, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrAccountNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *MongoAccountRepository) findOne(ctx context.Context, filter bson.M) (*domain.Account, error) {
	var doc accountDoc
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrAccountNotFound
		}
		return nil, fmt.Errorf("find account: %w", err)
	}
	return fromAccountDoc(&doc), nil
}

// Update applies a partial update in a single atomic document write: nil
// fields are untouched, Clear* flags become $unset.
func (r *MongoAccountRepository) Update(ctx context.Context, id string, upd ports.AccountUpdate) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrAccountNotFound
	}

	set := bson.M{"updated_at": time.Now().UTC().Unix()}
	unset := bson.M{}

	if upd.Name != nil {
		set["name"] = *upd.Name
	}
	if upd.Role != nil {
		set["role"] = *upd.Role
	}
	if upd.PasswordHash != nil {
		set["password_hash"] = *upd.PasswordHash
	}
	if upd.Active != nil {
		set["active"] = *upd.Active
	}
	if upd.Approved != nil {
		set["approved"] = *upd.Approved
	}
	if upd.EmailVerified != nil {
		set["email_verified"] = *upd.EmailVerified
	}
	if upd.ClearVerificationToken {
		unset["verification_token"] = ""
	} else if upd.VerificationToken != nil {
		set["verification_token"] = toTokenDoc(upd.VerificationToken)
	}
	if upd.ClearResetToken {
		unset["reset_token"] = ""
	} else if upd.ResetToken != nil {
		set["reset_token"] = toTokenDoc(upd.ResetToken)
	}
	if upd.LastOTPRequestAt != nil {
		set["last_otp_request_at"] = upd.LastOTPRequestAt.Unix()
	}

	update := bson.M{"$set": set}
	if len(unset) > 0 {
		update["$unset"] = unset
	}

	res, err := r.coll.UpdateByID(ctx, oid, update)
	if err != nil {
		return fmt.Errorf("update account: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}

// SoftDelete marks the account deleted and inactive. The record stays in the
// collection but disappears from non-administrative lookups.
func (r *MongoAccountRepository) SoftDelete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrAccountNotFound
	}

	res, err := r.coll.UpdateByID(ctx, oid, bson.M{"$set": bson.M{
		"deleted":    true,
		"active":     false,
		"updated_at": time.Now().UTC().Unix(),
	}})
	if err != nil {
		return fmt.Errorf("soft delete account: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}

func toTokenDoc(t *domain.TimedToken) *tokenDoc {
	if t == nil {
		return nil
	}
	return &tokenDoc{Value: t.Value, ExpiresAt: t.ExpiresAt.Unix()}
}

func fromTokenDoc(t *tokenDoc) *domain.TimedToken {
	if t == nil {
		return nil
	}
	return &domain.TimedToken{Value: t.Value, ExpiresAt: unixToTime(t.ExpiresAt)}
}

func fromAccountDoc(doc *accountDoc) *domain.Account {
	return &domain.Account{
		ID:                doc.ID.Hex(),
		Email:             doc.Email,
		Name:              doc.Name,
		PasswordHash:      doc.PasswordHash,
		Role:              doc.Role,
		Active:            doc.Active,
		Approved:          doc.Approved,
		EmailVerified:     doc.EmailVerified,
		Deleted:           doc.Deleted,
		VerificationToken: fromTokenDoc(doc.VerificationToken),
		ResetToken:        fromTokenDoc(doc.ResetToken),
		LastOTPRequestAt:  unixToTime(doc.LastOTPRequestAt),
		CreatedAt:         unixToTime(doc.CreatedAt),
		UpdatedAt:         unixToTime(doc.UpdatedAt),
	}
}

func unixToTime(ts int64) time.Time {
	if ts == 0 {
		return time.Time{}
	}
	return time.Unix(ts, 0).UTC()
}
