package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	domainreservation "pinehollow/internal/domain/reservation"
	"pinehollow/internal/domain/shared/daterange"
	"pinehollow/internal/domain/shared/money"
)

var ErrConcurrentUpdate = errors.New("mongo: concurrent update detected")

type ReservationRepository struct {
	col *mongo.Collection
}

func NewReservationRepository(db *mongo.Database) *ReservationRepository {
	return &ReservationRepository{col: db.Collection("agg_reservation")}
}

func (r *ReservationRepository) ByID(ctx context.Context, id domainreservation.ReservationID) (*domainreservation.Reservation, error) {
	var doc reservationDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": string(id)}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domainreservation.ErrReservationNotFound
		}
		return nil, err
	}
	return doc.toAggregate(), nil
}

func (r *ReservationRepository) Save(ctx context.Context, rec *domainreservation.Reservation) error {
	doc := newReservationDocument(rec)
	filter := bson.M{"_id": doc.ID, "version": rec.Version}
	doc.Version = rec.Version + 1
	update := bson.M{"$set": doc}
	opts := options.Update().SetUpsert(true)
	res, err := r.col.UpdateOne(ctx, filter, update, opts)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrConcurrentUpdate
		}
		return err
	}
	if res.MatchedCount == 0 && res.UpsertedCount == 0 {
		return ErrConcurrentUpdate
	}
	rec.Version = doc.Version
	return nil
}

func (r *ReservationRepository) List(ctx context.Context, filter domainreservation.ListFilter) ([]*domainreservation.Reservation, error) {
	query := bson.M{}
	if filter.Status != "" {
		query["status"] = string(filter.Status)
	}
	opts := options.Find().SetSort(bson.D{{Key: "stay.arrival", Value: -1}})
	cursor, err := r.col.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var out []*domainreservation.Reservation
	for cursor.Next(ctx) {
		var doc reservationDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, doc.toAggregate())
	}
	return out, cursor.Err()
}

type reservationDocument struct {
	ID              string          `bson:"_id"`
	Stay            stayDocument    `bson:"stay"`
	Status          string          `bson:"status"`
	Guests          int             `bson:"guests"`
	Pets            int             `bson:"pets"`
	Contact         contactDocument `bson:"contact"`
	Address         string          `bson:"address"`
	SpecialRequests string          `bson:"special_requests"`
	RateAmount      int64           `bson:"rate_amount"`
	TotalAmount     int64           `bson:"total_amount"`
	Currency        string          `bson:"currency"`
	CreatedAt       int64           `bson:"created_at"`
	UpdatedAt       int64           `bson:"updated_at"`
	Version         int64           `bson:"version"`
}

type stayDocument struct {
	Arrival   int64 `bson:"arrival"`
	Departure int64 `bson:"departure"`
}

type contactDocument struct {
	Name  string `bson:"name"`
	Email string `bson:"email"`
	Phone string `bson:"phone"`
}

func newReservationDocument(rec *domainreservation.Reservation) reservationDocument {
	return reservationDocument{
		ID:              string(rec.ID),
		Stay:            stayDocument{Arrival: rec.Stay.Arrival.UnixMilli(), Departure: rec.Stay.Departure.UnixMilli()},
		Status:          string(rec.Status),
		Guests:          rec.Guests,
		Pets:            rec.Pets,
		Contact:         contactDocument{Name: rec.Contact.Name, Email: rec.Contact.Email, Phone: rec.Contact.Phone},
		Address:         rec.Address,
		SpecialRequests: rec.SpecialRequests,
		RateAmount:      rec.NightlyRate.Amount,
		TotalAmount:     rec.Total.Amount,
		Currency:        rec.Total.Currency,
		CreatedAt:       rec.CreatedAt.UnixMilli(),
		UpdatedAt:       rec.UpdatedAt.UnixMilli(),
		Version:         rec.Version,
	}
}

func (d reservationDocument) toAggregate() *domainreservation.Reservation {
	return &domainreservation.Reservation{
		ID:              domainreservation.ReservationID(d.ID),
		Stay:            daterange.StayRange{Arrival: timestampToTime(d.Stay.Arrival), Departure: timestampToTime(d.Stay.Departure)},
		Status:          domainreservation.Status(d.Status),
		Guests:          d.Guests,
		Pets:            d.Pets,
		Contact:         domainreservation.Contact{Name: d.Contact.Name, Email: d.Contact.Email, Phone: d.Contact.Phone},
		Address:         d.Address,
		SpecialRequests: d.SpecialRequests,
		NightlyRate:     money.Money{Amount: d.RateAmount, Currency: d.Currency},
		Total:           money.Money{Amount: d.TotalAmount, Currency: d.Currency},
		CreatedAt:       timestampToTime(d.CreatedAt),
		UpdatedAt:       timestampToTime(d.UpdatedAt),
		Version:         d.Version,
	}
}

func timestampToTime(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}

var _ domainreservation.Repository = (*ReservationRepository)(nil)
