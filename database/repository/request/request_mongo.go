package requestRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"medibook/database"
	"medibook/models"
)

// MongoRequestRepo implements RequestRepository using MongoDB.
type MongoRequestRepo struct {
	coll *mongo.Collection
}

// NewMongoRequestRepo creates a new instance of RequestRepository using MongoDB.
func NewMongoRequestRepo() RequestRepository {
	coll := database.Collection("appointment_requests")
	repo := &MongoRequestRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoRequestRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "request_id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "patient_id", Value: 1}}},
		{Keys: bson.D{{Key: "doctor_id", Value: 1}, {Key: "status", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Create inserts a new appointment request document.
func (r *MongoRequestRepo) Create(req *models.AppointmentRequest) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	req.CreatedAt = now
	req.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, req); err != nil {
		return fmt.Errorf("failed to create appointment request: %w", err)
	}
	return nil
}

// Update modifies an existing appointment request document.
func (r *MongoRequestRepo) Update(req *models.AppointmentRequest) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	req.UpdatedAt = time.Now()
	filter := bson.M{"request_id": req.RequestID}
	update := bson.M{"$set": req}

	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update appointment request %s: %w", req.RequestID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("appointment request %s not found", req.RequestID)
	}
	return nil
}

// GetByRequestID retrieves a request by its human-readable id (e.g. "AR00001").
func (r *MongoRequestRepo) GetByRequestID(requestID string) (*models.AppointmentRequest, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var req models.AppointmentRequest
	if err := r.coll.FindOne(ctx, bson.M{"request_id": requestID}).Decode(&req); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch appointment request %s: %w", requestID, err)
	}
	return &req, nil
}

// GetAll retrieves all appointment requests.
func (r *MongoRequestRepo) GetAll() ([]models.AppointmentRequest, error) {
	return r.find(bson.M{})
}

// GetByPatientID retrieves all requests submitted by a patient.
func (r *MongoRequestRepo) GetByPatientID(patientID string) ([]models.AppointmentRequest, error) {
	return r.find(bson.M{"patient_id": patientID})
}

// GetByDoctorID retrieves all requests addressed to a doctor.
func (r *MongoRequestRepo) GetByDoctorID(doctorID string) ([]models.AppointmentRequest, error) {
	return r.find(bson.M{"doctor_id": doctorID})
}

// GetByDoctorIDAndStatus retrieves a doctor's requests filtered by status.
func (r *MongoRequestRepo) GetByDoctorIDAndStatus(doctorID, status string) ([]models.AppointmentRequest, error) {
	return r.find(bson.M{"doctor_id": doctorID, "status": status})
}

func (r *MongoRequestRepo) find(filter bson.M) ([]models.AppointmentRequest, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve appointment requests: %w", err)
	}
	defer cursor.Close(ctx)

	var reqs []models.AppointmentRequest
	for cursor.Next(ctx) {
		var req models.AppointmentRequest
		if err := cursor.Decode(&req); err != nil {
			return nil, fmt.Errorf("failed to decode appointment request: %w", err)
		}
		reqs = append(reqs, req)
	}
	return reqs, nil
}
