package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Review is a customer's rating of a worker.
type Review struct {
	ID                  primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	WorkerName          string             `bson:"worker_name" json:"worker_name"`
	Name                string             `bson:"name" json:"name"`
	Email               string             `bson:"email" json:"email"`
	WrittenReview       string             `bson:"written_review" json:"written_review"`
	OverallSatisfaction int                `bson:"overall_satisfaction" json:"overall_satisfaction"`
	QualityOfWork       int                `bson:"quality_of_work" json:"quality_of_work"`
	Timeliness          int                `bson:"timeliness" json:"timeliness"`
	Accuracy            int                `bson:"accuracy" json:"accuracy"`
	CommunicationSkills int                `bson:"communication_skills" json:"communication_skills"`
	ProductName         string             `bson:"product_name" json:"product_name"`
	ConsentToPublish    bool               `bson:"consent_to_publish" json:"consent_to_publish"`
	IsAnonymous         bool               `bson:"is_anonymous" json:"is_anonymous"`
	Images              []string           `bson:"images" json:"images"`
	CreatedAt           time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt           time.Time          `bson:"updatedAt" json:"updatedAt"`
}
