package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ShopFeedback lưu đánh giá/phản hồi của khách (shop_feedback).
type ShopFeedback struct {
	ID primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`

	CustomerUserId string `json:"customerUserId,omitempty" bson:"customerUserId,omitempty"`
	CustomerName   string `json:"customerName" bson:"customerName"`
	CustomerEmail  string `json:"customerEmail,omitempty" bson:"customerEmail,omitempty" validate:"omitempty,email"`

	Rating  int    `json:"rating" bson:"rating" validate:"gte=1,lte=5"`
	Comment string `json:"comment,omitempty" bson:"comment,omitempty" validate:"omitempty,no_xss"`

	// SubmittedAt là event time của phản hồi (Unix ms)
	SubmittedAt int64 `json:"submittedAt" bson:"submittedAt"`

	CreatedAt int64 `json:"createdAt" bson:"createdAt"`
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"`
}
