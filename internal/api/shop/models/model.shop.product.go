package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ShopProduct lưu sản phẩm của cửa hàng (shop_products).
type ShopProduct struct {
	ID primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`

	Name        string  `json:"name" bson:"name" validate:"required"`
	Category    string  `json:"category,omitempty" bson:"category,omitempty"` // bouquet | basket | single | accessory
	Price       float64 `json:"price" bson:"price" validate:"gte=0"`
	Description string  `json:"description,omitempty" bson:"description,omitempty" validate:"omitempty,no_xss"`
	ImageURL    string  `json:"imageUrl,omitempty" bson:"imageUrl,omitempty"`
	InStock     bool    `json:"inStock" bson:"inStock"`

	CreatedAt int64 `json:"createdAt" bson:"createdAt"`
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"`
}
