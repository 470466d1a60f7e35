package models

// CartLine is one product with its quantity in one user's cart. The pair
// (UserID, ProductID) is the primary key; both columns reference tables owned
// outside this service.
type CartLine struct {
	UserID    int64 `gorm:"primaryKey;autoIncrement:false"  json:"user_id"`
	ProductID int64 `gorm:"primaryKey;autoIncrement:false"  json:"product_id"`
	Quantity  int64 `gorm:"not null"                        json:"quantity"`
}

func (CartLine) TableName() string {
	return "cart"
}
