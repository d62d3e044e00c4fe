package models

type ItemTag struct {
	ItemID int64 `json:"itemID" gorm:"primaryKey"`
	Item   Item  `json:"-" gorm:"foreignKey:ItemID;references:ID;constraint:OnDelete:CASCADE;"`
	TagID  int64 `json:"tagID" gorm:"primaryKey;index"`
	Tag    Tag   `json:"-" gorm:"foreignKey:TagID;references:ID;constraint:OnDelete:CASCADE;"`
}

func (ItemTag) TableName() string {
	return "item_tags"
}
