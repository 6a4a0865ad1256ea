package models

import "errors"

// CoinFloor is the minimum raw balance (in hundredths) a user may hold.
const CoinFloor = 100

// ErrCoinFloor is returned when an adjustment would drop the balance below the floor.
var ErrCoinFloor = errors.New("coin balance below floor")

type User struct {
	Base
	Username     string `gorm:"type:varchar(128);uniqueIndex;not null" json:"username"`
	Email        string `gorm:"type:varchar(128);uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"type:varchar(256);not null" json:"-"` // Never expose password hash in JSON
	Bio          string `gorm:"type:varchar(256);not null;default:''" json:"bio"`
	Avatar       string `gorm:"type:varchar(128);not null;default:''" json:"avatar"`
	CoinRaw      int    `gorm:"not null;default:100" json:"-"`
	PostNum      int    `gorm:"not null;default:0" json:"post_num"`

	RoleID uint `json:"-"`
	Role   Role `gorm:"foreignKey:RoleID" json:"identity"`
}

// CoinNum is the balance exposed to clients, in whole coins.
func (u *User) CoinNum() float64 {
	return float64(u.CoinRaw) / 100
}

// ModifyCoin adjusts the raw balance by delta. The adjustment fails without
// mutating state if it would bring the balance below CoinFloor.
func (u *User) ModifyCoin(delta int) error {
	if u.CoinRaw+delta < CoinFloor {
		return ErrCoinFloor
	}
	u.CoinRaw += delta
	return nil
}
