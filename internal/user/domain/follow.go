package domain

import "time"

// Follow es la relación follower -> followee. Nace sin confirmar.
type Follow struct {
	FollowerID  int64     `json:"followerId"`
	FolloweeID  int64     `json:"followeeId"`
	IsConfirmed bool      `json:"isConfirmed"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func NewFollow(followerID, followeeID int64) (*Follow, error) {
	if followerID <= 0 || followeeID <= 0 {
		return nil, ErrInvalidFollow
	}
	if followerID == followeeID {
		return nil, ErrSelfFollow
	}
	now := time.Now().UTC()
	return &Follow{FollowerID: followerID, FolloweeID: followeeID, CreatedAt: now, UpdatedAt: now}, nil
}

// Confirm marca la relación como aceptada. Confirmar dos veces es un error.
func (f *Follow) Confirm() error {
	if f.IsConfirmed {
		return ErrFollowAlreadyConfirmed
	}
	f.IsConfirmed = true
	f.UpdatedAt = time.Now().UTC()
	return nil
}

// FieldValue implementa query.Row.
func (f *Follow) FieldValue(field string) (interface{}, bool) {
	switch field {
	case "followerId":
		return f.FollowerID, true
	case "followeeId":
		return f.FolloweeID, true
	case "isConfirmed":
		return f.IsConfirmed, true
	case "createdAt":
		return f.CreatedAt, true
	case "updatedAt":
		return f.UpdatedAt, true
	}
	return nil, false
}
