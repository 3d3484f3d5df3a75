package domain

import "time"

type Review struct {
	ID         int32     `json:"id"`
	UserID     int32     `json:"user_id"`
	BookID     int32     `json:"book_id"`
	Rating     int32     `json:"rating"`
	ReviewText string    `json:"review_text"`
	ReviewDate time.Time `json:"review_date"`
	// Username is resolved on listing for display alongside the review.
	Username string `json:"username,omitempty"`
}
