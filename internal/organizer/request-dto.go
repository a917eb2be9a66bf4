package organizer

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"eventx/internal/chain"
)

var ErrInvalidForm = errors.New("invalid event form")

// CreateEventRequest is the organizer's create-event form. Prices are in ether.
type CreateEventRequest struct {
	Title          string `json:"title" binding:"required,max=200"`
	Price          string `json:"price" binding:"required"`
	MaxTickets     uint64 `json:"maxTickets" binding:"required,min=1"`
	Date           string `json:"date" binding:"required"` // 2006-01-02
	Time           string `json:"time" binding:"required"` // 15:04
	Location       string `json:"location" binding:"required,max=200"`
	MaxResalePrice string `json:"maxResalePrice" binding:"required"`
	EventTimestamp int64  `json:"eventTimestamp" binding:"omitempty,min=1"`
	ImageURL       string `json:"imageUrl" binding:"omitempty,url"`
}

type ConfirmEventRequest struct {
	TxHash   string `json:"txHash" binding:"required,len=66,startswith=0x"`
	ImageURL string `json:"imageUrl" binding:"omitempty,url"`
}

type UpdateImageRequest struct {
	ImageURL string `json:"imageUrl" binding:"required,url"`
}

// ListParams converts the form into contract arguments. Without an explicit
// eventTimestamp the date and time are read as UTC.
func (r CreateEventRequest) ListParams() (chain.ListParams, error) {
	price, err := chain.ParseEther(r.Price)
	if err != nil {
		return chain.ListParams{}, fmt.Errorf("%w: price: %v", ErrInvalidForm, err)
	}
	maxResale, err := chain.ParseEther(r.MaxResalePrice)
	if err != nil {
		return chain.ListParams{}, fmt.Errorf("%w: maxResalePrice: %v", ErrInvalidForm, err)
	}
	if maxResale.Cmp(price) < 0 {
		return chain.ListParams{}, fmt.Errorf("%w: maxResalePrice is below price", ErrInvalidForm)
	}

	date := strings.TrimSpace(r.Date)
	clock := strings.TrimSpace(r.Time)
	starts, err := time.Parse("2006-01-02T15:04", date+"T"+clock)
	if err != nil {
		return chain.ListParams{}, fmt.Errorf("%w: date and time must be YYYY-MM-DD and HH:MM", ErrInvalidForm)
	}
	ts := r.EventTimestamp
	if ts == 0 {
		ts = starts.Unix()
	}

	return chain.ListParams{
		Title:          strings.TrimSpace(r.Title),
		PriceWei:       price,
		MaxTickets:     r.MaxTickets,
		Date:           date,
		Time:           clock,
		Location:       strings.TrimSpace(r.Location),
		EventTimestamp: ts,
		MaxResalePrice: maxResale,
	}, nil
}
