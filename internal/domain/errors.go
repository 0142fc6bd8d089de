package domain

import "errors"

// Record errors
var (
	ErrNotFound = errors.New("not found")
)

// Business rule errors
var (
	ErrValidation       = errors.New("invalid input")
	ErrAuctionNotActive = errors.New("auction is not active")
	ErrBidTooLow        = errors.New("bid must be higher than current bid")
	ErrAuctionExpired   = errors.New("auction has ended")
	ErrAuctionOngoing   = errors.New("artwork already has an active auction")
)
