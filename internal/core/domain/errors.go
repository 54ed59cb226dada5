package domain

import "errors"

var (
	ErrNotFound          = errors.New("not found")
	ErrTrainFullyBooked  = errors.New("train is fully booked")
	ErrDuplicatePNR      = errors.New("duplicate pnr")
	ErrDuplicateUsername = errors.New("username already exists")
)
