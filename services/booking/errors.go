package booking

import "errors"

var (
	ErrItemNotFound    = errors.New("catalog item not found")
	ErrWrongItemType   = errors.New("catalog item does not accept this kind of booking")
	ErrSlotTaken       = errors.New("slot is already booked")
	ErrAlreadyEnrolled = errors.New("already enrolled in activity")
)
