package models

// Error is the wire shape of all failure responses.
type Error struct {
	Code    int32  `json:"code"`
	Message string `json:"message"`
}
