package domain

import "time"

// ObjectInfo records how an object file was produced.
type ObjectInfo struct {
	Source    string    `json:"source,omitzero"`
	Object    string    `json:"object,omitzero"`
	InputHash string    `json:"input_hash,omitzero"`
	Timestamp time.Time `json:"timestamp,omitzero"`
}
