package service

import "github.com/oklog/ulid/v2"

// NewQuestionID returns a lexically sortable id that is unique within the
// process. ulid.Make uses a monotonic entropy source guarded by a mutex.
func NewQuestionID() string {
	return ulid.Make().String()
}
