package domain

// UniqueField names a value that must be unique within its resource.
type UniqueField string

const (
	UniqueUserEmail   UniqueField = "user.email"
	UniqueUserPhone   UniqueField = "user.phone"
	UniqueServiceName UniqueField = "service.service" // compared case-insensitively
)
