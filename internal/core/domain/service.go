package domain

import "time"

// ImageURLPrefix is the public path under which stored service images are served.
const ImageURLPrefix = "/uploads/services/"

// Service is a priced offering with an optional image.
type Service struct {
	ID        int64
	Name      string
	Price     float64
	Image     *string // stored file name, nil when no image was uploaded
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ImageURL returns the public path of the image, or nil.
func (s Service) ImageURL() *string {
	if s.Image == nil || *s.Image == "" {
		return nil
	}
	url := ImageURLPrefix + *s.Image
	return &url
}

// ServiceDraft is a validated create request. The image comes from an upload only.
type ServiceDraft struct {
	Name  string
	Price float64
}

// ServicePatch carries the fields supplied on a partial update. Nil means keep.
// Image is set from a stored upload, never from client input.
type ServicePatch struct {
	Name  *string
	Price *float64
	Image *string
}

// Apply returns s with the patch fields applied.
func (p ServicePatch) Apply(s Service) Service {
	if p.Name != nil {
		s.Name = *p.Name
	}
	if p.Price != nil {
		s.Price = *p.Price
	}
	if p.Image != nil {
		s.Image = p.Image
	}
	return s
}
