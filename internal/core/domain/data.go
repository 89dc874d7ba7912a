package domain

// Data is a generic name/age record.
type Data struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Age  int    `json:"age"`
}

// DataPatch carries the fields supplied on a partial update. Nil means keep.
type DataPatch struct {
	Name *string
	Age  *int
}

// Empty reports whether the patch changes nothing.
func (p DataPatch) Empty() bool {
	return p.Name == nil && p.Age == nil
}

// Apply returns d with the patch fields applied.
func (p DataPatch) Apply(d Data) Data {
	if p.Name != nil {
		d.Name = *p.Name
	}
	if p.Age != nil {
		d.Age = *p.Age
	}
	return d
}
